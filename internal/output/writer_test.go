package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/genricoloni/mediabridge/internal/domain"
)

func TestLineWriter_Write(t *testing.T) {
	var out bytes.Buffer
	w := NewLineWriter(&out)

	snaps := []domain.MediaSnapshot{
		domain.EmptySnapshot(),
		{Artist: "AC/DC", Title: "T.N.T. <live> & more", Status: domain.StatusPlaying, Position: 30.5, Duration: 214, Thumbnail: "aW1n"},
	}
	for _, s := range snaps {
		if err := w.Write(s); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	expected := `{"artist":"","title":"","status":"STOPPED","position":0,"duration":0,"thumbnail":""}` + "\n" +
		`{"artist":"AC/DC","title":"T.N.T. <live> & more","status":"PLAYING","position":30.5,"duration":214,"thumbnail":"aW1n"}` + "\n"
	if out.String() != expected {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out.String(), expected)
	}

	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for i := 0; scanner.Scan(); i++ {
		var got domain.MediaSnapshot
		if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if got != snaps[i] {
			t.Errorf("line %d: expected %+v, got %+v", i, snaps[i], got)
		}
	}
}

// TestLineWriter_FlushesEachLine verifies nothing stays buffered between writes
func TestLineWriter_FlushesEachLine(t *testing.T) {
	var out bytes.Buffer
	w := NewLineWriter(&out)

	if err := w.Write(domain.EmptySnapshot()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "}\n") {
		t.Errorf("expected a complete flushed line, got %q", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestLineWriter_WriteError(t *testing.T) {
	w := NewLineWriter(failingWriter{})
	if err := w.Write(domain.EmptySnapshot()); err == nil {
		t.Error("expected error from broken writer")
	}
}
