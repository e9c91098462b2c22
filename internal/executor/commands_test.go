//go:build linux

package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestDetectCommand(t *testing.T) {
	candidates := []OpenCommand{
		{Name: "first", Binary: "first-bin"},
		{Name: "second", Binary: "second-bin"},
	}

	tests := []struct {
		name      string
		installed map[string]bool
		expected  string
	}{
		{name: "Highest Priority Wins", installed: map[string]bool{"first-bin": true, "second-bin": true}, expected: "first"},
		{name: "Falls Through", installed: map[string]bool{"second-bin": true}, expected: "second"},
		{name: "Nothing Installed", installed: map[string]bool{}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectCommand(candidates, func(b string) bool { return tt.installed[b] })
			if got.Name != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got.Name)
			}
		})
	}
}

// writeFakeOpener installs a script that records its arguments and exits with code
func writeFakeOpener(t *testing.T, code string) (bin, record string) {
	t.Helper()
	dir := t.TempDir()
	record = filepath.Join(dir, "args.txt")
	bin = filepath.Join(dir, "fake-open")
	script := "#!/bin/sh\necho \"$@\" > " + record + "\nexit " + code + "\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return bin, record
}

func TestCommandOpener_Open(t *testing.T) {
	bin, record := writeFakeOpener(t, "0")
	e := &CommandOpener{
		logger:  zap.NewNop(),
		command: OpenCommand{Name: "gio", Binary: bin, Args: []string{"open"}},
	}

	if err := e.Open(context.Background(), "spotify:"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "open spotify:" {
		t.Errorf("expected args %q, got %q", "open spotify:", got)
	}
}

func TestCommandOpener_OpenFailure(t *testing.T) {
	bin, _ := writeFakeOpener(t, "4")
	e := &CommandOpener{logger: zap.NewNop(), command: OpenCommand{Name: "xdg-open", Binary: bin}}

	if err := e.Open(context.Background(), "spotify:"); err == nil {
		t.Error("expected error for non-zero exit status")
	}
}

func TestCommandOpener_NoCommand(t *testing.T) {
	e := &CommandOpener{logger: zap.NewNop()}
	if err := e.Open(context.Background(), "spotify:"); !errors.Is(err, ErrNoOpener) {
		t.Errorf("expected ErrNoOpener, got %v", err)
	}
}
