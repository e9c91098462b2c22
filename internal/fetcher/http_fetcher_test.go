package fetcher

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"
)

func pngCover(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("failed to encode cover: %v", err)
	}
	return buf.Bytes()
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	cover := pngCover(t)
	jpegMagic := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

	tests := []struct {
		name          string
		contentType   string
		contentLength int // announced length; 0 lets the server pick
		body          []byte
		status        int
		expectedErr   error
		expectedData  []byte
	}{
		{
			name:         "Labelled JPEG",
			contentType:  "image/jpeg",
			body:         jpegMagic,
			status:       http.StatusOK,
			expectedData: jpegMagic,
		},
		{
			name:         "Labelled With Parameters",
			contentType:  "image/webp; charset=binary",
			body:         []byte("RIFF....WEBP"),
			status:       http.StatusOK,
			expectedData: []byte("RIFF....WEBP"),
		},
		{
			name:         "Octet Stream Sniffed As PNG",
			contentType:  "application/octet-stream",
			body:         cover,
			status:       http.StatusOK,
			expectedData: cover,
		},
		{
			name:         "Missing Type Sniffed As PNG",
			body:         cover,
			status:       http.StatusOK,
			expectedData: cover,
		},
		{
			name:        "Octet Stream That Is Not An Image",
			contentType: "application/octet-stream",
			body:        []byte("just some bytes"),
			status:      http.StatusOK,
			expectedErr: ErrNotImage,
		},
		{
			name:        "HTML Error Page",
			contentType: "text/html; charset=utf-8",
			body:        []byte("<html>login required</html>"),
			status:      http.StatusOK,
			expectedErr: ErrNotImage,
		},
		{
			name:         "Empty Body",
			contentType:  "image/png",
			status:       http.StatusOK,
			expectedData: []byte{},
		},
		{
			name:          "Oversized Announced",
			contentType:   "image/png",
			contentLength: maxArtworkSize + 1,
			body:          cover,
			status:        http.StatusOK,
			expectedErr:   ErrTooLarge,
		},
		{
			name:        "Oversized Body Rejected Not Truncated",
			contentType: "image/png",
			body:        append(append([]byte{}, cover...), make([]byte, maxArtworkSize)...),
			status:      http.StatusOK,
			expectedErr: ErrTooLarge,
		},
		{
			name:         "Exactly At Limit",
			contentType:  "image/png",
			body:         append(append([]byte{}, cover...), make([]byte, maxArtworkSize-len(cover))...),
			status:       http.StatusOK,
			expectedData: append(append([]byte{}, cover...), make([]byte, maxArtworkSize-len(cover))...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Accept") != "image/*" {
					t.Errorf("expected image Accept header, got %q", r.Header.Get("Accept"))
				}
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				if tt.contentLength > 0 {
					w.Header().Set("Content-Length", strconv.Itoa(tt.contentLength))
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write(tt.body)
			}))
			defer server.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			stream, err := NewHTTPFetcher(zap.NewNop()).Fetch(ctx, server.URL)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer stream.Close()

			data, err := io.ReadAll(stream)
			if err != nil {
				t.Fatalf("failed to read stream: %v", err)
			}
			if stream.Size() != int64(len(tt.expectedData)) {
				t.Errorf("expected size %d, got %d", len(tt.expectedData), stream.Size())
			}
			if !bytes.Equal(data, tt.expectedData) {
				t.Errorf("stream content differs: got %d bytes, want %d", len(data), len(tt.expectedData))
			}
		})
	}
}

func TestHTTPFetcher_FetchFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/slow":
			<-r.Context().Done()
		}
	}))
	defer server.Close()

	f := NewHTTPFetcher(zap.NewNop())

	if _, err := f.Fetch(context.Background(), server.URL+"/missing"); err == nil {
		t.Error("expected error for 404 artwork")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	if _, err := f.Fetch(ctx, server.URL+"/slow"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("fetch ignored its deadline for %v", elapsed)
	}

	if _, err := f.Fetch(context.Background(), "http://[::1]:namedport"); err == nil {
		t.Error("expected error for malformed url")
	}
}
