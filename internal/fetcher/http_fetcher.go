package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

// maxArtworkSize caps both local and remote artwork
const maxArtworkSize = 10 << 20

var (
	// ErrTooLarge is returned for artwork above maxArtworkSize. A truncated
	// image would not decode, so it is rejected instead.
	ErrTooLarge = errors.New("artwork too large")
	// ErrNotImage is returned when the response is neither labelled nor sniffed as an image
	ErrNotImage = errors.New("artwork is not an image")
)

// HTTPFetcher downloads cover art that players publish as http(s) URLs
type HTTPFetcher struct {
	logger *zap.Logger
	client *http.Client
}

// NewHTTPFetcher creates a cover art downloader
func NewHTTPFetcher(logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		logger: logger,
		client: &http.Client{
			Timeout: 5 * time.Second, // callers bound it tighter through ctx
		},
	}
}

// Fetch downloads the artwork at url into memory
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (domain.ThumbnailStream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "mediabridge/1.0")
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("artwork request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork request returned %d", resp.StatusCode)
	}
	if resp.ContentLength > maxArtworkSize {
		return nil, fmt.Errorf("%w: %d bytes announced", ErrTooLarge, resp.ContentLength)
	}

	// one byte past the cap tells an exact fit from an oversized body
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArtworkSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read artwork: %w", err)
	}
	if len(data) > maxArtworkSize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrTooLarge, maxArtworkSize)
	}

	if len(data) > 0 && !isImage(resp.Header.Get("Content-Type"), data) {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, resp.Header.Get("Content-Type"))
	}

	f.logger.Debug("Artwork fetched", zap.Int("bytes", len(data)), zap.String("url", url))
	return newMemoryStream(data), nil
}

// isImage trusts an image/* label, and sniffs the bytes when the server
// sends a generic type such as application/octet-stream
func isImage(contentType string, data []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if strings.HasPrefix(mediaType, "image/") {
			return true
		}
		if mediaType != "application/octet-stream" && mediaType != "binary/octet-stream" {
			return false
		}
	}
	return strings.HasPrefix(http.DetectContentType(data), "image/")
}

// memoryStream is a fully buffered artwork stream
type memoryStream struct {
	*bytes.Reader
	size int64
}

func newMemoryStream(data []byte) *memoryStream {
	return &memoryStream{Reader: bytes.NewReader(data), size: int64(len(data))}
}

func (s *memoryStream) Close() error { return nil }
func (s *memoryStream) Size() int64  { return s.size }
