package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

// ErrUnsupportedScheme is returned for artwork URLs that are neither file nor http(s)
var ErrUnsupportedScheme = errors.New("unsupported artwork scheme")

// ArtworkOpener opens artwork URLs as sized byte streams
type ArtworkOpener struct {
	logger *zap.Logger
	remote *HTTPFetcher
}

// NewArtworkOpener creates an opener that reads local files directly and
// downloads remote artwork through the HTTP fetcher
func NewArtworkOpener(logger *zap.Logger, remote *HTTPFetcher) *ArtworkOpener {
	return &ArtworkOpener{logger: logger, remote: remote}
}

// Open returns a stream over the artwork at rawURL
func (o *ArtworkOpener) Open(ctx context.Context, rawURL string) (domain.ThumbnailStream, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid artwork url: %w", err)
	}

	switch u.Scheme {
	case "file":
		s, err := openFile(u.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "http", "https":
		return o.remote.Fetch(ctx, rawURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// Ref binds rawURL to the opener so that it is only opened on demand
func (o *ArtworkOpener) Ref(rawURL string) domain.ThumbnailRef {
	return &artworkRef{opener: o, url: rawURL}
}

type artworkRef struct {
	opener *ArtworkOpener
	url    string
}

func (r *artworkRef) OpenRead(ctx context.Context) (domain.ThumbnailStream, error) {
	return r.opener.Open(ctx, r.url)
}

type fileStream struct {
	*os.File
	size int64
}

func (s *fileStream) Size() int64 { return s.size }

func openFile(path string) (*fileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artwork: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat artwork: %w", err)
	}
	if info.Size() > maxArtworkSize {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, info.Size())
	}
	return &fileStream{File: f, size: info.Size()}, nil
}
