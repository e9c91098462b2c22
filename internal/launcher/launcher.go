package launcher

import (
	"context"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/resolver"
	"go.uber.org/zap"
)

// Launcher opens a protocol or web URI for a known service when its window cannot be found
type Launcher struct {
	logger *zap.Logger
	opener domain.URIOpener
}

// NewLauncher creates a URI fallback launcher
func NewLauncher(logger *zap.Logger, opener domain.URIOpener) *Launcher {
	return &Launcher{
		logger: logger,
		opener: opener,
	}
}

// LaunchFallback tries the service URIs in order; the first successful open wins.
// Returns false when the identifier matches no known service or every open failed.
func (l *Launcher) LaunchFallback(ctx context.Context, identifier string) bool {
	svc, ok := resolver.FallbackService(identifier)
	if !ok {
		l.logger.Debug("No URI fallback for source", zap.String("source", identifier))
		return false
	}

	for _, uri := range svc.URIs {
		if l.tryOpen(ctx, uri) {
			l.logger.Info("Opened fallback URI",
				zap.String("service", svc.Name),
				zap.String("uri", uri))
			return true
		}
	}

	l.logger.Warn("All fallback URIs failed", zap.String("service", svc.Name))
	return false
}

func (l *Launcher) tryOpen(ctx context.Context, uri string) bool {
	if err := l.opener.Open(ctx, uri); err != nil {
		l.logger.Debug("Failed to open URI", zap.String("uri", uri), zap.Error(err))
		return false
	}
	return true
}
