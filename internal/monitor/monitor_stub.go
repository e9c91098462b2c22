//go:build !linux
// +build !linux

package monitor

import (
	"context"
	"fmt"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/platform"
	"go.uber.org/zap"
)

// Provider stub for non-Linux platforms
type Provider struct {
	logger *zap.Logger
}

// NewProvider creates a stub provider that never yields a session manager
func NewProvider(logger *zap.Logger, _ domain.Config, _ ArtworkRefs) *Provider {
	return &Provider{logger: logger}
}

// RequestManager reports that MPRIS is only available on Linux
func (p *Provider) RequestManager(context.Context) (domain.SessionManager, error) {
	return nil, fmt.Errorf("MPRIS session manager: %w", platform.ErrUnsupported)
}
