package session

import (
	"context"
	"errors"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/timebox"
	"go.uber.org/zap"
)

// ErrNoSession is reported by callers that need a session and found none
var ErrNoSession = errors.New("no media session available")

// Accessor obtains the current or best-guess media session.
// Every failure collapses to "absent"; nothing is returned as an error.
type Accessor struct {
	logger   *zap.Logger
	cfg      domain.Config
	provider domain.ManagerProvider
}

// NewAccessor creates a session accessor
func NewAccessor(logger *zap.Logger, cfg domain.Config, provider domain.ManagerProvider) *Accessor {
	return &Accessor{
		logger:   logger,
		cfg:      cfg,
		provider: provider,
	}
}

// Acquire requests the session manager, bounded by the manager timeout.
// A manager that arrives after the deadline is closed.
func (a *Accessor) Acquire(ctx context.Context) (domain.SessionManager, bool) {
	mgr, err := timebox.Run(ctx, a.cfg.GetManagerTimeout(), a.provider.RequestManager, func(late domain.SessionManager) {
		if late != nil {
			_ = late.Close()
		}
	})
	if err != nil {
		a.logger.Debug("Session manager unavailable", zap.Error(err))
		return nil, false
	}
	if mgr == nil {
		return nil, false
	}
	return mgr, true
}

// Pick prefers the current session, then the first enumerated one
func (a *Accessor) Pick(ctx context.Context, mgr domain.SessionManager) (domain.Session, bool) {
	current, err := mgr.CurrentSession(ctx)
	if err != nil {
		a.logger.Debug("Current session query failed", zap.Error(err))
	} else if current != nil {
		return current, true
	}

	sessions, err := mgr.Sessions(ctx)
	if err != nil {
		a.logger.Debug("Session enumeration failed", zap.Error(err))
		return nil, false
	}
	for _, s := range sessions {
		if s != nil {
			return s, true
		}
	}
	return nil, false
}

// Get acquires the manager and picks a session. The returned release func
// closes the manager and must be called once the session is no longer used.
func (a *Accessor) Get(ctx context.Context) (domain.Session, func(), bool) {
	mgr, ok := a.Acquire(ctx)
	if !ok {
		return nil, func() {}, false
	}

	release := func() {
		if err := mgr.Close(); err != nil {
			a.logger.Debug("Failed to close session manager", zap.Error(err))
		}
	}

	s, ok := a.Pick(ctx, mgr)
	if !ok {
		release()
		return nil, func() {}, false
	}
	return s, release, true
}
