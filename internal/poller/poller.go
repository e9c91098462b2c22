// Package poller drives the snapshot builder on a fixed cadence.
package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

// SessionSource acquires the session manager and picks a session from it
type SessionSource interface {
	Acquire(ctx context.Context) (domain.SessionManager, bool)
	Pick(ctx context.Context, mgr domain.SessionManager) (domain.Session, bool)
}

// SnapshotBuilder builds a snapshot; it must not fail
type SnapshotBuilder interface {
	Build(ctx context.Context, s domain.Session) domain.MediaSnapshot
}

// Emitter writes one snapshot record
type Emitter interface {
	Write(s domain.MediaSnapshot) error
}

// Poller emits exactly one snapshot per tick until cancelled
type Poller struct {
	logger  *zap.Logger
	cfg     domain.Config
	source  SessionSource
	builder SnapshotBuilder
	out     Emitter
}

// NewPoller creates a new poll loop
func NewPoller(
	logger *zap.Logger,
	cfg domain.Config,
	source SessionSource,
	builder SnapshotBuilder,
	out Emitter,
) *Poller {
	return &Poller{
		logger:  logger,
		cfg:     cfg,
		source:  source,
		builder: builder,
		out:     out,
	}
}

// Run blocks until ctx is cancelled. It returns nil on cancellation and an
// error only when the output itself can no longer be written.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Poll loop starting", zap.Duration("interval", p.cfg.GetPollInterval()))

	mgr, ok := p.source.Acquire(ctx)
	if ok {
		defer func() {
			if err := mgr.Close(); err != nil {
				p.logger.Warn("Failed to close session manager", zap.Error(err))
			}
		}()
	} else {
		p.logger.Warn("No session manager available, emitting empty snapshots")
	}

	for {
		if ctx.Err() != nil {
			break
		}

		var snap domain.MediaSnapshot
		if mgr != nil {
			snap = p.tick(ctx, mgr)
		} else {
			snap = domain.EmptySnapshot()
		}

		// An in-flight build may finish after cancellation; drop it
		if ctx.Err() != nil {
			break
		}
		if err := p.out.Write(snap); err != nil {
			return fmt.Errorf("snapshot output closed: %w", err)
		}

		if !p.sleep(ctx) {
			break
		}
	}

	p.logger.Info("Poll loop stopped")
	return nil
}

// tick re-picks the session, since the active app may change between ticks,
// and builds its snapshot. A panic becomes the empty snapshot.
func (p *Poller) tick(ctx context.Context, mgr domain.SessionManager) (snap domain.MediaSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Recovered from panic in poll tick", zap.Any("panic", r))
			snap = domain.EmptySnapshot()
		}
	}()

	s, ok := p.source.Pick(ctx, mgr)
	if !ok {
		return domain.EmptySnapshot()
	}
	return p.builder.Build(ctx, s)
}

// sleep waits one interval; false means ctx was cancelled first
func (p *Poller) sleep(ctx context.Context) bool {
	timer := time.NewTimer(p.cfg.GetPollInterval())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
