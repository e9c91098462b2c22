package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/resolver"
	"github.com/genricoloni/mediabridge/internal/session"
	"github.com/genricoloni/mediabridge/internal/timebox"
	"go.uber.org/zap"
)

// SessionSource hands out the current media session
type SessionSource interface {
	Get(ctx context.Context) (domain.Session, func(), bool)
}

// Focuser raises the first candidate window that accepts activation
type Focuser interface {
	Focus(ctx context.Context, candidates []string) bool
}

// FallbackLauncher opens a service URI for a source identifier
type FallbackLauncher interface {
	LaunchFallback(ctx context.Context, identifier string) bool
}

// Dispatcher runs exactly one command per invocation
type Dispatcher struct {
	logger   *zap.Logger
	cfg      domain.Config
	keys     domain.KeyInjector
	sessions SessionSource
	focuser  Focuser
	launcher FallbackLauncher
}

// NewDispatcher creates a command dispatcher
func NewDispatcher(
	logger *zap.Logger,
	cfg domain.Config,
	keys domain.KeyInjector,
	sessions SessionSource,
	focuser Focuser,
	launcher FallbackLauncher,
) *Dispatcher {
	return &Dispatcher{
		logger:   logger,
		cfg:      cfg,
		keys:     keys,
		sessions: sessions,
		focuser:  focuser,
		launcher: launcher,
	}
}

// Dispatch parses and executes tokens, writes the user-facing result to out
// and returns the process exit code.
func (d *Dispatcher) Dispatch(ctx context.Context, out io.Writer, tokens []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Command panicked", zap.Any("panic", r))
			fmt.Fprintf(out, "Error: %v\n", r)
			code = 1
		}
	}()

	cmd, err := ParseCommand(tokens)
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return 1
	}

	switch cmd.Action {
	case ActionSeek:
		if err := d.Seek(ctx, cmd.Seconds); err != nil {
			d.logger.Debug("Seek failed", zap.Float64("seconds", cmd.Seconds), zap.Error(err))
			fmt.Fprintln(out, "Seek command failed")
			return 1
		}
		fmt.Fprintf(out, "Seeked to %s seconds\n", FormatSeconds(cmd.Seconds))
		return 0

	case ActionFocusSource:
		if !d.FocusSource(ctx) {
			fmt.Fprintln(out, "Focus source command failed")
			return 1
		}
		fmt.Fprintln(out, "Focused source window")
		return 0

	default:
		if err := d.keys.Tap(cmd.Key); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "Command '%s' executed successfully\n", cmd.Name)
		return 0
	}
}

// Seek moves the current session to seconds (negative values clamp to 0)
func (d *Dispatcher) Seek(ctx context.Context, seconds float64) error {
	s, release, ok := d.sessions.Get(ctx)
	if !ok {
		return session.ErrNoSession
	}
	defer release()

	position := toDuration(seconds)
	accepted, err := timebox.Run(ctx, d.cfg.GetCallTimeout(), func(ctx context.Context) (bool, error) {
		return s.SetPosition(ctx, position)
	}, nil)
	if err != nil {
		return fmt.Errorf("set position on %s: %w", s.SourceAppID(), err)
	}
	if !accepted {
		return errors.New("session refused the new position")
	}
	return nil
}

// FocusSource raises the window of the application owning the current session,
// falling back to the service URI when no window could be activated.
func (d *Dispatcher) FocusSource(ctx context.Context) bool {
	s, release, ok := d.sessions.Get(ctx)
	if !ok {
		d.logger.Debug("No session to focus")
		return false
	}
	identifier := s.SourceAppID()
	release()

	candidates := resolver.Resolve(identifier)
	d.logger.Debug("Resolved source candidates",
		zap.String("source", identifier),
		zap.Strings("candidates", candidates))

	if d.focuser.Focus(ctx, candidates) {
		return true
	}
	return d.launcher.LaunchFallback(ctx, identifier)
}

func toDuration(seconds float64) time.Duration {
	seconds = math.Max(0, seconds)
	if seconds >= math.MaxInt64/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}
