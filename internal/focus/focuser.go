package focus

import (
	"context"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

// Focuser brings the main window of a candidate process to the foreground
type Focuser struct {
	logger  *zap.Logger
	procs   domain.ProcessTable
	windows domain.WindowController
}

// NewFocuser creates a window focuser
func NewFocuser(logger *zap.Logger, procs domain.ProcessTable, windows domain.WindowController) *Focuser {
	return &Focuser{
		logger:  logger,
		procs:   procs,
		windows: windows,
	}
}

// Focus walks the candidates in order and returns true on the first window that
// accepted foreground activation. Per-candidate failures move on to the next one.
func (f *Focuser) Focus(ctx context.Context, candidates []string) bool {
	for _, name := range candidates {
		if ctx.Err() != nil {
			return false
		}
		if f.focusCandidate(ctx, name) {
			return true
		}
	}
	return false
}

// focusCandidate tries every process named name
func (f *Focuser) focusCandidate(ctx context.Context, name string) bool {
	processes, err := f.procs.FindByName(ctx, name)
	if err != nil {
		f.logger.Debug("Process lookup failed", zap.String("candidate", name), zap.Error(err))
		return false
	}

	for _, p := range processes {
		if f.focusProcess(p) {
			f.logger.Info("Focused source window",
				zap.String("candidate", name),
				zap.Int32("pid", p.PID))
			return true
		}
	}
	return false
}

func (f *Focuser) focusProcess(p domain.Process) bool {
	handle, ok, err := f.windows.MainWindow(p.PID)
	if err != nil {
		f.logger.Debug("Main window lookup failed", zap.Int32("pid", p.PID), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	// Restore is best effort; activation decides the outcome
	if err := f.windows.Restore(handle); err != nil {
		f.logger.Debug("Restore failed", zap.Int32("pid", p.PID), zap.Error(err))
	}

	activated, err := f.windows.SetForeground(handle)
	if err != nil {
		f.logger.Debug("SetForeground failed", zap.Int32("pid", p.PID), zap.Error(err))
		return false
	}
	return activated
}
