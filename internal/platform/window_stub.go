//go:build !linux && !windows

package platform

import (
	"fmt"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

// StubWindows reports every window operation as unsupported
type StubWindows struct {
	logger *zap.Logger
}

// NewWindowController creates a window controller for unsupported platforms
func NewWindowController(logger *zap.Logger) *StubWindows {
	return &StubWindows{logger: logger}
}

func (w *StubWindows) Close() error {
	return nil
}

func (w *StubWindows) MainWindow(pid int32) (domain.WindowHandle, bool, error) {
	return 0, false, fmt.Errorf("window lookup: %w", ErrUnsupported)
}

func (w *StubWindows) Restore(domain.WindowHandle) error {
	return fmt.Errorf("window restore: %w", ErrUnsupported)
}

func (w *StubWindows) SetForeground(domain.WindowHandle) (bool, error) {
	return false, fmt.Errorf("window activation: %w", ErrUnsupported)
}
