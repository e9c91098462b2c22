//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/lxn/win"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// Win32Windows controls top-level windows through user32
type Win32Windows struct {
	logger *zap.Logger
}

// NewWindowController creates a Win32 window controller
func NewWindowController(logger *zap.Logger) *Win32Windows {
	return &Win32Windows{logger: logger}
}

// Close is a no-op; user32 needs no connection
func (w *Win32Windows) Close() error {
	return nil
}

// MainWindow returns the first visible unowned top-level window of pid
func (w *Win32Windows) MainWindow(pid int32) (domain.WindowHandle, bool, error) {
	var found windows.HWND

	// The callback always continues: stopping early makes EnumWindows report an error
	cb := syscall.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		if found != 0 || hwnd == 0 {
			return 1
		}

		var owner uint32
		if _, err := windows.GetWindowThreadProcessId(hwnd, &owner); err != nil {
			return 1
		}
		if int32(owner) != pid {
			return 1
		}

		h := win.HWND(hwnd)
		if !win.IsWindowVisible(h) || win.GetWindow(h, win.GW_OWNER) != 0 {
			return 1
		}
		found = hwnd
		return 1
	})

	if err := windows.EnumWindows(cb, unsafe.Pointer(nil)); err != nil {
		return 0, false, fmt.Errorf("failed to enumerate windows: %w", err)
	}
	if found == 0 {
		return 0, false, nil
	}
	return domain.WindowHandle(found), true, nil
}

// Restore un-minimizes the window
func (w *Win32Windows) Restore(handle domain.WindowHandle) error {
	// ShowWindow reports the previous visibility, not success
	win.ShowWindow(win.HWND(handle), win.SW_RESTORE)
	return nil
}

// SetForeground activates the window. Windows may refuse when the caller
// does not own the foreground.
func (w *Win32Windows) SetForeground(handle domain.WindowHandle) (bool, error) {
	ok := win.SetForegroundWindow(win.HWND(handle))
	if !ok {
		w.logger.Debug("SetForegroundWindow refused", zap.Uintptr("hwnd", uintptr(handle)))
	}
	return ok, nil
}
