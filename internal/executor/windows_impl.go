//go:build windows
// +build windows

package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// ShellOpener hands URIs to the Windows shell
type ShellOpener struct {
	logger *zap.Logger
}

// NewExecutor creates the Windows URI opener
func NewExecutor(logger *zap.Logger) *ShellOpener {
	return &ShellOpener{logger: logger}
}

// Open calls ShellExecute with the "open" verb, which resolves registered
// protocol handlers the same way the Run dialog does
func (e *ShellOpener) Open(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	target, err := windows.UTF16PtrFromString(uri)
	if err != nil {
		return fmt.Errorf("invalid uri: %w", err)
	}

	e.logger.Debug("Opening URI", zap.String("uri", uri))
	if err := windows.ShellExecute(0, verb, target, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("ShellExecute failed for %s: %w", uri, err)
	}
	return nil
}
