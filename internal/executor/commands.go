//go:build !windows

package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ErrNoOpener is returned when no URI opener command is installed
var ErrNoOpener = errors.New("no supported URI opener command found on this system")

// OpenCommand represents a shell command able to open a URI
type OpenCommand struct {
	Name   string
	Binary string
	Args   []string // the URI is appended after these
}

// CommandOpener hands URIs to the desktop's opener command
type CommandOpener struct {
	logger  *zap.Logger
	command OpenCommand
}

// NewExecutor detects the URI opener command for this desktop
func NewExecutor(logger *zap.Logger) *CommandOpener {
	cmd := detectCommand(openCommands, commandExists)
	if cmd.Binary == "" {
		logger.Warn("No URI opener command found, fallback links are disabled")
	} else {
		logger.Debug("URI opener detected",
			zap.String("name", cmd.Name),
			zap.String("binary", cmd.Binary))
	}

	return &CommandOpener{
		logger:  logger,
		command: cmd,
	}
}

// detectCommand returns the first command whose binary is installed
func detectCommand(candidates []OpenCommand, exists func(string) bool) OpenCommand {
	for _, cmd := range candidates {
		if exists(cmd.Binary) {
			return cmd
		}
	}
	return OpenCommand{}
}

// commandExists checks if a binary exists in PATH
func commandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// Open launches the handler registered for the URI scheme
func (e *CommandOpener) Open(ctx context.Context, uri string) error {
	if e.command.Binary == "" {
		return ErrNoOpener
	}

	args := append(append([]string(nil), e.command.Args...), uri)

	e.logger.Debug("Opening URI",
		zap.String("command", e.command.Binary),
		zap.Strings("args", args))

	output, err := exec.CommandContext(ctx, e.command.Binary, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to open %s with %s: %w (output: %s)",
			uri, e.command.Name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
