// Package controller maps one command-line invocation onto a single media action.
package controller

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/genricoloni/mediabridge/internal/domain"
)

// ErrUsage marks malformed command-line input. No OS call is attempted for it.
var ErrUsage = errors.New("usage error")

// Usage is printed when no command or an unusable one is given
const Usage = "Usage: controller [play|pause|next|previous|playpause|seek <seconds>|focussource]"

const seekUsage = "Usage: controller seek <seconds>"

// Action is the kind of work a command performs
type Action int

const (
	// ActionKey taps a virtual media key
	ActionKey Action = iota
	// ActionSeek moves the current session to a position
	ActionSeek
	// ActionFocusSource raises the window of the current session's owner
	ActionFocusSource
)

// Command is a parsed invocation
type Command struct {
	// Name is token 0 lowercased
	Name   string
	Action Action
	// Key is set for ActionKey
	Key domain.MediaKey
	// Seconds is set for ActionSeek and is never negative
	Seconds float64
}

// usageError carries the exact line shown to the user
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func (e *usageError) Is(target error) bool { return target == ErrUsage }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// play, pause and toggle share the single play/pause key
var keyCommands = map[string]domain.MediaKey{
	"play":      domain.KeyPlayPause,
	"pause":     domain.KeyPlayPause,
	"playpause": domain.KeyPlayPause,
	"toggle":    domain.KeyPlayPause,
	"next":      domain.KeyNextTrack,
	"previous":  domain.KeyPreviousTrack,
}

// ParseCommand parses tokens (token 0 case-insensitive). Errors wrap ErrUsage
// and their text is the message to print.
func ParseCommand(tokens []string) (Command, error) {
	if len(tokens) == 0 || strings.TrimSpace(tokens[0]) == "" {
		return Command{}, usagef("%s", Usage)
	}

	name := strings.ToLower(strings.TrimSpace(tokens[0]))

	if key, ok := keyCommands[name]; ok {
		return Command{Name: name, Action: ActionKey, Key: key}, nil
	}

	switch name {
	case "seek":
		if len(tokens) < 2 {
			return Command{}, usagef("%s", seekUsage)
		}
		seconds, err := parseSeconds(tokens[1])
		if err != nil {
			return Command{}, usagef("Invalid seek value: %s", tokens[1])
		}
		return Command{Name: name, Action: ActionSeek, Seconds: math.Max(0, seconds)}, nil
	case "focussource":
		return Command{Name: name, Action: ActionFocusSource}, nil
	default:
		return Command{}, usagef("Unknown command: %s", name)
	}
}

func parseSeconds(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %s", s)
	}
	return v, nil
}

// FormatSeconds renders seconds with at most two decimals and no trailing zeros
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(math.Round(seconds*100)/100, 'f', -1, 64)
}
