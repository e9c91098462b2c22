// Package lock provides the named, OS-visible single-instance lock of the reader.
package lock

import "errors"

// ErrAlreadyRunning is returned when another process holds the lock
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is a held single-instance lock
type Lock interface {
	// Release gives the lock up. It is safe to call more than once.
	Release() error
}
