//go:build windows

package lock

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
)

type mutexLock struct {
	once   sync.Once
	handle windows.Handle
	err    error
}

// Acquire creates the named mutex Global\<name>. If it already exists,
// another instance owns it.
func Acquire(name string) (Lock, error) {
	ptr, err := windows.UTF16PtrFromString(`Global\` + name)
	if err != nil {
		return nil, fmt.Errorf("invalid lock name: %w", err)
	}

	h, err := windows.CreateMutex(nil, true, ptr)
	if err != nil {
		if h != 0 {
			_ = windows.CloseHandle(h)
		}
		if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("failed to create mutex: %w", err)
	}
	return &mutexLock{handle: h}, nil
}

func (l *mutexLock) Release() error {
	l.once.Do(func() {
		if err := windows.ReleaseMutex(l.handle); err != nil {
			l.err = err
		}
		if err := windows.CloseHandle(l.handle); err != nil && l.err == nil {
			l.err = err
		}
	})
	return l.err
}
