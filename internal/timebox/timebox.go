// Package timebox bounds calls into OS APIs that may ignore their context.
package timebox

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout is returned when the call did not finish before its deadline
	ErrTimeout = errors.New("timed out")
	// ErrPanic wraps a panic raised by the call
	ErrPanic = errors.New("call panicked")
)

// Run executes fn in its own goroutine and waits at most d for it.
// fn receives a context with the same deadline; if it ignores it, Run still
// returns on time and the late result is handed to discard (when non-nil).
// A panic in fn is returned as an error wrapping ErrPanic.
// d <= 0 means no extra deadline beyond ctx.
func Run[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error), discard func(T)) (T, error) {
	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if d > 0 {
		callCtx, cancel = context.WithTimeout(ctx, d)
	}
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)

	go func() {
		var r result
		defer func() {
			if p := recover(); p != nil {
				r.err = fmt.Errorf("%w: %v", ErrPanic, p)
			}
			done <- r
		}()
		r.val, r.err = fn(callCtx)
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-callCtx.Done():
		select {
		case r := <-done:
			return r.val, r.err
		default:
		}
		if discard != nil {
			go func() {
				if r := <-done; r.err == nil {
					discard(r.val)
				}
			}()
		}
		var zero T
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return zero, ErrTimeout
		}
		return zero, callCtx.Err()
	}
}
