// Package worker runs tasks on a single goroutine locked to its OS thread,
// for platform APIs that must be driven from one message-dispatch thread.
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// ErrClosed is returned when posting to a loop that has been shut down
var ErrClosed = errors.New("worker loop closed")

// Task is a unit of work run on the loop thread
type Task func()

// Loop is a FIFO task queue drained by one locked OS thread
type Loop struct {
	logger *zap.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Task
	closed bool

	done chan struct{}
}

// NewLoop starts the loop thread
func NewLoop(logger *zap.Logger) *Loop {
	l := &Loop{
		logger: logger,
		done:   make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.done)

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 && l.closed {
			l.mu.Unlock()
			return
		}
		task := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.execute(task)
	}
}

func (l *Loop) execute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Recovered from panic in worker task", zap.Any("panic", r))
		}
	}()
	task()
}

// Post queues a task without waiting for it
func (l *Loop) Post(task Task) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	l.queue = append(l.queue, task)
	l.cond.Signal()
	return nil
}

// Invoke runs fn on the loop thread and waits for its result
func (l *Loop) Invoke(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	if err := l.Post(func() { result <- fn() }); err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting tasks and waits for the queue to drain
func (l *Loop) Shutdown(ctx context.Context) error {
	l.mu.Lock()
	l.closed = true
	l.cond.Broadcast()
	l.mu.Unlock()

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the loop thread has exited
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
