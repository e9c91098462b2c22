package timebox

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRun_Completes(t *testing.T) {
	got, err := Run(context.Background(), time.Second, func(context.Context) (int, error) {
		return 7, nil
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestRun_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	_, err := Run(context.Background(), time.Second, func(context.Context) (string, error) {
		return "", want
	}, nil)
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestRun_TimeoutWhenCallIgnoresContext(t *testing.T) {
	release := make(chan struct{})
	discarded := make(chan int, 1)

	start := time.Now()
	_, err := Run(context.Background(), 30*time.Millisecond, func(context.Context) (int, error) {
		<-release // hangs like a disconnected source
		return 99, nil
	}, func(v int) { discarded <- v })

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Run did not honour its deadline: %v", elapsed)
	}

	close(release)
	select {
	case v := <-discarded:
		if v != 99 {
			t.Errorf("expected late value 99 to be discarded, got %d", v)
		}
	case <-time.After(time.Second):
		t.Error("late result was not handed to discard")
	}
}

func TestRun_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, time.Second, func(c context.Context) (int, error) {
		<-c.Done()
		return 0, c.Err()
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_RecoversPanic(t *testing.T) {
	_, err := Run(context.Background(), time.Second, func(context.Context) (int, error) {
		panic("player vanished")
	}, nil)
	if !errors.Is(err, ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", err)
	}
}
