package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryEventuallySucceeds(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewLogger(false)}

	calls := 0
	err := r.Do(context.Background(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: NewLogger(false)}

	err := r.Do(context.Background(), "broken", func() error {
		return errors.New("permanent")
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 5, BaseDelay: time.Minute, Logger: NewLogger(false)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := r.Do(ctx, "cancelled", func() error {
		calls++
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("fn should not run after cancellation, ran %d times", calls)
	}
}
