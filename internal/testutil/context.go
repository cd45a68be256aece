package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a test's backend calls and program runs when the
// caller passes no timeout.
const DefaultTimeout = 5 * time.Second

const pollInterval = 10 * time.Millisecond

// Context returns a context cancelled at test cleanup. It expires after
// timeout or one second before the test binary's deadline, whichever is
// earlier.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := time.Now().Add(timeout)
	if dt, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if testDeadline, ok := dt.Deadline(); ok && testDeadline.Add(-time.Second).Before(deadline) {
			deadline = testDeadline.Add(-time.Second)
		}
	}
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	t.Cleanup(cancel)
	return ctx
}

// Eventually polls cond until it holds, failing the test with msg once
// timeout elapses.
func Eventually(t testing.TB, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	ctx := Context(t, timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for !cond() {
		select {
		case <-ctx.Done():
			if msg == "" {
				msg = "condition not met before timeout"
			}
			t.Fatalf("%s", msg)
		case <-ticker.C:
		}
	}
}
