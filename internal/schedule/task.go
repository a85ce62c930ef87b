// Package schedule runs periodic work on owned goroutines that callers must release.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Task is a periodic job started by Every. Stop must be called to release it.
type Task struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// Every calls fn every interval until Stop is called or ctx is done.
// The first call happens one interval after Every returns.
// fn receives a context that is cancelled when the task stops.
func Every(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
	return t
}

// Stop cancels the task and waits for an in-progress call to return.
// It is safe to call multiple times.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.once.Do(func() {
		t.cancel()
		t.wg.Wait()
	})
}
