// Package datasync coordinates read-through access to remote data: cache-first
// reads, fetch on miss, write-through on success, stale fallback on failure,
// polling while visible, and revalidation when the dashboard becomes visible.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"sync"
	"time"

	"association-site-api/internal/cache"
	"association-site-api/internal/schedule"
	"association-site-api/internal/visibility"
)

var (
	ErrAlreadyStarted = errors.New("datasync: coordinator already started")
	ErrClosed         = errors.New("datasync: coordinator closed")
)

// Config binds a cache key to a fetch function and a TTL.
type Config[T any] struct {
	Key     string
	TTL     time.Duration
	Fetch   FetchFunc[T]
	Polling PollingConfig

	// OnLoad, if set, is called after every Load that settles on a live
	// coordinator. It must not call Close.
	OnLoad func(State[T])
}

// Options holds optional collaborators.
type Options struct {
	Metrics Metrics
	Now     func() time.Time
}

// Coordinator owns the fetch state for one cache key.
// Overlapping forced loads are not collapsed: each one fetches and the last
// cache write wins.
type Coordinator[T any] struct {
	cfg     Config[T]
	cache   cache.Cache
	vis     visibility.Signal
	metrics Metrics
	now     func() time.Time

	mu      sync.Mutex
	state   State[T]
	deps    []any
	started bool
	closed  bool

	cancel      context.CancelFunc
	poll        *schedule.Task
	unsubscribe func()
	wg          sync.WaitGroup
}

// New builds a coordinator. A nil vis is treated as always visible.
func New[T any](c cache.Cache, vis visibility.Signal, cfg Config[T], opts Options) *Coordinator[T] {
	if vis == nil {
		vis = visibility.Static(true)
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetrics{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Coordinator[T]{
		cfg:     cfg,
		cache:   c,
		vis:     vis,
		metrics: opts.Metrics,
		now:     opts.Now,
	}
}

// Key returns the bound cache key.
func (c *Coordinator[T]) Key() string { return c.cfg.Key }

// Load returns the bound data, reading the cache first unless force is set.
// It never returns an error: failures are reported through State.Error.
func (c *Coordinator[T]) Load(ctx context.Context, force bool) State[T] {
	key := c.cfg.Key

	if !force {
		if v, ok := cache.GetAs[T](c.cache, key); ok {
			c.metrics.Hit(key)
			return c.settle(func(s *State[T]) {
				s.Data = v
				s.HasData = true
				s.Error = ""
				s.LastUpdated = c.now()
				s.Outcome = OutcomeCached
			})
		}
		c.metrics.Miss(key)
	}

	c.update(func(s *State[T]) { s.Loading = true })

	v, err := c.fetch(ctx)
	if err == nil {
		c.cache.Set(key, v, c.cfg.TTL)
		return c.settle(func(s *State[T]) {
			s.Data = v
			s.HasData = true
			s.Error = ""
			s.LastUpdated = c.now()
			s.Outcome = OutcomeFresh
		})
	}

	c.metrics.FetchFailed(key)
	if stale, ok := cache.GetStaleAs[T](c.cache, key); ok {
		c.metrics.Degraded(key)
		log.Printf("datasync: %s fetch failed, serving cached data: %v", key, err)
		return c.settle(func(s *State[T]) {
			s.Data = stale
			s.HasData = true
			s.Error = AdvisoryCachedData
			s.Outcome = OutcomeDegraded
		})
	}

	log.Printf("datasync: %s fetch failed: %v", key, err)
	msg := err.Error()
	return c.settle(func(s *State[T]) {
		var zero T
		s.Data = zero
		s.HasData = false
		s.Error = msg
		s.Outcome = OutcomeFailed
	})
}

// Refresh forces a fetch regardless of the cache.
func (c *Coordinator[T]) Refresh(ctx context.Context) State[T] {
	return c.Load(ctx, true)
}

// State returns a copy of the current state.
func (c *Coordinator[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsFromCache reports whether a fresh cache entry exists for the key right now.
func (c *Coordinator[T]) IsFromCache() bool {
	_, ok := cache.GetAs[T](c.cache, c.cfg.Key)
	return ok
}

// View returns the consumer read contract for the current state.
func (c *Coordinator[T]) View() View[T] {
	return newView(c.State(), c.IsFromCache(), c.Refresh)
}

// ViewOf builds the consumer read contract for a state returned by Load.
func (c *Coordinator[T]) ViewOf(s State[T]) View[T] {
	return newView(s, c.IsFromCache(), c.Refresh)
}

// Start mounts the coordinator: it loads once, then starts polling (if
// enabled) and listens for the dashboard becoming visible. Close releases both.
func (c *Coordinator[T]) Start(ctx context.Context, deps ...any) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.deps = append([]any(nil), deps...)
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	c.Load(runCtx, false)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	if c.cfg.Polling.Enabled && c.cfg.Polling.Interval > 0 {
		c.poll = schedule.Every(runCtx, c.cfg.Polling.Interval, func(ctx context.Context) {
			// polling skips hidden ticks; it never queues a catch-up load
			if c.vis.Visible() {
				c.Load(ctx, true)
			}
		})
	}
	c.unsubscribe = c.vis.Subscribe(func(visible bool) {
		if visible && !c.IsFromCache() {
			c.goLoad(runCtx)
		}
	})
	return nil
}

// SetDeps reloads (cache first) when deps differ from the previous set.
// Values are compared shallowly with ==; non-comparable values always differ.
func (c *Coordinator[T]) SetDeps(ctx context.Context, deps ...any) bool {
	c.mu.Lock()
	if c.closed || depsEqual(c.deps, deps) {
		c.mu.Unlock()
		return false
	}
	c.deps = append([]any(nil), deps...)
	c.mu.Unlock()

	c.Load(ctx, false)
	return true
}

// Close stops polling, drops the visibility listener and waits for
// visibility-triggered loads. Loads that settle afterwards still write the
// cache but no longer touch State. Close is idempotent.
func (c *Coordinator[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	poll, unsubscribe, cancel := c.poll, c.unsubscribe, c.cancel
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
	poll.Stop()
	c.wg.Wait()
}

func (c *Coordinator[T]) goLoad(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.Load(ctx, true)
	}()
}

func (c *Coordinator[T]) fetch(ctx context.Context) (v T, err error) {
	if c.cfg.Fetch == nil {
		return v, fmt.Errorf("no fetch function bound for %q", c.cfg.Key)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch %q panicked: %v", c.cfg.Key, r)
		}
	}()
	return c.cfg.Fetch(ctx)
}

// update mutates state unless the coordinator is closed.
func (c *Coordinator[T]) update(fn func(*State[T])) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state
	fn(&next)
	if !c.closed {
		c.state = next
	}
	return next
}

// settle applies fn, clears Loading and fires OnLoad.
func (c *Coordinator[T]) settle(fn func(*State[T])) State[T] {
	c.mu.Lock()
	next := c.state
	fn(&next)
	next.Loading = false
	live := !c.closed
	if live {
		c.state = next
	}
	c.mu.Unlock()

	if live && c.cfg.OnLoad != nil {
		c.cfg.OnLoad(next)
	}
	return next
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil {
			if a[i] != b[i] {
				return false
			}
			continue
		}
		ta, tb := reflect.TypeOf(a[i]), reflect.TypeOf(b[i])
		if ta != tb || !ta.Comparable() {
			return false
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
