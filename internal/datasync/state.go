package datasync

import (
	"context"
	"time"
)

// AdvisoryCachedData is the error marker set when a fetch failed and a
// previously cached value is served instead.
const AdvisoryCachedData = "Showing cached data - connection limited"

// FetchFunc loads a fresh value from the remote source.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// PollingConfig controls periodic forced refreshes while the dashboard is visible.
type PollingConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Outcome classifies how the last Load settled.
type Outcome int

const (
	// OutcomeNone means no Load has settled yet.
	OutcomeNone Outcome = iota
	// OutcomeCached is a fresh cache hit; the fetch function was not called.
	OutcomeCached
	// OutcomeFresh is a successful fetch.
	OutcomeFresh
	// OutcomeDegraded is a failed fetch served from a stale cache entry.
	OutcomeDegraded
	// OutcomeFailed is a failed fetch with nothing cached.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCached:
		return "cached"
	case OutcomeFresh:
		return "fresh"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// State is the coordinator's exposed fetch state. Callers get copies.
type State[T any] struct {
	Data        T
	HasData     bool
	Loading     bool
	Error       string
	LastUpdated time.Time
	Outcome     Outcome
}

// View is the read contract handed to API consumers. Refresh forces a fetch
// through the owning coordinator; over HTTP it is the ?refresh=true query.
type View[T any] struct {
	Data        *T         `json:"data"`
	Loading     bool       `json:"loading"`
	Error       *string    `json:"error"`
	LastUpdated *time.Time `json:"lastUpdated"`
	IsFromCache bool       `json:"isFromCache"`

	Refresh func(ctx context.Context) State[T] `json:"-"`
}

func newView[T any](s State[T], fromCache bool, refresh func(context.Context) State[T]) View[T] {
	v := View[T]{Loading: s.Loading, IsFromCache: fromCache, Refresh: refresh}
	if s.HasData {
		data := s.Data
		v.Data = &data
	}
	if s.Error != "" {
		msg := s.Error
		v.Error = &msg
	}
	if !s.LastUpdated.IsZero() {
		at := s.LastUpdated
		v.LastUpdated = &at
	}
	return v
}

// Metrics receives cache and fetch events per key.
type Metrics interface {
	Hit(key string)
	Miss(key string)
	FetchFailed(key string)
	Degraded(key string)
}

// NoopMetrics ignores all events.
type NoopMetrics struct{}

func (NoopMetrics) Hit(string)         {}
func (NoopMetrics) Miss(string)        {}
func (NoopMetrics) FetchFailed(string) {}
func (NoopMetrics) Degraded(string)    {}
