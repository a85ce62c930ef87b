// Package datasource binds the website's cached data families to their
// cache keys, database queries and TTL classes.
package datasource

import (
	"context"
	"time"

	"association-site-api/internal/cache"
	"association-site-api/internal/datasync"
	"association-site-api/internal/models"
	"association-site-api/internal/store"
	"association-site-api/internal/visibility"

	"gorm.io/gorm"
)

// TTL classes.
const (
	TTLShort  = 2 * time.Minute
	TTLMedium = 5 * time.Minute
	TTLLong   = 15 * time.Minute
)

// Cache keys and key-family prefixes.
const (
	KeyMediaItems            = "media_items"
	KeyNewsletterSubscribers = "newsletter_subscribers"
	KeyNewsletters           = "newsletters"
	KeyPublishedNewsletters  = "newsletters_published"
	KeyDashboardStats        = "dashboard_stats"

	PrefixMedia       = "media_"
	PrefixNewsletters = "newsletters"
	PrefixDashboard   = "dashboard_"
)

// DefaultStatsPollInterval is used when Options.StatsPollInterval is zero.
const DefaultStatsPollInterval = 30 * time.Second

// Options configures Sources.
type Options struct {
	StatsPollInterval time.Duration
	Metrics           datasync.Metrics
	Now               func() time.Time

	// OnStats is called after every dashboard stats load.
	OnStats func(datasync.State[models.DashboardStats])
}

// Sources owns the named coordinators of the site.
type Sources struct {
	Cache cache.Cache

	MediaItems            *datasync.Coordinator[[]models.MediaItem]
	NewsletterSubscribers *datasync.Coordinator[[]models.NewsletterSubscriber]
	Newsletters           *datasync.Coordinator[[]models.Newsletter]
	PublishedNewsletters  *datasync.Coordinator[[]models.Newsletter]
	DashboardStats        *datasync.Coordinator[models.DashboardStats]

	db *gorm.DB
}

// New builds the coordinators. Call Start to mount them and Close to release them.
func New(db *gorm.DB, c cache.Cache, vis visibility.Signal, opts Options) *Sources {
	interval := opts.StatsPollInterval
	if interval <= 0 {
		interval = DefaultStatsPollInterval
	}
	dsOpts := datasync.Options{Metrics: opts.Metrics, Now: opts.Now}

	s := &Sources{
		Cache: c,
		db:    db,
	}

	s.MediaItems = datasync.New(c, vis, datasync.Config[[]models.MediaItem]{
		Key: KeyMediaItems,
		TTL: TTLMedium,
		Fetch: func(ctx context.Context) ([]models.MediaItem, error) {
			return store.ListMedia(ctx, db)
		},
	}, dsOpts)

	s.NewsletterSubscribers = datasync.New(c, vis, datasync.Config[[]models.NewsletterSubscriber]{
		Key: KeyNewsletterSubscribers,
		TTL: TTLShort,
		Fetch: func(ctx context.Context) ([]models.NewsletterSubscriber, error) {
			return store.ListSubscribers(ctx, db)
		},
	}, dsOpts)

	s.Newsletters = datasync.New(c, vis, datasync.Config[[]models.Newsletter]{
		Key: KeyNewsletters,
		TTL: TTLMedium,
		Fetch: func(ctx context.Context) ([]models.Newsletter, error) {
			return store.ListNewsletters(ctx, db)
		},
	}, dsOpts)

	s.PublishedNewsletters = datasync.New(c, vis, datasync.Config[[]models.Newsletter]{
		Key: KeyPublishedNewsletters,
		TTL: TTLLong,
		Fetch: func(ctx context.Context) ([]models.Newsletter, error) {
			return store.ListSentNewsletters(ctx, db)
		},
	}, dsOpts)

	s.DashboardStats = datasync.New(c, vis, datasync.Config[models.DashboardStats]{
		Key: KeyDashboardStats,
		TTL: TTLShort,
		Fetch: func(ctx context.Context) (models.DashboardStats, error) {
			return store.DashboardStats(ctx, db)
		},
		Polling: datasync.PollingConfig{Enabled: true, Interval: interval},
		OnLoad:  opts.OnStats,
	}, dsOpts)

	return s
}

// Start mounts every named coordinator.
func (s *Sources) Start(ctx context.Context) error {
	starts := []func(context.Context, ...any) error{
		s.MediaItems.Start,
		s.NewsletterSubscribers.Start,
		s.Newsletters.Start,
		s.PublishedNewsletters.Start,
		s.DashboardStats.Start,
	}
	for _, start := range starts {
		if err := start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every coordinator.
func (s *Sources) Close() {
	s.MediaItems.Close()
	s.NewsletterSubscribers.Close()
	s.Newsletters.Close()
	s.PublishedNewsletters.Close()
	s.DashboardStats.Close()
}

// FilterCategory returns the items of one category, keeping their order.
// Category views are cut from the media_items list and have no cache key.
func FilterCategory(items []models.MediaItem, category string) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// InvalidateMedia drops every media key and the dashboard counters.
// Call it after any media write.
func (s *Sources) InvalidateMedia() int {
	return s.Cache.InvalidatePrefix(PrefixMedia) + s.Cache.InvalidatePrefix(PrefixDashboard)
}

// InvalidateSubscribers drops the subscriber list and the dashboard counters.
func (s *Sources) InvalidateSubscribers() int {
	return s.Cache.InvalidatePrefix(KeyNewsletterSubscribers) + s.Cache.InvalidatePrefix(PrefixDashboard)
}

// InvalidateNewsletters drops both newsletter lists and the dashboard counters.
func (s *Sources) InvalidateNewsletters() int {
	return s.Cache.InvalidatePrefix(PrefixNewsletters) + s.Cache.InvalidatePrefix(PrefixDashboard)
}

// InvalidateContact drops the dashboard counters; contact messages are not cached.
func (s *Sources) InvalidateContact() int {
	return s.Cache.InvalidatePrefix(PrefixDashboard)
}
