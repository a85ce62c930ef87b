package store

import (
	"context"

	"association-site-api/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DashboardStats computes the admin dashboard counters. The counts run
// concurrently; the first failing query cancels the others.
func DashboardStats(ctx context.Context, db *gorm.DB) (models.DashboardStats, error) {
	var stats models.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, model any, query string, args ...any) {
		g.Go(func() error {
			q := db.WithContext(ctx).Model(model)
			if query != "" {
				q = q.Where(query, args...)
			}
			return q.Count(dst).Error
		})
	}

	count(&stats.MediaItems, &models.MediaItem{}, "")
	count(&stats.TotalSubscribers, &models.NewsletterSubscriber{}, "")
	count(&stats.ActiveSubscribers, &models.NewsletterSubscriber{}, "active = ?", true)
	count(&stats.DraftNewsletters, &models.Newsletter{}, "status = ?", models.NewsletterDraft)
	count(&stats.SentNewsletters, &models.Newsletter{}, "status = ?", models.NewsletterSent)
	count(&stats.UnreadMessages, &models.ContactMessage{}, "read = ?", false)

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
