package store

import (
	"context"
	"strings"
	"time"

	"association-site-api/internal/models"

	"gorm.io/gorm"
)

// Subscribe adds email to the mailing list. An inactive subscriber is
// reactivated; created reports whether a new row was inserted.
func Subscribe(ctx context.Context, db *gorm.DB, email, name string) (sub models.NewsletterSubscriber, created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	tx := db.WithContext(ctx)

	err = tx.Where("email = ?", email).First(&sub).Error
	switch translate(err) {
	case nil:
		if sub.Active {
			return sub, false, ErrDuplicate
		}
		sub.Active = true
		if name != "" {
			sub.Name = name
		}
		return sub, false, translate(tx.Save(&sub).Error)
	case ErrNotFound:
	default:
		return sub, false, err
	}

	sub = models.NewsletterSubscriber{
		ID:     newID("sub"),
		Email:  email,
		Name:   name,
		Active: true,
	}
	if err := tx.Create(&sub).Error; err != nil {
		return sub, false, translate(err)
	}
	return sub, true, nil
}

// Unsubscribe deactivates email
func Unsubscribe(ctx context.Context, db *gorm.DB, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res := db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).
		Where("email = ? AND active = ?", email, true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSubscribers returns every subscriber, newest first
func ListSubscribers(ctx context.Context, db *gorm.DB) ([]models.NewsletterSubscriber, error) {
	var subs []models.NewsletterSubscriber
	if err := db.WithContext(ctx).Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// DeleteSubscriber removes a subscriber for good
func DeleteSubscriber(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.NewsletterSubscriber{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NewsletterUpdate carries the optional fields of a newsletter update
type NewsletterUpdate struct {
	Subject *string
	Body    *string
}

// ListNewsletters returns every newsletter, newest first
func ListNewsletters(ctx context.Context, db *gorm.DB) ([]models.Newsletter, error) {
	var list []models.Newsletter
	if err := db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListSentNewsletters returns the newsletters already sent, latest first
func ListSentNewsletters(ctx context.Context, db *gorm.DB) ([]models.Newsletter, error) {
	var list []models.Newsletter
	err := db.WithContext(ctx).
		Where("status = ?", models.NewsletterSent).
		Order("sent_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetNewsletter returns a single newsletter
func GetNewsletter(ctx context.Context, db *gorm.DB, id string) (models.Newsletter, error) {
	var n models.Newsletter
	err := db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	return n, translate(err)
}

// CreateNewsletter inserts a draft newsletter
func CreateNewsletter(ctx context.Context, db *gorm.DB, n *models.Newsletter) error {
	if n.ID == "" {
		n.ID = newID("nl")
	}
	n.Status = models.NewsletterDraft
	n.SentAt = nil
	return translate(db.WithContext(ctx).Create(n).Error)
}

// UpdateNewsletter edits a draft; sent newsletters are immutable
func UpdateNewsletter(ctx context.Context, db *gorm.DB, id string, u NewsletterUpdate) (models.Newsletter, error) {
	n, err := GetNewsletter(ctx, db, id)
	if err != nil {
		return n, err
	}
	if n.Status == models.NewsletterSent {
		return n, ErrAlreadySent
	}
	if u.Subject != nil {
		n.Subject = *u.Subject
	}
	if u.Body != nil {
		n.Body = *u.Body
	}
	if err := db.WithContext(ctx).Save(&n).Error; err != nil {
		return n, translate(err)
	}
	return n, nil
}

// MarkNewsletterSent flags a draft as sent at the given time
func MarkNewsletterSent(ctx context.Context, db *gorm.DB, id string, at time.Time) (models.Newsletter, error) {
	n, err := GetNewsletter(ctx, db, id)
	if err != nil {
		return n, err
	}
	if n.Status == models.NewsletterSent {
		return n, ErrAlreadySent
	}
	n.Status = models.NewsletterSent
	n.SentAt = &at
	if err := db.WithContext(ctx).Save(&n).Error; err != nil {
		return n, translate(err)
	}
	return n, nil
}

// DeleteNewsletter removes a newsletter
func DeleteNewsletter(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Newsletter{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
