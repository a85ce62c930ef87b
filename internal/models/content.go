package models

import (
	"time"

	"gorm.io/gorm"
)

// MediaKind represents the kind of a media library item
type MediaKind string

const (
	KindPhoto    MediaKind = "photo"
	KindVideo    MediaKind = "video"
	KindDocument MediaKind = "document"
)

// Valid reports whether k is a known kind
func (k MediaKind) Valid() bool {
	switch k {
	case KindPhoto, KindVideo, KindDocument:
		return true
	}
	return false
}

// MediaItem represents an entry of the media library
type MediaItem struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	URL         string         `json:"url" gorm:"not null"`
	Kind        MediaKind      `json:"kind" gorm:"not null;default:'photo'"`
	Category    string         `json:"category" gorm:"index"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (MediaItem) TableName() string {
	return "media_items"
}

// NewsletterSubscriber represents a newsletter mailing list entry
type NewsletterSubscriber struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}

// NewsletterStatus represents the lifecycle of a newsletter
type NewsletterStatus string

const (
	NewsletterDraft NewsletterStatus = "draft"
	NewsletterSent  NewsletterStatus = "sent"
)

// Newsletter represents a newsletter issue
type Newsletter struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	Subject   string           `json:"subject" gorm:"not null"`
	Body      string           `json:"body" gorm:"not null"`
	Status    NewsletterStatus `json:"status" gorm:"not null;default:'draft';index"`
	SentAt    *time.Time       `json:"sentAt"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (Newsletter) TableName() string {
	return "newsletters"
}

// ContactMessage represents a message left through the contact form
type ContactMessage struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message" gorm:"not null"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// DashboardStats holds the admin dashboard counters. It is computed, not stored.
type DashboardStats struct {
	MediaItems        int64 `json:"mediaItems"`
	ActiveSubscribers int64 `json:"activeSubscribers"`
	TotalSubscribers  int64 `json:"totalSubscribers"`
	DraftNewsletters  int64 `json:"draftNewsletters"`
	SentNewsletters   int64 `json:"sentNewsletters"`
	UnreadMessages    int64 `json:"unreadMessages"`
}

// All lists every persisted model, in migration order
func All() []any {
	return []any{
		&AdminUser{},
		&MediaItem{},
		&NewsletterSubscriber{},
		&Newsletter{},
		&ContactMessage{},
	}
}
