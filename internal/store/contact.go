package store

import (
	"context"

	"association-site-api/internal/models"

	"gorm.io/gorm"
)

// CreateContactMessage stores a contact form submission
func CreateContactMessage(ctx context.Context, db *gorm.DB, m *models.ContactMessage) error {
	if m.ID == "" {
		m.ID = newID("msg")
	}
	m.Read = false
	return translate(db.WithContext(ctx).Create(m).Error)
}

// ListContactMessages returns messages newest first, optionally only unread ones
func ListContactMessages(ctx context.Context, db *gorm.DB, unreadOnly bool) ([]models.ContactMessage, error) {
	query := db.WithContext(ctx).Model(&models.ContactMessage{})
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	var msgs []models.ContactMessage
	if err := query.Order("created_at desc").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkContactMessageRead flags a message as read
func MarkContactMessageRead(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAdminByUsername looks up a dashboard account
func FindAdminByUsername(ctx context.Context, db *gorm.DB, username string) (models.AdminUser, error) {
	var admin models.AdminUser
	err := db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	return admin, translate(err)
}
