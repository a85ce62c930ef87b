package store

import (
	"context"

	"association-site-api/internal/models"

	"gorm.io/gorm"
)

// MediaUpdate carries the optional fields of a media item update
type MediaUpdate struct {
	Title       *string
	Description *string
	URL         *string
	Kind        *models.MediaKind
	Category    *string
}

// ListMedia returns every media item, newest first
func ListMedia(ctx context.Context, db *gorm.DB) ([]models.MediaItem, error) {
	var items []models.MediaItem
	if err := db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetMedia returns a single media item
func GetMedia(ctx context.Context, db *gorm.DB, id string) (models.MediaItem, error) {
	var item models.MediaItem
	err := db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	return item, translate(err)
}

// CreateMedia inserts item, assigning an ID when empty
func CreateMedia(ctx context.Context, db *gorm.DB, item *models.MediaItem) error {
	if item.ID == "" {
		item.ID = newID("media")
	}
	if item.Kind == "" {
		item.Kind = models.KindPhoto
	}
	return translate(db.WithContext(ctx).Create(item).Error)
}

// UpdateMedia applies the non-nil fields of u to the item
func UpdateMedia(ctx context.Context, db *gorm.DB, id string, u MediaUpdate) (models.MediaItem, error) {
	item, err := GetMedia(ctx, db, id)
	if err != nil {
		return item, err
	}
	if u.Title != nil {
		item.Title = *u.Title
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.URL != nil {
		item.URL = *u.URL
	}
	if u.Kind != nil {
		item.Kind = *u.Kind
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if err := db.WithContext(ctx).Save(&item).Error; err != nil {
		return item, translate(err)
	}
	return item, nil
}

// DeleteMedia removes the item
func DeleteMedia(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.MediaItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
