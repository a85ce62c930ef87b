// Package store holds the website's database queries. Handlers and data
// accessors call it; it knows nothing about caching.
package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")

	// ErrAlreadySent is returned when editing or re-sending a sent newsletter.
	ErrAlreadySent = errors.New("newsletter already sent")
)

// translate maps gorm errors to store errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return ErrDuplicate
	}
	return err
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
