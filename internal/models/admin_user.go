package models

import (
	"gorm.io/gorm"
)

// AdminUser is a dashboard administrator
type AdminUser struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	gorm.Model
}

// TableName specifies the table name for AdminUser Model
func (AdminUser) TableName() string {
	return "admin_users"
}
