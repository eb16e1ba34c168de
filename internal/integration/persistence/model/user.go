// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/money-saver/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
type UserModel struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email              string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name               string         `gorm:"type:varchar(100);not null"`
	Provider           string         `gorm:"type:varchar(20);not null;default:'email'"`
	EmailNotifications bool           `gorm:"default:true"`
	LastReminderSent   *time.Time     `gorm:"type:timestamptz;index"`
	IsActive           bool           `gorm:"default:true"`
	CreatedAt          time.Time      `gorm:"not null"`
	UpdatedAt          time.Time      `gorm:"not null"`
	DeletedAt          gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.User{
		ID:                 m.ID,
		Email:              m.Email,
		Name:               m.Name,
		Provider:           m.Provider,
		EmailNotifications: m.EmailNotifications,
		LastReminderSent:   m.LastReminderSent,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	var deletedAt gorm.DeletedAt
	if user.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *user.DeletedAt, Valid: true}
	}

	return &UserModel{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		Provider:           user.Provider,
		EmailNotifications: user.EmailNotifications,
		LastReminderSent:   user.LastReminderSent,
		IsActive:           user.IsActive,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}
