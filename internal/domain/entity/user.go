// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the Money Saver system. The ID is the subject
// assigned by the external identity provider; a row is created on first
// successful authentication sync.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	Provider           string
	EmailNotifications bool
	LastReminderSent   *time.Time
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// NewUser creates a new User with default values from a verified identity.
func NewUser(id uuid.UUID, email, name, provider string) *User {
	now := time.Now().UTC()
	if provider == "" {
		provider = "email"
	}
	return &User{
		ID:                 id,
		Email:              email,
		Name:               name,
		Provider:           provider,
		EmailNotifications: true,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
