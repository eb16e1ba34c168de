// Package dto defines request and response shapes for the API endpoints.
package dto

import (
	"time"

	"github.com/money-saver/backend/internal/domain/entity"
)

// UpdatePreferencesRequest is the body for PATCH /users/me/preferences.
type UpdatePreferencesRequest struct {
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
	Name               *string `json:"name,omitempty"`
}

// UserResponse is the API representation of a user profile.
type UserResponse struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Provider           string     `json:"provider"`
	EmailNotifications bool       `json:"email_notifications"`
	LastReminderSent   *time.Time `json:"last_reminder_sent,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// SyncUserResponse is the body for POST /auth/sync.
type SyncUserResponse struct {
	User    UserResponse `json:"user"`
	Created bool         `json:"created"`
}

// ToUserResponse converts a domain User to its API shape.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		Provider:           user.Provider,
		EmailNotifications: user.EmailNotifications,
		LastReminderSent:   user.LastReminderSent,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}
