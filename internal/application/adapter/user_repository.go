// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update updates an existing user in the database.
	Update(ctx context.Context, user *entity.User) error

	// Delete soft-deletes a user.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateLastReminderSent sets the user's last-reminder-sent timestamp.
	UpdateLastReminderSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error

	// FindReminderEligible returns users eligible for a reminder cycle:
	// active, notifications enabled, owning at least one active plan with an
	// incomplete weekly amount, and last reminded before the cutoff (or never).
	FindReminderEligible(ctx context.Context, cutoff time.Time) ([]*entity.User, error)
}
