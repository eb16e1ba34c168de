// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/domain/entity"
)

// ReminderLogRepository records the outcome of reminder send attempts.
type ReminderLogRepository interface {
	// Create appends a send-outcome record.
	Create(ctx context.Context, log *entity.ReminderLog) error

	// FindByUserID retrieves the most recent records for a user.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ReminderLog, error)
}
