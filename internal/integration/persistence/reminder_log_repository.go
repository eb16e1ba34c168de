// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
	"github.com/money-saver/backend/internal/integration/persistence/model"
)

// reminderLogRepository implements the adapter.ReminderLogRepository interface.
type reminderLogRepository struct {
	db *gorm.DB
}

// NewReminderLogRepository creates a new reminder log repository instance.
func NewReminderLogRepository(db *gorm.DB) adapter.ReminderLogRepository {
	return &reminderLogRepository{
		db: db,
	}
}

// Create appends a send-outcome record.
func (r *reminderLogRepository) Create(ctx context.Context, log *entity.ReminderLog) error {
	logModel := model.ReminderLogFromEntity(log)
	result := r.db.WithContext(ctx).Create(logModel)
	if result.Error != nil {
		return classifyStorageError(result.Error)
	}
	return nil
}

// FindByUserID retrieves the most recent records for a user.
func (r *reminderLogRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ReminderLog, error) {
	if limit <= 0 {
		limit = 20
	}

	var logModels []model.ReminderLogModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logModels)
	if result.Error != nil {
		return nil, classifyStorageError(result.Error)
	}

	logs := make([]*entity.ReminderLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToEntity()
	}
	return logs, nil
}
