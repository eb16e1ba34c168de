// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/domain/entity"
)

// ReminderLogModel represents the reminder_logs table in the database.
type ReminderLogModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientEmail string    `gorm:"type:varchar(255);not null"`
	Subject        string    `gorm:"type:varchar(255);not null"`
	Status         string    `gorm:"type:varchar(10);not null"`
	ProviderID     string    `gorm:"type:varchar(100)"`
	LastError      string    `gorm:"type:text"`
	CycleAt        time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the ReminderLogModel.
func (ReminderLogModel) TableName() string {
	return "reminder_logs"
}

// ToEntity converts a ReminderLogModel to a domain ReminderLog entity.
func (m *ReminderLogModel) ToEntity() *entity.ReminderLog {
	return &entity.ReminderLog{
		ID:             m.ID,
		UserID:         m.UserID,
		RecipientEmail: m.RecipientEmail,
		Subject:        m.Subject,
		Status:         entity.ReminderStatus(m.Status),
		ProviderID:     m.ProviderID,
		LastError:      m.LastError,
		CycleAt:        m.CycleAt,
		CreatedAt:      m.CreatedAt,
	}
}

// ReminderLogFromEntity creates a ReminderLogModel from a domain ReminderLog entity.
func ReminderLogFromEntity(log *entity.ReminderLog) *ReminderLogModel {
	return &ReminderLogModel{
		ID:             log.ID,
		UserID:         log.UserID,
		RecipientEmail: log.RecipientEmail,
		Subject:        log.Subject,
		Status:         string(log.Status),
		ProviderID:     log.ProviderID,
		LastError:      log.LastError,
		CycleAt:        log.CycleAt,
		CreatedAt:      log.CreatedAt,
	}
}
