// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/money-saver/backend/internal/domain/entity"
)

// WeeklyAmountModel represents the weekly_amounts table in the database.
// The composite unique index makes the per-plan week number canonical; a
// concurrent duplicate insert loses at commit time.
type WeeklyAmountModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SavingPlanID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_weekly_amounts_plan_week"`
	WeekNumber   int             `gorm:"not null;uniqueIndex:idx_weekly_amounts_plan_week"`
	WeekIndex    *int
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	WeekStart    time.Time       `gorm:"type:date"`
	WeekEnd      time.Time       `gorm:"type:date"`
	Completed    bool            `gorm:"not null;default:false"`
	CompletedAt  *time.Time      `gorm:"type:timestamptz"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the WeeklyAmountModel.
func (WeeklyAmountModel) TableName() string {
	return "weekly_amounts"
}

// ToEntity converts a WeeklyAmountModel to a domain WeeklyAmount entity.
func (m *WeeklyAmountModel) ToEntity() *entity.WeeklyAmount {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.WeeklyAmount{
		ID:           m.ID,
		SavingPlanID: m.SavingPlanID,
		WeekNumber:   m.WeekNumber,
		WeekIndex:    m.WeekIndex,
		Amount:       m.Amount,
		WeekStart:    m.WeekStart,
		WeekEnd:      m.WeekEnd,
		Completed:    m.Completed,
		CompletedAt:  m.CompletedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

// WeeklyAmountFromEntity creates a WeeklyAmountModel from a domain
// WeeklyAmount entity.
func WeeklyAmountFromEntity(amount *entity.WeeklyAmount) *WeeklyAmountModel {
	var deletedAt gorm.DeletedAt
	if amount.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *amount.DeletedAt, Valid: true}
	}

	return &WeeklyAmountModel{
		ID:           amount.ID,
		SavingPlanID: amount.SavingPlanID,
		WeekNumber:   amount.WeekNumber,
		WeekIndex:    amount.WeekIndex,
		Amount:       amount.Amount,
		WeekStart:    amount.WeekStart,
		WeekEnd:      amount.WeekEnd,
		Completed:    amount.Completed,
		CompletedAt:  amount.CompletedAt,
		CreatedAt:    amount.CreatedAt,
		UpdatedAt:    amount.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}
