// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/money-saver/backend/internal/domain/entity"
)

// SavingPlanModel represents the saving_plans table in the database.
type SavingPlanModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(200);not null"`
	TargetAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NumberOfWeeks    int             `gorm:"not null"`
	TotalSavedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StartDate        time.Time       `gorm:"type:date;not null"`
	EndDate          time.Time       `gorm:"type:date;not null"`
	IsActive         bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
	DeletedAt        gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	WeeklyAmounts []WeeklyAmountModel `gorm:"foreignKey:SavingPlanID"`
}

// TableName returns the table name for the SavingPlanModel.
func (SavingPlanModel) TableName() string {
	return "saving_plans"
}

// ToEntity converts a SavingPlanModel to a domain SavingPlan entity.
func (m *SavingPlanModel) ToEntity() *entity.SavingPlan {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	plan := &entity.SavingPlan{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		TargetAmount:     m.TargetAmount,
		NumberOfWeeks:    m.NumberOfWeeks,
		TotalSavedAmount: m.TotalSavedAmount,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAt,
	}

	if len(m.WeeklyAmounts) > 0 {
		plan.WeeklyAmounts = make([]*entity.WeeklyAmount, 0, len(m.WeeklyAmounts))
		for i := range m.WeeklyAmounts {
			plan.WeeklyAmounts = append(plan.WeeklyAmounts, m.WeeklyAmounts[i].ToEntity())
		}
	}

	return plan
}

// SavingPlanFromEntity creates a SavingPlanModel from a domain SavingPlan
// entity. Weekly amounts are persisted separately.
func SavingPlanFromEntity(plan *entity.SavingPlan) *SavingPlanModel {
	var deletedAt gorm.DeletedAt
	if plan.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *plan.DeletedAt, Valid: true}
	}

	return &SavingPlanModel{
		ID:               plan.ID,
		UserID:           plan.UserID,
		Name:             plan.Name,
		TargetAmount:     plan.TargetAmount,
		NumberOfWeeks:    plan.NumberOfWeeks,
		TotalSavedAmount: plan.TotalSavedAmount,
		StartDate:        plan.StartDate,
		EndDate:          plan.EndDate,
		IsActive:         plan.IsActive,
		CreatedAt:        plan.CreatedAt,
		UpdatedAt:        plan.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}
