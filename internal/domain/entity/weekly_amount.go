// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WeeklyAmount represents one installment of a SavingPlan.
//
// WeekNumber is the canonical 1-based position within the plan and is unique
// per plan. WeekIndex is display-only metadata recomputed from completion
// order; it is nullable and never used as a sort key for reads.
type WeeklyAmount struct {
	ID           uuid.UUID
	SavingPlanID uuid.UUID
	WeekNumber   int
	WeekIndex    *int
	Amount       decimal.Decimal
	WeekStart    time.Time
	WeekEnd      time.Time
	Completed    bool
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewWeeklyAmount creates a new WeeklyAmount entity.
func NewWeeklyAmount(savingPlanID uuid.UUID, weekNumber int, amount decimal.Decimal, weekStart, weekEnd time.Time) *WeeklyAmount {
	now := time.Now().UTC()
	return &WeeklyAmount{
		ID:           uuid.New(),
		SavingPlanID: savingPlanID,
		WeekNumber:   weekNumber,
		Amount:       amount,
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// MarkCompleted marks the installment as saved at the given time.
func (w *WeeklyAmount) MarkCompleted(at time.Time) {
	w.Completed = true
	w.CompletedAt = &at
}

// UnmarkCompleted clears the completion state.
func (w *WeeklyAmount) UnmarkCompleted() {
	w.Completed = false
	w.CompletedAt = nil
	w.WeekIndex = nil
}
