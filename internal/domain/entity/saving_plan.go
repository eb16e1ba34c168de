// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxPlanWeeks is the upper bound on a plan's duration (two years).
const MaxPlanWeeks = 104

// SavingPlan represents a user's named savings goal with a target amount
// broken into weekly installments.
type SavingPlan struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	TargetAmount     decimal.Decimal
	NumberOfWeeks    int
	TotalSavedAmount decimal.Decimal
	StartDate        time.Time
	EndDate          time.Time
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time

	// WeeklyAmounts is populated on reads, ordered by week number.
	WeeklyAmounts []*WeeklyAmount
}

// NewSavingPlan creates a new SavingPlan entity.
func NewSavingPlan(userID uuid.UUID, name string, targetAmount decimal.Decimal, numberOfWeeks int, startDate, endDate time.Time) *SavingPlan {
	now := time.Now().UTC()
	return &SavingPlan{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             name,
		TargetAmount:     targetAmount,
		NumberOfWeeks:    numberOfWeeks,
		TotalSavedAmount: decimal.Zero,
		StartDate:        startDate,
		EndDate:          endDate,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsCompleted reports whether the saved total has reached the target.
func (p *SavingPlan) IsCompleted() bool {
	return p.TotalSavedAmount.GreaterThanOrEqual(p.TargetAmount)
}

// RemainingAmount returns the amount left to save, floored at zero.
func (p *SavingPlan) RemainingAmount() decimal.Decimal {
	remaining := p.TargetAmount.Sub(p.TotalSavedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
