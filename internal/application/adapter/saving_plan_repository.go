// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/domain/entity"
)

// SavingPlanRepository defines the interface for saving plan persistence.
//
// Multi-row operations (create with amounts, append, cascade delete,
// completion toggles) execute inside a single database transaction; partial
// writes are never visible to concurrent readers.
type SavingPlanRepository interface {
	// CreateWithWeeklyAmounts persists a plan and its initial weekly amounts
	// atomically. A duplicate week number surfaces as ErrDuplicateWeekNumber.
	CreateWithWeeklyAmounts(ctx context.Context, plan *entity.SavingPlan, amounts []*entity.WeeklyAmount) error

	// FindByID retrieves a plan with its weekly amounts ordered by week number.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SavingPlan, error)

	// FindByUserID retrieves a page of the user's plans, newest first,
	// together with the total count.
	FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.SavingPlan, int64, error)

	// FindActiveByUserID retrieves all of the user's active plans with their
	// weekly amounts, newest first.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SavingPlan, error)

	// Update saves changes to a plan's own fields.
	Update(ctx context.Context, plan *entity.SavingPlan) error

	// SoftDelete soft-deletes a plan and all its weekly amounts atomically.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// AppendWeeklyAmounts appends installments to an existing plan
	// atomically; a duplicate week number fails the whole batch with
	// ErrDuplicateWeekNumber.
	AppendWeeklyAmounts(ctx context.Context, planID uuid.UUID, amounts []*entity.WeeklyAmount) error

	// FindWeeklyAmount retrieves one installment of the given plan.
	FindWeeklyAmount(ctx context.Context, planID, weekID uuid.UUID) (*entity.WeeklyAmount, error)

	// UpdateWeeklyAmount saves changes to an installment. When recalculate is
	// true the plan's display week indexes and total saved amount are
	// recomputed in the same transaction.
	UpdateWeeklyAmount(ctx context.Context, amount *entity.WeeklyAmount, recalculate bool) error
}
