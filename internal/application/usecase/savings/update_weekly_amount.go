// Package savings contains saving-plan use cases.
package savings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

// UpdateWeeklyAmountInput represents the input for a partial installment
// update. Only non-nil fields are applied.
type UpdateWeeklyAmountInput struct {
	PlanID    uuid.UUID
	WeekID    uuid.UUID
	UserID    uuid.UUID
	Amount    *decimal.Decimal
	Completed *bool
	WeekStart *time.Time
	WeekEnd   *time.Time
}

// UpdateWeeklyAmountOutput represents the output of an installment update.
type UpdateWeeklyAmountOutput struct {
	Amount *entity.WeeklyAmount
}

// UpdateWeeklyAmountUseCase handles installment updates, including
// completion toggles.
type UpdateWeeklyAmountUseCase struct {
	planRepo adapter.SavingPlanRepository
	clock    adapter.Clock
}

// NewUpdateWeeklyAmountUseCase creates a new UpdateWeeklyAmountUseCase instance.
func NewUpdateWeeklyAmountUseCase(planRepo adapter.SavingPlanRepository, clock adapter.Clock) *UpdateWeeklyAmountUseCase {
	return &UpdateWeeklyAmountUseCase{
		planRepo: planRepo,
		clock:    clock,
	}
}

// Execute patches the installment and persists it together with the plan's
// recomputed saved total and week indexes. Toggling completion on stamps
// CompletedAt; toggling off clears it along with the week index.
func (uc *UpdateWeeklyAmountUseCase) Execute(ctx context.Context, input UpdateWeeklyAmountInput) (*UpdateWeeklyAmountOutput, error) {
	if _, err := loadOwnedPlan(ctx, uc.planRepo, input.PlanID, input.UserID); err != nil {
		return nil, err
	}

	var amount *entity.WeeklyAmount
	err := retryTransient(ctx, func() error {
		var findErr error
		amount, findErr = uc.planRepo.FindWeeklyAmount(ctx, input.PlanID, input.WeekID)
		return findErr
	})
	if err != nil {
		if classified := classifyLookup(err); classified != nil {
			return nil, classified
		}
		return nil, fmt.Errorf("failed to load weekly amount: %w", err)
	}

	if input.Amount != nil {
		if input.Amount.Sign() <= 0 {
			return nil, domainerror.NewSavingsError(
				domainerror.ErrCodeInvalidWeeklyAmount,
				"weekly amount must be greater than zero",
				domainerror.ErrInvalidWeeklyAmount,
			)
		}
		amount.Amount = *input.Amount
	}
	if input.WeekStart != nil {
		amount.WeekStart = *input.WeekStart
	}
	if input.WeekEnd != nil {
		amount.WeekEnd = *input.WeekEnd
	}
	if !amount.WeekStart.IsZero() && !amount.WeekEnd.IsZero() && amount.WeekEnd.Before(amount.WeekStart) {
		return nil, domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidDateRange,
			"week end must not precede week start",
			domainerror.ErrInvalidDateRange,
		)
	}

	recalculate := false
	if input.Completed != nil && *input.Completed != amount.Completed {
		if *input.Completed {
			amount.MarkCompleted(uc.clock.Now())
		} else {
			amount.UnmarkCompleted()
		}
		recalculate = true
	}
	// Changing the amount of a completed installment moves the plan total.
	if input.Amount != nil && amount.Completed {
		recalculate = true
	}

	amount.UpdatedAt = uc.clock.Now()

	err = retryTransient(ctx, func() error {
		return uc.planRepo.UpdateWeeklyAmount(ctx, amount, recalculate)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update weekly amount: %w", err)
	}

	return &UpdateWeeklyAmountOutput{Amount: amount}, nil
}
