// Package savings contains saving-plan use cases.
package savings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

// AddWeeklyAmountsInput represents the input for appending installments.
type AddWeeklyAmountsInput struct {
	PlanID  uuid.UUID
	UserID  uuid.UUID
	Amounts []WeeklyAmountInput
}

// AddWeeklyAmountsOutput represents the output of appending installments.
type AddWeeklyAmountsOutput struct {
	Amounts []*entity.WeeklyAmount
}

// AddWeeklyAmountsUseCase handles appending installments to a plan.
type AddWeeklyAmountsUseCase struct {
	planRepo adapter.SavingPlanRepository
	clock    adapter.Clock
}

// NewAddWeeklyAmountsUseCase creates a new AddWeeklyAmountsUseCase instance.
func NewAddWeeklyAmountsUseCase(planRepo adapter.SavingPlanRepository, clock adapter.Clock) *AddWeeklyAmountsUseCase {
	return &AddWeeklyAmountsUseCase{
		planRepo: planRepo,
		clock:    clock,
	}
}

// Execute appends the batch in one transaction. A duplicate week number,
// whether inside the batch or against existing rows, fails the whole batch
// with a Conflict and inserts nothing.
func (uc *AddWeeklyAmountsUseCase) Execute(ctx context.Context, input AddWeeklyAmountsInput) (*AddWeeklyAmountsOutput, error) {
	if len(input.Amounts) == 0 {
		return &AddWeeklyAmountsOutput{}, nil
	}

	plan, err := loadOwnedPlan(ctx, uc.planRepo, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}

	existing := make(map[int]bool, len(plan.WeeklyAmounts))
	for _, amount := range plan.WeeklyAmounts {
		existing[amount.WeekNumber] = true
	}

	now := uc.clock.Now()
	amounts := make([]*entity.WeeklyAmount, 0, len(input.Amounts))
	for _, in := range input.Amounts {
		if err := validateWeeklyAmountFields(in.WeekNumber, in.Amount, in.WeekStart, in.WeekEnd, plan.NumberOfWeeks); err != nil {
			return nil, err
		}
		if existing[in.WeekNumber] {
			return nil, domainerror.NewSavingsError(
				domainerror.ErrCodeDuplicateWeekNumber,
				fmt.Sprintf("week number %d already exists for this plan", in.WeekNumber),
				domainerror.ErrDuplicateWeekNumber,
			)
		}
		existing[in.WeekNumber] = true

		amount := entity.NewWeeklyAmount(plan.ID, in.WeekNumber, in.Amount, in.WeekStart, in.WeekEnd)
		if in.Completed {
			amount.MarkCompleted(now)
		}
		amounts = append(amounts, amount)
	}

	err = retryTransient(ctx, func() error {
		return uc.planRepo.AppendWeeklyAmounts(ctx, plan.ID, amounts)
	})
	if err != nil {
		if classified := classifyConflict(err); classified != nil {
			return nil, classified
		}
		return nil, fmt.Errorf("failed to add weekly amounts: %w", err)
	}

	return &AddWeeklyAmountsOutput{Amounts: amounts}, nil
}
