// Package savings contains saving-plan use cases.
package savings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

// maxPlanNameLength bounds the plan name, matching the storage column.
const maxPlanNameLength = 200

// WeeklyAmountInput represents one initial installment for plan creation.
type WeeklyAmountInput struct {
	WeekNumber int
	Amount     decimal.Decimal
	WeekStart  time.Time
	WeekEnd    time.Time
	Completed  bool
}

// CreatePlanInput represents the input for plan creation.
type CreatePlanInput struct {
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	NumberOfWeeks int
	StartDate     time.Time
	EndDate       time.Time
	WeeklyAmounts []WeeklyAmountInput // Optional
}

// CreatePlanOutput represents the output of plan creation.
type CreatePlanOutput struct {
	Plan *entity.SavingPlan
}

// CreatePlanUseCase handles saving plan creation logic.
type CreatePlanUseCase struct {
	planRepo adapter.SavingPlanRepository
	clock    adapter.Clock
}

// NewCreatePlanUseCase creates a new CreatePlanUseCase instance.
func NewCreatePlanUseCase(planRepo adapter.SavingPlanRepository, clock adapter.Clock) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		clock:    clock,
	}
}

// Execute performs the plan creation. The plan and any initial weekly
// amounts are persisted in one transaction.
func (uc *CreatePlanUseCase) Execute(ctx context.Context, input CreatePlanInput) (*CreatePlanOutput, error) {
	if err := validatePlanFields(input.Name, input.TargetAmount, input.NumberOfWeeks, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	plan := entity.NewSavingPlan(
		input.UserID,
		input.Name,
		input.TargetAmount,
		input.NumberOfWeeks,
		input.StartDate,
		input.EndDate,
	)

	amounts, err := buildInitialAmounts(plan, input.WeeklyAmounts, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = retryTransient(ctx, func() error {
		return uc.planRepo.CreateWithWeeklyAmounts(ctx, plan, amounts)
	})
	if err != nil {
		if classified := classifyConflict(err); classified != nil {
			return nil, classified
		}
		return nil, fmt.Errorf("failed to create saving plan: %w", err)
	}

	plan.WeeklyAmounts = amounts
	return &CreatePlanOutput{Plan: plan}, nil
}

// validatePlanFields checks the business rules shared by create and update.
func validatePlanFields(name string, target decimal.Decimal, weeks int, start, end time.Time) error {
	if name == "" || len(name) > maxPlanNameLength {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidPlanName,
			fmt.Sprintf("plan name must be non-empty and at most %d characters", maxPlanNameLength),
			domainerror.ErrInvalidPlanName,
		)
	}
	if !target.IsPositive() {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	if weeks <= 0 || weeks > entity.MaxPlanWeeks {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidWeekCount,
			fmt.Sprintf("number of weeks must be between 1 and %d", entity.MaxPlanWeeks),
			domainerror.ErrInvalidWeekCount,
		)
	}
	if end.Before(start) {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not precede start date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}

// buildInitialAmounts validates and converts the optional initial
// installments: week numbers must be unique and within [1, weeks], amounts
// positive, and the sum must not exceed the plan target.
func buildInitialAmounts(plan *entity.SavingPlan, inputs []WeeklyAmountInput, now time.Time) ([]*entity.WeeklyAmount, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	seen := make(map[int]bool, len(inputs))
	sum := decimal.Zero
	amounts := make([]*entity.WeeklyAmount, 0, len(inputs))

	for _, in := range inputs {
		if err := validateWeeklyAmountFields(in.WeekNumber, in.Amount, in.WeekStart, in.WeekEnd, plan.NumberOfWeeks); err != nil {
			return nil, err
		}
		if seen[in.WeekNumber] {
			return nil, domainerror.NewSavingsError(
				domainerror.ErrCodeDuplicateWeekNumber,
				fmt.Sprintf("week number %d appears more than once", in.WeekNumber),
				domainerror.ErrDuplicateWeekNumber,
			)
		}
		seen[in.WeekNumber] = true
		sum = sum.Add(in.Amount)

		amount := entity.NewWeeklyAmount(plan.ID, in.WeekNumber, in.Amount, in.WeekStart, in.WeekEnd)
		if in.Completed {
			amount.MarkCompleted(now)
			plan.TotalSavedAmount = plan.TotalSavedAmount.Add(in.Amount)
		}
		amounts = append(amounts, amount)
	}

	if sum.GreaterThan(plan.TargetAmount) {
		return nil, domainerror.NewSavingsError(
			domainerror.ErrCodeAmountsExceedTarget,
			"sum of weekly amounts exceeds the target amount",
			domainerror.ErrAmountsExceedTarget,
		)
	}

	return amounts, nil
}

// validateWeeklyAmountFields checks one installment's fields against the plan.
func validateWeeklyAmountFields(weekNumber int, amount decimal.Decimal, weekStart, weekEnd time.Time, totalWeeks int) error {
	if weekNumber < 1 || weekNumber > totalWeeks {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeWeekNumberOutOfRange,
			fmt.Sprintf("week number %d is outside [1, %d]", weekNumber, totalWeeks),
			domainerror.ErrWeekNumberOutOfRange,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidWeeklyAmount,
			"weekly amount must be greater than zero",
			domainerror.ErrInvalidWeeklyAmount,
		)
	}
	if !weekStart.IsZero() && !weekEnd.IsZero() && weekEnd.Before(weekStart) {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidDateRange,
			"week end must not precede week start",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}

// classifyConflict maps storage-level duplicate errors to a Conflict error,
// or returns nil when the error is not a conflict.
func classifyConflict(err error) error {
	if err == nil {
		return nil
	}
	var savErr *domainerror.SavingsError
	if errors.As(err, &savErr) {
		return savErr
	}
	if errors.Is(err, domainerror.ErrDuplicateWeekNumber) {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeDuplicateWeekNumber,
			"a weekly amount with this week number already exists",
			domainerror.ErrDuplicateWeekNumber,
		)
	}
	return nil
}
