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

// UpdatePlanInput represents the input for a partial plan update. Only
// non-nil fields are applied.
type UpdatePlanInput struct {
	PlanID        uuid.UUID
	UserID        uuid.UUID
	Name          *string
	TargetAmount  *decimal.Decimal
	NumberOfWeeks *int
	StartDate     *time.Time
	EndDate       *time.Time
	IsActive      *bool
}

// UpdatePlanOutput represents the output of a plan update.
type UpdatePlanOutput struct {
	Plan *entity.SavingPlan
}

// UpdatePlanUseCase handles plan update logic.
type UpdatePlanUseCase struct {
	planRepo adapter.SavingPlanRepository
	clock    adapter.Clock
}

// NewUpdatePlanUseCase creates a new UpdatePlanUseCase instance.
func NewUpdatePlanUseCase(planRepo adapter.SavingPlanRepository, clock adapter.Clock) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo: planRepo,
		clock:    clock,
	}
}

// Execute applies the patch and re-validates the plan. Applying the same
// patch twice yields the same final state.
func (uc *UpdatePlanUseCase) Execute(ctx context.Context, input UpdatePlanInput) (*UpdatePlanOutput, error) {
	plan, err := loadOwnedPlan(ctx, uc.planRepo, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.TargetAmount != nil {
		plan.TargetAmount = *input.TargetAmount
	}
	if input.NumberOfWeeks != nil {
		plan.NumberOfWeeks = *input.NumberOfWeeks
	}
	if input.StartDate != nil {
		plan.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		plan.EndDate = *input.EndDate
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	// Re-validate the patched state as a whole.
	if err := validatePlanFields(plan.Name, plan.TargetAmount, plan.NumberOfWeeks, plan.StartDate, plan.EndDate); err != nil {
		return nil, err
	}

	// The plan cannot shrink below its highest existing week number.
	if input.NumberOfWeeks != nil {
		for _, amount := range plan.WeeklyAmounts {
			if amount.WeekNumber > plan.NumberOfWeeks {
				return nil, domainerror.NewSavingsError(
					domainerror.ErrCodeInvalidWeekCount,
					fmt.Sprintf("number of weeks cannot be less than existing week %d", amount.WeekNumber),
					domainerror.ErrInvalidWeekCount,
				)
			}
		}
	}

	plan.UpdatedAt = uc.clock.Now().UTC()

	err = retryTransient(ctx, func() error {
		return uc.planRepo.Update(ctx, plan)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update saving plan: %w", err)
	}

	return &UpdatePlanOutput{Plan: plan}, nil
}
