// Package savings contains saving-plan use cases.
package savings

import (
	"context"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
)

// GetPlanStatsInput represents the input for computing one plan's progress.
type GetPlanStatsInput struct {
	PlanID uuid.UUID
	UserID uuid.UUID
}

// GetPlanStatsOutput represents the output of a plan stats computation.
type GetPlanStatsOutput struct {
	Plan  *entity.SavingPlan
	Stats *PlanStats
}

// GetPlanStatsUseCase handles per-plan progress statistics.
type GetPlanStatsUseCase struct {
	planRepo adapter.SavingPlanRepository
	clock    adapter.Clock
}

// NewGetPlanStatsUseCase creates a new GetPlanStatsUseCase instance.
func NewGetPlanStatsUseCase(planRepo adapter.SavingPlanRepository, clock adapter.Clock) *GetPlanStatsUseCase {
	return &GetPlanStatsUseCase{
		planRepo: planRepo,
		clock:    clock,
	}
}

// Execute loads the plan and derives its statistics from the stored
// installments. The computation itself never touches storage.
func (uc *GetPlanStatsUseCase) Execute(ctx context.Context, input GetPlanStatsInput) (*GetPlanStatsOutput, error) {
	plan, err := loadOwnedPlan(ctx, uc.planRepo, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}

	stats := CalculatePlanStats(plan, plan.WeeklyAmounts, uc.clock.Now())
	return &GetPlanStatsOutput{Plan: plan, Stats: &stats}, nil
}
