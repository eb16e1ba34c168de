// Package savings contains saving-plan use cases.
package savings

import (
	"context"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
)

// GetPlanInput represents the input for retrieving one plan.
type GetPlanInput struct {
	PlanID uuid.UUID
	UserID uuid.UUID
}

// GetPlanOutput represents the output of retrieving one plan.
type GetPlanOutput struct {
	Plan *entity.SavingPlan
}

// GetPlanUseCase handles single-plan retrieval.
type GetPlanUseCase struct {
	planRepo adapter.SavingPlanRepository
}

// NewGetPlanUseCase creates a new GetPlanUseCase instance.
func NewGetPlanUseCase(planRepo adapter.SavingPlanRepository) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo: planRepo,
	}
}

// Execute retrieves a plan with its weekly amounts after an ownership check.
func (uc *GetPlanUseCase) Execute(ctx context.Context, input GetPlanInput) (*GetPlanOutput, error) {
	plan, err := loadOwnedPlan(ctx, uc.planRepo, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetPlanOutput{Plan: plan}, nil
}
