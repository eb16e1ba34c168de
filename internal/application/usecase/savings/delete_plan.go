// Package savings contains saving-plan use cases.
package savings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
)

// DeletePlanInput represents the input for plan deletion.
type DeletePlanInput struct {
	PlanID uuid.UUID
	UserID uuid.UUID
}

// DeletePlanOutput represents the output of plan deletion.
type DeletePlanOutput struct {
	Success bool
}

// DeletePlanUseCase handles plan deletion logic.
type DeletePlanUseCase struct {
	planRepo adapter.SavingPlanRepository
}

// NewDeletePlanUseCase creates a new DeletePlanUseCase instance.
func NewDeletePlanUseCase(planRepo adapter.SavingPlanRepository) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo: planRepo,
	}
}

// Execute soft-deletes the plan and its weekly amounts in one transaction.
// Deletion is not idempotent: a second call for the same ID fails with
// NotFound because the soft-deleted row is invisible to the lookup.
func (uc *DeletePlanUseCase) Execute(ctx context.Context, input DeletePlanInput) (*DeletePlanOutput, error) {
	plan, err := loadOwnedPlan(ctx, uc.planRepo, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}

	err = retryTransient(ctx, func() error {
		return uc.planRepo.SoftDelete(ctx, plan.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete saving plan: %w", err)
	}

	return &DeletePlanOutput{Success: true}, nil
}
