// Package savings contains saving-plan use cases.
package savings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
)

// GetUserStatsInput represents the input for aggregating a user's plans.
type GetUserStatsInput struct {
	UserID uuid.UUID
}

// GetUserStatsOutput represents the output of the aggregation.
type GetUserStatsOutput struct {
	Stats *UserStats
	Plans []*entity.SavingPlan
}

// GetUserStatsUseCase aggregates progress across all of a user's active plans.
type GetUserStatsUseCase struct {
	planRepo adapter.SavingPlanRepository
}

// NewGetUserStatsUseCase creates a new GetUserStatsUseCase instance.
func NewGetUserStatsUseCase(planRepo adapter.SavingPlanRepository) *GetUserStatsUseCase {
	return &GetUserStatsUseCase{
		planRepo: planRepo,
	}
}

// Execute aggregates over active plans only.
func (uc *GetUserStatsUseCase) Execute(ctx context.Context, input GetUserStatsInput) (*GetUserStatsOutput, error) {
	var plans []*entity.SavingPlan
	err := retryTransient(ctx, func() error {
		var findErr error
		plans, findErr = uc.planRepo.FindActiveByUserID(ctx, input.UserID)
		return findErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load saving plans: %w", err)
	}

	stats := CalculateUserStats(plans)
	return &GetUserStatsOutput{Stats: &stats, Plans: plans}, nil
}
