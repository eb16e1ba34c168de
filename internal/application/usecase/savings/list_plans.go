// Package savings contains saving-plan use cases.
package savings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ListPlansInput represents the input for listing a user's plans.
type ListPlansInput struct {
	UserID uuid.UUID
	Offset int
	Limit  int
}

// ListPlansOutput represents the output of listing plans.
type ListPlansOutput struct {
	Plans  []*entity.SavingPlan
	Total  int64
	Offset int
	Limit  int
}

// ListPlansUseCase handles paginated plan listing.
type ListPlansUseCase struct {
	planRepo adapter.SavingPlanRepository
}

// NewListPlansUseCase creates a new ListPlansUseCase instance.
func NewListPlansUseCase(planRepo adapter.SavingPlanRepository) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
	}
}

// Execute lists the user's plans, newest first.
func (uc *ListPlansUseCase) Execute(ctx context.Context, input ListPlansInput) (*ListPlansOutput, error) {
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var plans []*entity.SavingPlan
	var total int64
	err := retryTransient(ctx, func() error {
		var listErr error
		plans, total, listErr = uc.planRepo.FindByUserID(ctx, input.UserID, offset, limit)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list saving plans: %w", err)
	}

	return &ListPlansOutput{
		Plans:  plans,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}
