// Package savings contains saving-plan use cases.
package savings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

// transientRetryDelay is the backoff before the single internal retry of a
// transient storage failure.
const transientRetryDelay = 100 * time.Millisecond

// loadOwnedPlan loads a plan and verifies the caller owns it. Ownership is a
// business invariant, so the check lives here rather than in the transport
// layer. An absent plan yields ErrPlanNotFound; a plan owned by someone else
// yields ErrPlanNotOwned.
func loadOwnedPlan(ctx context.Context, repo adapter.SavingPlanRepository, planID, userID uuid.UUID) (*entity.SavingPlan, error) {
	plan, err := findPlanWithRetry(ctx, repo, planID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPlanNotFound) {
			return nil, domainerror.NewSavingsError(
				domainerror.ErrCodePlanNotFound,
				"saving plan not found",
				domainerror.ErrPlanNotFound,
			)
		}
		return nil, err
	}

	if plan.UserID != userID {
		return nil, domainerror.NewSavingsError(
			domainerror.ErrCodePlanNotOwned,
			"saving plan does not belong to user",
			domainerror.ErrPlanNotOwned,
		)
	}

	return plan, nil
}

// findPlanWithRetry retries a transient storage failure once before surfacing it.
func findPlanWithRetry(ctx context.Context, repo adapter.SavingPlanRepository, planID uuid.UUID) (*entity.SavingPlan, error) {
	plan, err := repo.FindByID(ctx, planID)
	if err != nil && errors.Is(err, domainerror.ErrTransientStorage) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(transientRetryDelay):
		}
		plan, err = repo.FindByID(ctx, planID)
	}
	return plan, err
}

// classifyLookup maps a repository lookup failure for a weekly amount to a
// coded error, or returns nil when the error is not a lookup failure.
func classifyLookup(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domainerror.ErrWeeklyAmountNotFound) {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeWeeklyAmountNotFound,
			"weekly amount not found for this plan",
			domainerror.ErrWeeklyAmountNotFound,
		)
	}
	return nil
}

// retryTransient runs op, retrying once with backoff when it fails with a
// transient storage error.
func retryTransient(ctx context.Context, op func() error) error {
	err := op()
	if err != nil && errors.Is(err, domainerror.ErrTransientStorage) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(transientRetryDelay):
		}
		err = op()
	}
	return err
}
