package savings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

func TestAddWeeklyAmountsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	clock := fixedClock{now: start}
	userID := uuid.New()

	newSeededPlan := func(repo *fakePlanRepo, amounts ...*entity.WeeklyAmount) *entity.SavingPlan {
		plan := entity.NewSavingPlan(userID, "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan, amounts...)
		return plan
	}

	t.Run("appends new installments", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := newSeededPlan(repo)
		uc := NewAddWeeklyAmountsUseCase(repo, clock)

		output, err := uc.Execute(ctx, AddWeeklyAmountsInput{
			PlanID: plan.ID,
			UserID: userID,
			Amounts: []WeeklyAmountInput{
				{WeekNumber: 1, Amount: decimal.RequireFromString("100")},
				{WeekNumber: 2, Amount: decimal.RequireFromString("100"), Completed: true},
			},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.Amounts) != 2 {
			t.Fatalf("expected 2 amounts, got %d", len(output.Amounts))
		}
		if !output.Amounts[1].Completed {
			t.Error("expected the second installment to be completed")
		}
		if len(repo.amounts[plan.ID]) != 2 {
			t.Errorf("expected 2 persisted amounts, got %d", len(repo.amounts[plan.ID]))
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := newSeededPlan(repo)
		uc := NewAddWeeklyAmountsUseCase(repo, clock)

		output, err := uc.Execute(ctx, AddWeeklyAmountsInput{PlanID: plan.ID, UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.Amounts) != 0 {
			t.Errorf("expected no amounts, got %d", len(output.Amounts))
		}
	})

	t.Run("rejects a week number that already exists on the plan", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := newSeededPlan(repo, pendingAmount(uuid.New(), 3, "100"))
		uc := NewAddWeeklyAmountsUseCase(repo, clock)

		_, err := uc.Execute(ctx, AddWeeklyAmountsInput{
			PlanID: plan.ID,
			UserID: userID,
			Amounts: []WeeklyAmountInput{
				{WeekNumber: 3, Amount: decimal.RequireFromString("100")},
			},
		})
		assertSavingsCode(t, err, domainerror.ErrCodeDuplicateWeekNumber)
		if len(repo.amounts[plan.ID]) != 1 {
			t.Errorf("expected the existing amount only, got %d", len(repo.amounts[plan.ID]))
		}
	})

	t.Run("rejects duplicates inside the batch before writing", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := newSeededPlan(repo)
		uc := NewAddWeeklyAmountsUseCase(repo, clock)

		_, err := uc.Execute(ctx, AddWeeklyAmountsInput{
			PlanID: plan.ID,
			UserID: userID,
			Amounts: []WeeklyAmountInput{
				{WeekNumber: 4, Amount: decimal.RequireFromString("100")},
				{WeekNumber: 4, Amount: decimal.RequireFromString("100")},
			},
		})
		assertSavingsCode(t, err, domainerror.ErrCodeDuplicateWeekNumber)
		if len(repo.amounts[plan.ID]) != 0 {
			t.Errorf("expected no persisted amounts, got %d", len(repo.amounts[plan.ID]))
		}
	})

	t.Run("maps a storage-level duplicate to a conflict", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := newSeededPlan(repo)
		repo.appendErr = domainerror.ErrDuplicateWeekNumber
		uc := NewAddWeeklyAmountsUseCase(repo, clock)

		_, err := uc.Execute(ctx, AddWeeklyAmountsInput{
			PlanID: plan.ID,
			UserID: userID,
			Amounts: []WeeklyAmountInput{
				{WeekNumber: 5, Amount: decimal.RequireFromString("100")},
			},
		})
		assertSavingsCode(t, err, domainerror.ErrCodeDuplicateWeekNumber)
	})
}

func TestUpdateWeeklyAmountUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	clock := fixedClock{now: start.AddDate(0, 0, 10)}
	userID := uuid.New()

	seed := func(repo *fakePlanRepo) (*entity.SavingPlan, *entity.WeeklyAmount) {
		plan := entity.NewSavingPlan(userID, "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		amount := entity.NewWeeklyAmount(plan.ID, 1, decimal.RequireFromString("100"), start, start.AddDate(0, 0, 7))
		repo.seed(plan, amount)
		return plan, amount
	}

	t.Run("marking complete stamps the completion time and recalculates", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan, amount := seed(repo)
		uc := NewUpdateWeeklyAmountUseCase(repo, clock)

		completed := true
		output, err := uc.Execute(ctx, UpdateWeeklyAmountInput{
			PlanID: plan.ID, WeekID: amount.ID, UserID: userID, Completed: &completed,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Amount.Completed {
			t.Error("expected the installment to be completed")
		}
		if output.Amount.CompletedAt == nil || !output.Amount.CompletedAt.Equal(clock.now) {
			t.Errorf("expected completion at %s, got %v", clock.now, output.Amount.CompletedAt)
		}
		if !repo.lastRecalculate {
			t.Error("expected the plan totals to be recalculated")
		}
	})

	t.Run("unmarking clears completion state and the week index", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan, amount := seed(repo)
		amount.MarkCompleted(start)
		idx := 1
		amount.WeekIndex = &idx
		uc := NewUpdateWeeklyAmountUseCase(repo, clock)

		completed := false
		output, err := uc.Execute(ctx, UpdateWeeklyAmountInput{
			PlanID: plan.ID, WeekID: amount.ID, UserID: userID, Completed: &completed,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Amount.Completed || output.Amount.CompletedAt != nil {
			t.Error("expected completion state to be cleared")
		}
		if output.Amount.WeekIndex != nil {
			t.Errorf("expected week index cleared, got %d", *output.Amount.WeekIndex)
		}
		if !repo.lastRecalculate {
			t.Error("expected the plan totals to be recalculated")
		}
	})

	t.Run("setting the same completion state skips recalculation", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan, amount := seed(repo)
		uc := NewUpdateWeeklyAmountUseCase(repo, clock)

		completed := false
		_, err := uc.Execute(ctx, UpdateWeeklyAmountInput{
			PlanID: plan.ID, WeekID: amount.ID, UserID: userID, Completed: &completed,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo.lastRecalculate {
			t.Error("expected no recalculation for a no-op toggle")
		}
	})

	t.Run("changing the amount of a completed installment recalculates", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan, amount := seed(repo)
		amount.MarkCompleted(start)
		uc := NewUpdateWeeklyAmountUseCase(repo, clock)

		newAmount := decimal.RequireFromString("150")
		output, err := uc.Execute(ctx, UpdateWeeklyAmountInput{
			PlanID: plan.ID, WeekID: amount.ID, UserID: userID, Amount: &newAmount,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Amount.Amount.Equal(newAmount) {
			t.Errorf("expected amount 150, got %s", output.Amount.Amount)
		}
		if !repo.lastRecalculate {
			t.Error("expected the plan totals to be recalculated")
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan, amount := seed(repo)
		uc := NewUpdateWeeklyAmountUseCase(repo, clock)

		zero := decimal.Zero
		_, err := uc.Execute(ctx, UpdateWeeklyAmountInput{
			PlanID: plan.ID, WeekID: amount.ID, UserID: userID, Amount: &zero,
		})
		assertSavingsCode(t, err, domainerror.ErrCodeInvalidWeeklyAmount)
	})

	t.Run("rejects a week end before the week start", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan, amount := seed(repo)
		uc := NewUpdateWeeklyAmountUseCase(repo, clock)

		end := start.AddDate(0, 0, -1)
		_, err := uc.Execute(ctx, UpdateWeeklyAmountInput{
			PlanID: plan.ID, WeekID: amount.ID, UserID: userID, WeekEnd: &end,
		})
		assertSavingsCode(t, err, domainerror.ErrCodeInvalidDateRange)
	})

	t.Run("unknown installment yields not found", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan, _ := seed(repo)
		uc := NewUpdateWeeklyAmountUseCase(repo, clock)

		completed := true
		_, err := uc.Execute(ctx, UpdateWeeklyAmountInput{
			PlanID: plan.ID, WeekID: uuid.New(), UserID: userID, Completed: &completed,
		})
		assertSavingsCode(t, err, domainerror.ErrCodeWeeklyAmountNotFound)
	})
}

func TestGetPlanStatsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("derives stats from the stored installments", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := entity.NewSavingPlan(userID, "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan,
			completedAmount(plan.ID, 1, "100", start),
			pendingAmount(plan.ID, 2, "100"),
		)
		clock := fixedClock{now: start.AddDate(0, 0, 7)}
		uc := NewGetPlanStatsUseCase(repo, clock)

		output, err := uc.Execute(ctx, GetPlanStatsInput{PlanID: plan.ID, UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Stats.TotalSaved.Equal(decimal.RequireFromString("100")) {
			t.Errorf("expected total saved 100, got %s", output.Stats.TotalSaved)
		}
		if output.Stats.ScheduleStatus != ScheduleOnTrack {
			t.Errorf("expected on-track, got %s", output.Stats.ScheduleStatus)
		}
	})

	t.Run("another user's plan yields not owned", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := entity.NewSavingPlan(uuid.New(), "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan)
		uc := NewGetPlanStatsUseCase(repo, fixedClock{now: start})

		_, err := uc.Execute(ctx, GetPlanStatsInput{PlanID: plan.ID, UserID: userID})
		assertSavingsCode(t, err, domainerror.ErrCodePlanNotOwned)
	})
}

func TestGetUserStatsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("aggregates only the user's active plans", func(t *testing.T) {
		repo := newFakePlanRepo()
		active := entity.NewSavingPlan(userID, "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		active.TotalSavedAmount = decimal.RequireFromString("250")
		inactive := entity.NewSavingPlan(userID, "Paused", decimal.RequireFromString("500"), 5, start, start.AddDate(0, 0, 35))
		inactive.IsActive = false
		other := entity.NewSavingPlan(uuid.New(), "Other", decimal.RequireFromString("800"), 8, start, start.AddDate(0, 0, 56))
		repo.seed(active)
		repo.seed(inactive)
		repo.seed(other)
		uc := NewGetUserStatsUseCase(repo)

		output, err := uc.Execute(ctx, GetUserStatsInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Stats.TotalPlans != 1 {
			t.Errorf("expected 1 plan, got %d", output.Stats.TotalPlans)
		}
		if !output.Stats.TotalSavedAmount.Equal(decimal.RequireFromString("250")) {
			t.Errorf("expected saved 250, got %s", output.Stats.TotalSavedAmount)
		}
	})
}
