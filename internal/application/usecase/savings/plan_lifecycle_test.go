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

func TestGetPlanUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("returns the plan with its weekly amounts", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := entity.NewSavingPlan(userID, "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan, pendingAmount(plan.ID, 1, "100"))
		uc := NewGetPlanUseCase(repo)

		output, err := uc.Execute(ctx, GetPlanInput{PlanID: plan.ID, UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Plan.ID != plan.ID {
			t.Errorf("expected plan %s, got %s", plan.ID, output.Plan.ID)
		}
		if len(output.Plan.WeeklyAmounts) != 1 {
			t.Errorf("expected 1 weekly amount, got %d", len(output.Plan.WeeklyAmounts))
		}
	})

	t.Run("unknown plan yields not found", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewGetPlanUseCase(repo)

		_, err := uc.Execute(ctx, GetPlanInput{PlanID: uuid.New(), UserID: userID})
		assertSavingsCode(t, err, domainerror.ErrCodePlanNotFound)
	})

	t.Run("another user's plan yields not owned", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := entity.NewSavingPlan(uuid.New(), "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan)
		uc := NewGetPlanUseCase(repo)

		_, err := uc.Execute(ctx, GetPlanInput{PlanID: plan.ID, UserID: userID})
		assertSavingsCode(t, err, domainerror.ErrCodePlanNotOwned)
	})

	t.Run("recovers from a single transient lookup failure", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := entity.NewSavingPlan(userID, "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan)
		repo.findErrs = []error{domainerror.ErrTransientStorage}
		uc := NewGetPlanUseCase(repo)

		output, err := uc.Execute(ctx, GetPlanInput{PlanID: plan.ID, UserID: userID})
		if err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if output.Plan.ID != plan.ID {
			t.Errorf("expected plan %s, got %s", plan.ID, output.Plan.ID)
		}
	})
}

func TestListPlansUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	seedPlans := func(repo *fakePlanRepo, n int) {
		for i := 0; i < n; i++ {
			repo.seed(entity.NewSavingPlan(userID, "Plan", decimal.RequireFromString("100"), 4, start, start.AddDate(0, 0, 28)))
		}
	}

	t.Run("applies the default limit", func(t *testing.T) {
		repo := newFakePlanRepo()
		seedPlans(repo, 15)
		uc := NewListPlansUseCase(repo)

		output, err := uc.Execute(ctx, ListPlansInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.Plans) != defaultPageLimit {
			t.Errorf("expected %d plans, got %d", defaultPageLimit, len(output.Plans))
		}
		if output.Total != 15 {
			t.Errorf("expected total 15, got %d", output.Total)
		}
		if output.Limit != defaultPageLimit {
			t.Errorf("expected limit %d, got %d", defaultPageLimit, output.Limit)
		}
	})

	t.Run("clamps an oversized limit", func(t *testing.T) {
		repo := newFakePlanRepo()
		seedPlans(repo, 2)
		uc := NewListPlansUseCase(repo)

		output, err := uc.Execute(ctx, ListPlansInput{UserID: userID, Limit: 500})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Limit != maxPageLimit {
			t.Errorf("expected limit clamped to %d, got %d", maxPageLimit, output.Limit)
		}
	})

	t.Run("normalizes a negative offset", func(t *testing.T) {
		repo := newFakePlanRepo()
		seedPlans(repo, 2)
		uc := NewListPlansUseCase(repo)

		output, err := uc.Execute(ctx, ListPlansInput{UserID: userID, Offset: -5, Limit: 10})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Offset != 0 {
			t.Errorf("expected offset 0, got %d", output.Offset)
		}
		if len(output.Plans) != 2 {
			t.Errorf("expected 2 plans, got %d", len(output.Plans))
		}
	})

	t.Run("offset past the end returns an empty page with the total", func(t *testing.T) {
		repo := newFakePlanRepo()
		seedPlans(repo, 3)
		uc := NewListPlansUseCase(repo)

		output, err := uc.Execute(ctx, ListPlansInput{UserID: userID, Offset: 10, Limit: 10})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.Plans) != 0 {
			t.Errorf("expected empty page, got %d plans", len(output.Plans))
		}
		if output.Total != 3 {
			t.Errorf("expected total 3, got %d", output.Total)
		}
	})

	t.Run("excludes other users' plans", func(t *testing.T) {
		repo := newFakePlanRepo()
		seedPlans(repo, 1)
		repo.seed(entity.NewSavingPlan(uuid.New(), "Other", decimal.RequireFromString("100"), 4, start, start.AddDate(0, 0, 28)))
		uc := NewListPlansUseCase(repo)

		output, err := uc.Execute(ctx, ListPlansInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Total != 1 {
			t.Errorf("expected total 1, got %d", output.Total)
		}
	})
}

func TestUpdatePlanUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	clock := fixedClock{now: start.AddDate(0, 0, 14)}
	userID := uuid.New()

	newSeededPlan := func(repo *fakePlanRepo, amounts ...*entity.WeeklyAmount) *entity.SavingPlan {
		plan := entity.NewSavingPlan(userID, "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan, amounts...)
		return plan
	}

	t.Run("applies only the provided fields", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := newSeededPlan(repo)
		uc := NewUpdatePlanUseCase(repo, clock)

		name := "House deposit"
		output, err := uc.Execute(ctx, UpdatePlanInput{PlanID: plan.ID, UserID: userID, Name: &name})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Plan.Name != name {
			t.Errorf("expected name %q, got %q", name, output.Plan.Name)
		}
		if output.Plan.NumberOfWeeks != 10 {
			t.Errorf("expected untouched week count 10, got %d", output.Plan.NumberOfWeeks)
		}
		if !output.Plan.UpdatedAt.Equal(clock.now) {
			t.Errorf("expected updated at %s, got %s", clock.now, output.Plan.UpdatedAt)
		}
	})

	t.Run("re-validates the patched state", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := newSeededPlan(repo)
		uc := NewUpdatePlanUseCase(repo, clock)

		target := decimal.Zero
		_, err := uc.Execute(ctx, UpdatePlanInput{PlanID: plan.ID, UserID: userID, TargetAmount: &target})
		assertSavingsCode(t, err, domainerror.ErrCodeInvalidTargetAmount)
	})

	t.Run("cannot shrink below the highest existing week number", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := newSeededPlan(repo, pendingAmount(uuid.New(), 8, "100"))
		uc := NewUpdatePlanUseCase(repo, clock)

		weeks := 5
		_, err := uc.Execute(ctx, UpdatePlanInput{PlanID: plan.ID, UserID: userID, NumberOfWeeks: &weeks})
		assertSavingsCode(t, err, domainerror.ErrCodeInvalidWeekCount)
	})

	t.Run("growing the week count is allowed", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := newSeededPlan(repo, pendingAmount(uuid.New(), 8, "100"))
		uc := NewUpdatePlanUseCase(repo, clock)

		weeks := 20
		output, err := uc.Execute(ctx, UpdatePlanInput{PlanID: plan.ID, UserID: userID, NumberOfWeeks: &weeks})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Plan.NumberOfWeeks != 20 {
			t.Errorf("expected 20 weeks, got %d", output.Plan.NumberOfWeeks)
		}
	})

	t.Run("another user's plan yields not owned", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := entity.NewSavingPlan(uuid.New(), "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan)
		uc := NewUpdatePlanUseCase(repo, clock)

		name := "Hijack"
		_, err := uc.Execute(ctx, UpdatePlanInput{PlanID: plan.ID, UserID: userID, Name: &name})
		assertSavingsCode(t, err, domainerror.ErrCodePlanNotOwned)
	})
}

func TestDeletePlanUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("deletes an owned plan", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := entity.NewSavingPlan(userID, "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan)
		uc := NewDeletePlanUseCase(repo)

		output, err := uc.Execute(ctx, DeletePlanInput{PlanID: plan.ID, UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Success {
			t.Error("expected success")
		}
		if repo.softDeleteCalls != 1 {
			t.Errorf("expected 1 delete call, got %d", repo.softDeleteCalls)
		}
	})

	t.Run("a second delete yields not found", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := entity.NewSavingPlan(userID, "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan)
		uc := NewDeletePlanUseCase(repo)

		if _, err := uc.Execute(ctx, DeletePlanInput{PlanID: plan.ID, UserID: userID}); err != nil {
			t.Fatalf("expected first delete to succeed, got %v", err)
		}
		_, err := uc.Execute(ctx, DeletePlanInput{PlanID: plan.ID, UserID: userID})
		assertSavingsCode(t, err, domainerror.ErrCodePlanNotFound)
	})

	t.Run("another user's plan yields not owned", func(t *testing.T) {
		repo := newFakePlanRepo()
		plan := entity.NewSavingPlan(uuid.New(), "Vacation", decimal.RequireFromString("1000"), 10, start, start.AddDate(0, 0, 70))
		repo.seed(plan)
		uc := NewDeletePlanUseCase(repo)

		_, err := uc.Execute(ctx, DeletePlanInput{PlanID: plan.ID, UserID: userID})
		assertSavingsCode(t, err, domainerror.ErrCodePlanNotOwned)
		if repo.softDeleteCalls != 0 {
			t.Errorf("expected no delete calls, got %d", repo.softDeleteCalls)
		}
	})
}
