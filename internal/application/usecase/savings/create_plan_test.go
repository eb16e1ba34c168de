package savings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/money-saver/backend/internal/domain/error"
)

func assertSavingsCode(t *testing.T, err error, code domainerror.SavingsErrorCode) {
	t.Helper()
	var savErr *domainerror.SavingsError
	if !errors.As(err, &savErr) {
		t.Fatalf("expected a savings error, got %v", err)
	}
	if savErr.Code != code {
		t.Errorf("expected code %s, got %s", code, savErr.Code)
	}
}

func TestCreatePlanUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	clock := fixedClock{now: start}
	userID := uuid.New()

	validInput := func() CreatePlanInput {
		return CreatePlanInput{
			UserID:        userID,
			Name:          "Vacation",
			TargetAmount:  decimal.RequireFromString("1000"),
			NumberOfWeeks: 10,
			StartDate:     start,
			EndDate:       start.AddDate(0, 0, 70),
		}
	}

	t.Run("creates a plan without initial amounts", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		output, err := uc.Execute(ctx, validInput())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Plan == nil {
			t.Fatal("expected a plan in the output")
		}
		if output.Plan.UserID != userID {
			t.Errorf("expected owner %s, got %s", userID, output.Plan.UserID)
		}
		if !output.Plan.TotalSavedAmount.IsZero() {
			t.Errorf("expected zero saved total, got %s", output.Plan.TotalSavedAmount)
		}
		if _, ok := repo.plans[output.Plan.ID]; !ok {
			t.Error("expected the plan to be persisted")
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		input := validInput()
		input.Name = ""
		_, err := uc.Execute(ctx, input)
		assertSavingsCode(t, err, domainerror.ErrCodeInvalidPlanName)
	})

	t.Run("rejects name over the length limit", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		input := validInput()
		input.Name = strings.Repeat("x", maxPlanNameLength+1)
		_, err := uc.Execute(ctx, input)
		assertSavingsCode(t, err, domainerror.ErrCodeInvalidPlanName)
	})

	t.Run("rejects non-positive target amount", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		input := validInput()
		input.TargetAmount = decimal.Zero
		_, err := uc.Execute(ctx, input)
		assertSavingsCode(t, err, domainerror.ErrCodeInvalidTargetAmount)
	})

	t.Run("rejects week counts outside the allowed range", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		for _, weeks := range []int{0, -1, 105} {
			input := validInput()
			input.NumberOfWeeks = weeks
			_, err := uc.Execute(ctx, input)
			assertSavingsCode(t, err, domainerror.ErrCodeInvalidWeekCount)
		}
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		input := validInput()
		input.EndDate = start.AddDate(0, 0, -1)
		_, err := uc.Execute(ctx, input)
		assertSavingsCode(t, err, domainerror.ErrCodeInvalidDateRange)
	})

	t.Run("rejects duplicate week numbers in the initial batch", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		input := validInput()
		input.WeeklyAmounts = []WeeklyAmountInput{
			{WeekNumber: 1, Amount: decimal.RequireFromString("100")},
			{WeekNumber: 1, Amount: decimal.RequireFromString("100")},
		}
		_, err := uc.Execute(ctx, input)
		assertSavingsCode(t, err, domainerror.ErrCodeDuplicateWeekNumber)
		if len(repo.plans) != 0 {
			t.Error("expected nothing to be persisted")
		}
	})

	t.Run("rejects week number beyond the plan length", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		input := validInput()
		input.WeeklyAmounts = []WeeklyAmountInput{
			{WeekNumber: 11, Amount: decimal.RequireFromString("100")},
		}
		_, err := uc.Execute(ctx, input)
		assertSavingsCode(t, err, domainerror.ErrCodeWeekNumberOutOfRange)
	})

	t.Run("rejects amounts summing past the target", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		input := validInput()
		input.WeeklyAmounts = []WeeklyAmountInput{
			{WeekNumber: 1, Amount: decimal.RequireFromString("600")},
			{WeekNumber: 2, Amount: decimal.RequireFromString("600")},
		}
		_, err := uc.Execute(ctx, input)
		assertSavingsCode(t, err, domainerror.ErrCodeAmountsExceedTarget)
	})

	t.Run("completed initial amounts accrue into the saved total", func(t *testing.T) {
		repo := newFakePlanRepo()
		uc := NewCreatePlanUseCase(repo, clock)

		input := validInput()
		input.WeeklyAmounts = []WeeklyAmountInput{
			{WeekNumber: 1, Amount: decimal.RequireFromString("100"), Completed: true},
			{WeekNumber: 2, Amount: decimal.RequireFromString("100")},
		}
		output, err := uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Plan.TotalSavedAmount.Equal(decimal.RequireFromString("100")) {
			t.Errorf("expected saved total 100, got %s", output.Plan.TotalSavedAmount)
		}
		if len(output.Plan.WeeklyAmounts) != 2 {
			t.Fatalf("expected 2 weekly amounts, got %d", len(output.Plan.WeeklyAmounts))
		}
		first := output.Plan.WeeklyAmounts[0]
		if !first.Completed || first.CompletedAt == nil {
			t.Error("expected the first installment to be completed with a timestamp")
		}
		if first.CompletedAt != nil && !first.CompletedAt.Equal(clock.now) {
			t.Errorf("expected completion at %s, got %s", clock.now, first.CompletedAt)
		}
	})

	t.Run("retries a transient storage failure once", func(t *testing.T) {
		repo := newFakePlanRepo()
		repo.createErrs = []error{domainerror.ErrTransientStorage, nil}
		uc := NewCreatePlanUseCase(repo, clock)

		output, err := uc.Execute(ctx, validInput())
		if err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if _, ok := repo.plans[output.Plan.ID]; !ok {
			t.Error("expected the plan to be persisted on the second attempt")
		}
	})

	t.Run("surfaces a persistent transient failure", func(t *testing.T) {
		repo := newFakePlanRepo()
		repo.createErrs = []error{domainerror.ErrTransientStorage, domainerror.ErrTransientStorage}
		uc := NewCreatePlanUseCase(repo, clock)

		_, err := uc.Execute(ctx, validInput())
		if !errors.Is(err, domainerror.ErrTransientStorage) {
			t.Errorf("expected a transient storage error, got %v", err)
		}
	})
}
