// Package reminder contains the weekly reminder cycle use case.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/application/usecase/savings"
	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

const (
	// Debounce is the minimum gap between two reminders to the same user.
	// It is one day short of the weekly cadence so normal scheduler jitter
	// never starves a user of their reminder.
	Debounce = 6 * 24 * time.Hour

	// cycleLockKey serializes cycles across replicas.
	cycleLockKey = "reminder:cycle"

	// cycleLockTTL caps how long a crashed cycle can block the next one.
	cycleLockTTL = 10 * time.Minute
)

// CycleSummary reports the outcome of one reminder cycle.
type CycleSummary struct {
	CycleAt  time.Time
	Selected int
	Sent     int
	Failed   int
	Skipped  bool
}

// RunCycleUseCase selects reminder-eligible users and dispatches one digest
// email per user. Failures are isolated per user: one bounced address never
// blocks the rest of the cycle.
type RunCycleUseCase struct {
	userRepo adapter.UserRepository
	planRepo adapter.SavingPlanRepository
	logRepo  adapter.ReminderLogRepository
	mailer   adapter.ReminderMailer
	tips     adapter.SavingsTipService
	lock     adapter.CycleLock
	clock    adapter.Clock
	logger   *slog.Logger
}

// NewRunCycleUseCase creates a new RunCycleUseCase instance.
func NewRunCycleUseCase(
	userRepo adapter.UserRepository,
	planRepo adapter.SavingPlanRepository,
	logRepo adapter.ReminderLogRepository,
	mailer adapter.ReminderMailer,
	tips adapter.SavingsTipService,
	lock adapter.CycleLock,
	clock adapter.Clock,
	logger *slog.Logger,
) *RunCycleUseCase {
	return &RunCycleUseCase{
		userRepo: userRepo,
		planRepo: planRepo,
		logRepo:  logRepo,
		mailer:   mailer,
		tips:     tips,
		lock:     lock,
		clock:    clock,
		logger:   logger,
	}
}

// Execute runs one reminder cycle. When another cycle already holds the
// lease, the call returns a summary with Skipped set instead of an error, so
// overlapping triggers are harmless.
func (uc *RunCycleUseCase) Execute(ctx context.Context) (*CycleSummary, error) {
	cycleAt := uc.clock.Now()
	summary := &CycleSummary{CycleAt: cycleAt}

	acquired, err := uc.lock.Acquire(ctx, cycleLockKey, cycleLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire cycle lease: %w", err)
	}
	if !acquired {
		uc.logger.Warn("reminder cycle already running, skipping",
			slog.Time("cycle_at", cycleAt))
		summary.Skipped = true
		return summary, domainerror.ErrCycleAlreadyRunning
	}
	defer func() {
		if err := uc.lock.Release(ctx, cycleLockKey); err != nil {
			uc.logger.Error("failed to release cycle lease", slog.String("error", err.Error()))
		}
	}()

	cutoff := cycleAt.Add(-Debounce)
	users, err := uc.userRepo.FindReminderEligible(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to select eligible users: %w", err)
	}
	summary.Selected = len(users)

	uc.logger.Info("reminder cycle started",
		slog.Time("cycle_at", cycleAt),
		slog.Int("eligible_users", len(users)))

	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if uc.dispatchOne(ctx, u, cycleAt) {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}

	uc.logger.Info("reminder cycle finished",
		slog.Time("cycle_at", cycleAt),
		slog.Int("sent", summary.Sent),
		slog.Int("failed", summary.Failed))

	return summary, nil
}

// dispatchOne builds and sends a single user's digest. It reports success;
// every failure path is logged and recorded but never propagated.
func (uc *RunCycleUseCase) dispatchOne(ctx context.Context, u *entity.User, cycleAt time.Time) bool {
	digest, err := uc.buildDigest(ctx, u, cycleAt)
	if err != nil {
		uc.logger.Error("failed to build reminder digest",
			slog.String("user_id", u.ID.String()),
			slog.String("error", err.Error()))
		uc.record(ctx, u, cycleAt, "", err)
		return false
	}
	if len(digest.Plans) == 0 {
		// Eligibility and the read here race against plan deletion; nothing
		// left to remind about means nothing to send.
		return true
	}

	result, err := uc.mailer.SendWeeklyReminder(ctx, digest)
	if err != nil {
		uc.logger.Error("failed to send reminder",
			slog.String("user_id", u.ID.String()),
			slog.String("error", err.Error()))
		uc.record(ctx, u, cycleAt, "", err)
		return false
	}

	if err := uc.userRepo.UpdateLastReminderSent(ctx, u.ID, cycleAt); err != nil {
		uc.logger.Error("failed to stamp last reminder",
			slog.String("user_id", u.ID.String()),
			slog.String("error", err.Error()))
	}
	uc.record(ctx, u, cycleAt, result.ProviderID, nil)
	return true
}

// buildDigest assembles the per-plan rows and totals for one user.
func (uc *RunCycleUseCase) buildDigest(ctx context.Context, u *entity.User, cycleAt time.Time) (*adapter.ReminderDigest, error) {
	plans, err := uc.planRepo.FindActiveByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}

	digest := &adapter.ReminderDigest{
		User:           u,
		TotalTarget:    decimal.Zero,
		TotalSaved:     decimal.Zero,
		TotalRemaining: decimal.Zero,
		DueThisWeek:    decimal.Zero,
	}

	plansBehind := 0
	for _, plan := range plans {
		stats := savings.CalculatePlanStats(plan, plan.WeeklyAmounts, cycleAt)
		if stats.ScheduleStatus == savings.ScheduleCompleted {
			continue
		}
		row := adapter.PlanDigest{
			Name:            plan.Name,
			TargetAmount:    plan.TargetAmount,
			TotalSaved:      stats.TotalSaved,
			AmountRemaining: stats.AmountRemaining,
			PercentComplete: stats.PercentComplete,
			WeeksCompleted:  stats.WeeksCompleted,
			WeeksRemaining:  stats.WeeksRemaining,
			ScheduleStatus:  string(stats.ScheduleStatus),
			ThisWeekAmount:  nextIncompleteAmount(plan),
		}
		if stats.ScheduleStatus == savings.ScheduleBehind {
			plansBehind++
		}
		digest.Plans = append(digest.Plans, row)
		digest.TotalTarget = digest.TotalTarget.Add(plan.TargetAmount)
		digest.TotalSaved = digest.TotalSaved.Add(stats.TotalSaved)
		digest.TotalRemaining = digest.TotalRemaining.Add(stats.AmountRemaining)
		digest.DueThisWeek = digest.DueThisWeek.Add(row.ThisWeekAmount)
	}

	digest.Tip = uc.generateTip(ctx, u, plansBehind, digest.TotalRemaining)
	return digest, nil
}

// generateTip asks the tip service for a personalized line; any failure falls
// back to a static tip so the digest always has one.
func (uc *RunCycleUseCase) generateTip(ctx context.Context, u *entity.User, plansBehind int, remaining decimal.Decimal) string {
	const fallback = "Small, regular amounts beat occasional big ones. Keep the streak going this week."

	if uc.tips == nil || !uc.tips.IsAvailable() {
		return fallback
	}
	tip, err := uc.tips.GenerateTip(ctx, adapter.TipRequest{
		UserName:       u.Name,
		PlansBehind:    plansBehind,
		TotalRemaining: remaining.StringFixed(2),
	})
	if err != nil || tip == "" {
		if err != nil {
			uc.logger.Warn("tip generation failed, using fallback",
				slog.String("error", err.Error()))
		}
		return fallback
	}
	return tip
}

// record appends a reminder log row; logging failures are non-fatal.
func (uc *RunCycleUseCase) record(ctx context.Context, u *entity.User, cycleAt time.Time, providerID string, sendErr error) {
	log := entity.NewReminderLog(u.ID, u.Email, "Your weekly savings reminder", cycleAt)
	if sendErr != nil {
		log.MarkFailed(sendErr)
	} else {
		log.MarkSent(providerID)
	}
	if err := uc.logRepo.Create(ctx, log); err != nil {
		uc.logger.Error("failed to record reminder outcome",
			slog.String("user_id", u.ID.String()),
			slog.String("error", err.Error()))
	}
}

// nextIncompleteAmount returns the amount of the lowest-numbered incomplete
// installment, or zero when every installment is done.
func nextIncompleteAmount(plan *entity.SavingPlan) decimal.Decimal {
	for _, amount := range plan.WeeklyAmounts {
		if !amount.Completed {
			return amount.Amount
		}
	}
	return decimal.Zero
}

// IsSkipped reports whether the error from Execute means an overlapping
// cycle, which callers treat as success.
func IsSkipped(err error) bool {
	return errors.Is(err, domainerror.ErrCycleAlreadyRunning)
}
