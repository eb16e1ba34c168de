// Package savings contains saving-plan use cases.
package savings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/money-saver/backend/internal/domain/entity"
)

// ScheduleStatus classifies a plan's progress against its weekly schedule.
type ScheduleStatus string

const (
	ScheduleOnTrack   ScheduleStatus = "on-track"
	ScheduleBehind    ScheduleStatus = "behind"
	ScheduleAhead     ScheduleStatus = "ahead"
	ScheduleCompleted ScheduleStatus = "completed"
)

// PlanStats holds the derived progress metrics for one saving plan.
type PlanStats struct {
	TotalSaved      decimal.Decimal
	PercentComplete float64 // clamped to [0, 1]
	AmountRemaining decimal.Decimal
	WeeksCompleted  int
	WeeksRemaining  int
	ScheduleStatus  ScheduleStatus
	WeeksBehind     int
	WeeksAhead      int
	NextDueDate     *time.Time
}

// UserStats aggregates progress across all of a user's plans.
type UserStats struct {
	TotalPlans        int
	ActivePlans       int
	CompletedPlans    int
	TotalTargetAmount decimal.Decimal
	TotalSavedAmount  decimal.Decimal
	PercentComplete   float64 // clamped to [0, 1]
}

// CalculatePlanStats derives progress metrics from a plan and its weekly
// amounts. The caller supplies now; the function never reads the wall clock
// and never mutates its inputs. A plan with no weekly amounts yields
// zero-valued metrics.
func CalculatePlanStats(plan *entity.SavingPlan, amounts []*entity.WeeklyAmount, now time.Time) PlanStats {
	stats := PlanStats{
		TotalSaved:      decimal.Zero,
		AmountRemaining: plan.TargetAmount,
	}

	for _, amount := range amounts {
		if amount.Completed {
			stats.TotalSaved = stats.TotalSaved.Add(amount.Amount)
			stats.WeeksCompleted++
		}
	}

	if plan.TargetAmount.IsPositive() {
		ratio, _ := stats.TotalSaved.Div(plan.TargetAmount).Float64()
		stats.PercentComplete = clamp01(ratio)
	}

	remaining := plan.TargetAmount.Sub(stats.TotalSaved)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	stats.AmountRemaining = remaining

	stats.WeeksRemaining = plan.NumberOfWeeks - stats.WeeksCompleted
	if stats.WeeksRemaining < 0 {
		stats.WeeksRemaining = 0
	}

	weeksElapsed := int(now.Sub(plan.StartDate).Hours() / (24 * 7))
	if weeksElapsed < 0 {
		weeksElapsed = 0
	}
	weeksRequired := weeksElapsed
	if weeksRequired > plan.NumberOfWeeks {
		weeksRequired = plan.NumberOfWeeks
	}

	switch {
	case stats.WeeksCompleted >= plan.NumberOfWeeks:
		stats.ScheduleStatus = ScheduleCompleted
	case stats.WeeksCompleted > weeksRequired:
		stats.ScheduleStatus = ScheduleAhead
		stats.WeeksAhead = stats.WeeksCompleted - weeksRequired
	case stats.WeeksCompleted == weeksRequired:
		stats.ScheduleStatus = ScheduleOnTrack
	default:
		stats.ScheduleStatus = ScheduleBehind
		stats.WeeksBehind = weeksRequired - stats.WeeksCompleted
	}

	if stats.WeeksCompleted < plan.NumberOfWeeks {
		due := plan.StartDate.Truncate(24 * time.Hour).AddDate(0, 0, (stats.WeeksCompleted+1)*7)
		stats.NextDueDate = &due
	}

	return stats
}

// CalculateUserStats aggregates the running totals of a user's plans.
func CalculateUserStats(plans []*entity.SavingPlan) UserStats {
	stats := UserStats{
		TotalTargetAmount: decimal.Zero,
		TotalSavedAmount:  decimal.Zero,
	}

	for _, plan := range plans {
		stats.TotalPlans++
		stats.TotalTargetAmount = stats.TotalTargetAmount.Add(plan.TargetAmount)
		stats.TotalSavedAmount = stats.TotalSavedAmount.Add(plan.TotalSavedAmount)
		if plan.IsCompleted() {
			stats.CompletedPlans++
		} else {
			stats.ActivePlans++
		}
	}

	if stats.TotalTargetAmount.IsPositive() {
		ratio, _ := stats.TotalSavedAmount.Div(stats.TotalTargetAmount).Float64()
		stats.PercentComplete = clamp01(ratio)
	}

	return stats
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
