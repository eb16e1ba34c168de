// Package dto defines request and response shapes for the API endpoints.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/money-saver/backend/internal/application/usecase/savings"
	"github.com/money-saver/backend/internal/domain/entity"
)

// WeeklyAmountRequest is one installment in a create or append request.
type WeeklyAmountRequest struct {
	WeekNumber int             `json:"week_number" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	WeekStart  string          `json:"week_start,omitempty"`
	WeekEnd    string          `json:"week_end,omitempty"`
	Completed  bool            `json:"completed,omitempty"`
}

// CreatePlanRequest is the body for POST /savings-plans.
type CreatePlanRequest struct {
	Name          string                `json:"name" binding:"required"`
	TargetAmount  decimal.Decimal       `json:"target_amount" binding:"required"`
	NumberOfWeeks int                   `json:"number_of_weeks" binding:"required"`
	StartDate     string                `json:"start_date" binding:"required"`
	EndDate       string                `json:"end_date" binding:"required"`
	WeeklyAmounts []WeeklyAmountRequest `json:"weekly_amounts,omitempty"`
}

// UpdatePlanRequest is the body for PATCH /savings-plans/:id.
type UpdatePlanRequest struct {
	Name          *string          `json:"name,omitempty"`
	TargetAmount  *decimal.Decimal `json:"target_amount,omitempty"`
	NumberOfWeeks *int             `json:"number_of_weeks,omitempty"`
	StartDate     *string          `json:"start_date,omitempty"`
	EndDate       *string          `json:"end_date,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// AddWeeklyAmountsRequest is the body for POST /savings-plans/:id/weekly-amounts.
type AddWeeklyAmountsRequest struct {
	WeeklyAmounts []WeeklyAmountRequest `json:"weekly_amounts" binding:"required"`
}

// UpdateWeeklyAmountRequest is the body for PATCH /savings-plans/:id/weekly-amounts/:weekId.
type UpdateWeeklyAmountRequest struct {
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Completed *bool            `json:"completed,omitempty"`
	WeekStart *string          `json:"week_start,omitempty"`
	WeekEnd   *string          `json:"week_end,omitempty"`
}

// WeeklyAmountResponse is one installment in a plan response.
type WeeklyAmountResponse struct {
	ID          string          `json:"id"`
	WeekNumber  int             `json:"week_number"`
	WeekIndex   *int            `json:"week_index,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	WeekStart   string          `json:"week_start,omitempty"`
	WeekEnd     string          `json:"week_end,omitempty"`
	Completed   bool            `json:"completed"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// PlanResponse is the API representation of a saving plan.
type PlanResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	TargetAmount     decimal.Decimal        `json:"target_amount"`
	NumberOfWeeks    int                    `json:"number_of_weeks"`
	TotalSavedAmount decimal.Decimal        `json:"total_saved_amount"`
	StartDate        string                 `json:"start_date"`
	EndDate          string                 `json:"end_date"`
	IsActive         bool                   `json:"is_active"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	WeeklyAmounts    []WeeklyAmountResponse `json:"weekly_amounts,omitempty"`
}

// PlanListResponse is the paginated body for GET /savings-plans.
type PlanListResponse struct {
	Plans  []PlanResponse `json:"plans"`
	Total  int64          `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// PlanStatsResponse is the body for GET /savings-plans/:id/stats.
type PlanStatsResponse struct {
	PlanID          string          `json:"plan_id"`
	TotalSaved      decimal.Decimal `json:"total_saved"`
	PercentComplete float64         `json:"percent_complete"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`
	WeeksCompleted  int             `json:"weeks_completed"`
	WeeksRemaining  int             `json:"weeks_remaining"`
	ScheduleStatus  string          `json:"schedule_status"`
	WeeksBehind     int             `json:"weeks_behind,omitempty"`
	WeeksAhead      int             `json:"weeks_ahead,omitempty"`
	NextDueDate     *string         `json:"next_due_date,omitempty"`
}

// UserStatsResponse is the body for GET /savings-plans/stats.
type UserStatsResponse struct {
	TotalPlans        int             `json:"total_plans"`
	ActivePlans       int             `json:"active_plans"`
	CompletedPlans    int             `json:"completed_plans"`
	TotalTargetAmount decimal.Decimal `json:"total_target_amount"`
	TotalSavedAmount  decimal.Decimal `json:"total_saved_amount"`
	PercentComplete   float64         `json:"percent_complete"`
}

// ToWeeklyAmountResponse converts a domain WeeklyAmount to its API shape.
func ToWeeklyAmountResponse(amount *entity.WeeklyAmount) WeeklyAmountResponse {
	resp := WeeklyAmountResponse{
		ID:          amount.ID.String(),
		WeekNumber:  amount.WeekNumber,
		WeekIndex:   amount.WeekIndex,
		Amount:      amount.Amount,
		Completed:   amount.Completed,
		CompletedAt: amount.CompletedAt,
	}
	if !amount.WeekStart.IsZero() {
		resp.WeekStart = amount.WeekStart.Format(DateLayout)
	}
	if !amount.WeekEnd.IsZero() {
		resp.WeekEnd = amount.WeekEnd.Format(DateLayout)
	}
	return resp
}

// ToPlanResponse converts a domain SavingPlan to its API shape.
func ToPlanResponse(plan *entity.SavingPlan) PlanResponse {
	resp := PlanResponse{
		ID:               plan.ID.String(),
		Name:             plan.Name,
		TargetAmount:     plan.TargetAmount,
		NumberOfWeeks:    plan.NumberOfWeeks,
		TotalSavedAmount: plan.TotalSavedAmount,
		StartDate:        plan.StartDate.Format(DateLayout),
		EndDate:          plan.EndDate.Format(DateLayout),
		IsActive:         plan.IsActive,
		CreatedAt:        plan.CreatedAt,
		UpdatedAt:        plan.UpdatedAt,
	}
	for _, amount := range plan.WeeklyAmounts {
		resp.WeeklyAmounts = append(resp.WeeklyAmounts, ToWeeklyAmountResponse(amount))
	}
	return resp
}

// ToPlanListResponse converts a page of plans to its API shape.
func ToPlanListResponse(plans []*entity.SavingPlan, total int64, offset, limit int) PlanListResponse {
	resp := PlanListResponse{
		Plans:  make([]PlanResponse, 0, len(plans)),
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
	for _, plan := range plans {
		resp.Plans = append(resp.Plans, ToPlanResponse(plan))
	}
	return resp
}

// ToPlanStatsResponse converts derived plan statistics to their API shape.
func ToPlanStatsResponse(plan *entity.SavingPlan, stats *savings.PlanStats) PlanStatsResponse {
	resp := PlanStatsResponse{
		PlanID:          plan.ID.String(),
		TotalSaved:      stats.TotalSaved,
		PercentComplete: stats.PercentComplete,
		AmountRemaining: stats.AmountRemaining,
		WeeksCompleted:  stats.WeeksCompleted,
		WeeksRemaining:  stats.WeeksRemaining,
		ScheduleStatus:  string(stats.ScheduleStatus),
		WeeksBehind:     stats.WeeksBehind,
		WeeksAhead:      stats.WeeksAhead,
	}
	if stats.NextDueDate != nil {
		due := stats.NextDueDate.Format(DateLayout)
		resp.NextDueDate = &due
	}
	return resp
}

// ToUserStatsResponse converts aggregated user statistics to their API shape.
func ToUserStatsResponse(stats *savings.UserStats) UserStatsResponse {
	return UserStatsResponse{
		TotalPlans:        stats.TotalPlans,
		ActivePlans:       stats.ActivePlans,
		CompletedPlans:    stats.CompletedPlans,
		TotalTargetAmount: stats.TotalTargetAmount,
		TotalSavedAmount:  stats.TotalSavedAmount,
		PercentComplete:   stats.PercentComplete,
	}
}
