// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/money-saver/backend/internal/application/usecase/reminder"
	"github.com/money-saver/backend/internal/integration/entrypoint/dto"
	"github.com/money-saver/backend/internal/integration/scheduler"
)

// CycleSummaryResponse is the body for POST /admin/reminders/trigger.
type CycleSummaryResponse struct {
	CycleAt  string `json:"cycle_at"`
	Selected int    `json:"selected"`
	Sent     int    `json:"sent"`
	Failed   int    `json:"failed"`
	Skipped  bool   `json:"skipped"`
}

// AdminController handles operational endpoints.
type AdminController struct {
	scheduler *scheduler.Scheduler
}

// NewAdminController creates a new admin controller instance.
func NewAdminController(sched *scheduler.Scheduler) *AdminController {
	return &AdminController{
		scheduler: sched,
	}
}

// TriggerReminders handles POST /admin/reminders/trigger requests. An
// already-running cycle yields 202 with skipped set rather than an error.
func (c *AdminController) TriggerReminders(ctx *gin.Context) {
	summary, err := c.scheduler.TriggerNow(ctx.Request.Context())
	if err != nil && !reminder.IsSkipped(err) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Reminder cycle failed",
		})
		return
	}

	resp := CycleSummaryResponse{
		CycleAt:  summary.CycleAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Selected: summary.Selected,
		Sent:     summary.Sent,
		Failed:   summary.Failed,
		Skipped:  summary.Skipped,
	}
	if summary.Skipped {
		ctx.JSON(http.StatusAccepted, resp)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SchedulerStatus handles GET /admin/scheduler/status requests.
func (c *AdminController) SchedulerStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.scheduler.Status())
}
