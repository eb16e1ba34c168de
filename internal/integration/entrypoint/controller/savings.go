// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/usecase/savings"
	domainerror "github.com/money-saver/backend/internal/domain/error"
	"github.com/money-saver/backend/internal/integration/entrypoint/dto"
	"github.com/money-saver/backend/internal/integration/entrypoint/middleware"
)

// SavingsController handles saving plan endpoints.
type SavingsController struct {
	createUseCase     *savings.CreatePlanUseCase
	listUseCase       *savings.ListPlansUseCase
	getUseCase        *savings.GetPlanUseCase
	updateUseCase     *savings.UpdatePlanUseCase
	deleteUseCase     *savings.DeletePlanUseCase
	addWeeksUseCase   *savings.AddWeeklyAmountsUseCase
	updateWeekUseCase *savings.UpdateWeeklyAmountUseCase
	planStatsUseCase  *savings.GetPlanStatsUseCase
	userStatsUseCase  *savings.GetUserStatsUseCase
}

// NewSavingsController creates a new savings controller instance.
func NewSavingsController(
	createUseCase *savings.CreatePlanUseCase,
	listUseCase *savings.ListPlansUseCase,
	getUseCase *savings.GetPlanUseCase,
	updateUseCase *savings.UpdatePlanUseCase,
	deleteUseCase *savings.DeletePlanUseCase,
	addWeeksUseCase *savings.AddWeeklyAmountsUseCase,
	updateWeekUseCase *savings.UpdateWeeklyAmountUseCase,
	planStatsUseCase *savings.GetPlanStatsUseCase,
	userStatsUseCase *savings.GetUserStatsUseCase,
) *SavingsController {
	return &SavingsController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		addWeeksUseCase:   addWeeksUseCase,
		updateWeekUseCase: updateWeekUseCase,
		planStatsUseCase:  planStatsUseCase,
		userStatsUseCase:  userStatsUseCase,
	}
}

// Create handles POST /savings-plans requests.
func (c *SavingsController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPlanFields),
		})
		return
	}

	startDate, endDate, ok := parseDateRange(ctx, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	input := savings.CreatePlanInput{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		NumberOfWeeks: req.NumberOfWeeks,
		StartDate:     startDate,
		EndDate:       endDate,
	}
	for _, wa := range req.WeeklyAmounts {
		amountInput, ok := parseWeeklyAmountRequest(ctx, wa)
		if !ok {
			return
		}
		input.WeeklyAmounts = append(input.WeeklyAmounts, amountInput)
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPlanResponse(output.Plan))
}

// List handles GET /savings-plans requests.
func (c *SavingsController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), savings.ListPlansInput{
		UserID: userID,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanListResponse(output.Plans, output.Total, output.Offset, output.Limit))
}

// Get handles GET /savings-plans/:id requests.
func (c *SavingsController) Get(ctx *gin.Context) {
	userID, planID, ok := planRequestIDs(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), savings.GetPlanInput{
		PlanID: planID,
		UserID: userID,
	})
	if err != nil {
		handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanResponse(output.Plan))
}

// Update handles PATCH /savings-plans/:id requests.
func (c *SavingsController) Update(ctx *gin.Context) {
	userID, planID, ok := planRequestIDs(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := savings.UpdatePlanInput{
		PlanID:        planID,
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		NumberOfWeeks: req.NumberOfWeeks,
		IsActive:      req.IsActive,
	}
	if req.StartDate != nil {
		start, ok := parseDate(ctx, *req.StartDate, "start_date")
		if !ok {
			return
		}
		input.StartDate = &start
	}
	if req.EndDate != nil {
		end, ok := parseDate(ctx, *req.EndDate, "end_date")
		if !ok {
			return
		}
		input.EndDate = &end
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanResponse(output.Plan))
}

// Delete handles DELETE /savings-plans/:id requests.
func (c *SavingsController) Delete(ctx *gin.Context) {
	userID, planID, ok := planRequestIDs(ctx)
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), savings.DeletePlanInput{
		PlanID: planID,
		UserID: userID,
	})
	if err != nil {
		handleSavingsError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddWeeklyAmounts handles POST /savings-plans/:id/weekly-amounts requests.
func (c *SavingsController) AddWeeklyAmounts(ctx *gin.Context) {
	userID, planID, ok := planRequestIDs(ctx)
	if !ok {
		return
	}

	var req dto.AddWeeklyAmountsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPlanFields),
		})
		return
	}

	input := savings.AddWeeklyAmountsInput{
		PlanID: planID,
		UserID: userID,
	}
	for _, wa := range req.WeeklyAmounts {
		amountInput, ok := parseWeeklyAmountRequest(ctx, wa)
		if !ok {
			return
		}
		input.Amounts = append(input.Amounts, amountInput)
	}

	output, err := c.addWeeksUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSavingsError(ctx, err)
		return
	}

	responses := make([]dto.WeeklyAmountResponse, 0, len(output.Amounts))
	for _, amount := range output.Amounts {
		responses = append(responses, dto.ToWeeklyAmountResponse(amount))
	}
	ctx.JSON(http.StatusCreated, responses)
}

// UpdateWeeklyAmount handles PATCH /savings-plans/:id/weekly-amounts/:weekId requests.
func (c *SavingsController) UpdateWeeklyAmount(ctx *gin.Context) {
	userID, planID, ok := planRequestIDs(ctx)
	if !ok {
		return
	}

	weekID, err := uuid.Parse(ctx.Param("weekId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid weekly amount ID format",
		})
		return
	}

	var req dto.UpdateWeeklyAmountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := savings.UpdateWeeklyAmountInput{
		PlanID:    planID,
		WeekID:    weekID,
		UserID:    userID,
		Amount:    req.Amount,
		Completed: req.Completed,
	}
	if req.WeekStart != nil {
		start, ok := parseDate(ctx, *req.WeekStart, "week_start")
		if !ok {
			return
		}
		input.WeekStart = &start
	}
	if req.WeekEnd != nil {
		end, ok := parseDate(ctx, *req.WeekEnd, "week_end")
		if !ok {
			return
		}
		input.WeekEnd = &end
	}

	output, err := c.updateWeekUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWeeklyAmountResponse(output.Amount))
}

// PlanStats handles GET /savings-plans/:id/stats requests.
func (c *SavingsController) PlanStats(ctx *gin.Context) {
	userID, planID, ok := planRequestIDs(ctx)
	if !ok {
		return
	}

	output, err := c.planStatsUseCase.Execute(ctx.Request.Context(), savings.GetPlanStatsInput{
		PlanID: planID,
		UserID: userID,
	})
	if err != nil {
		handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanStatsResponse(output.Plan, output.Stats))
}

// UserStats handles GET /savings-plans/stats requests.
func (c *SavingsController) UserStats(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.userStatsUseCase.Execute(ctx.Request.Context(), savings.GetUserStatsInput{
		UserID: userID,
	})
	if err != nil {
		handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserStatsResponse(output.Stats))
}

// planRequestIDs extracts the authenticated user and the :id path parameter.
func planRequestIDs(ctx *gin.Context) (userID, planID uuid.UUID, ok bool) {
	userID, authed := middleware.GetUserIDFromContext(ctx)
	if !authed {
		respondUnauthenticated(ctx)
		return uuid.Nil, uuid.Nil, false
	}

	planID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid plan ID format",
		})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, planID, true
}

// parseWeeklyAmountRequest converts one installment request, validating dates.
func parseWeeklyAmountRequest(ctx *gin.Context, req dto.WeeklyAmountRequest) (savings.WeeklyAmountInput, bool) {
	input := savings.WeeklyAmountInput{
		WeekNumber: req.WeekNumber,
		Amount:     req.Amount,
		Completed:  req.Completed,
	}
	if req.WeekStart != "" {
		start, ok := parseDate(ctx, req.WeekStart, "week_start")
		if !ok {
			return savings.WeeklyAmountInput{}, false
		}
		input.WeekStart = start
	}
	if req.WeekEnd != "" {
		end, ok := parseDate(ctx, req.WeekEnd, "week_end")
		if !ok {
			return savings.WeeklyAmountInput{}, false
		}
		input.WeekEnd = end
	}
	return input, true
}

// parseDateRange parses the required start and end dates of a plan.
func parseDateRange(ctx *gin.Context, startStr, endStr string) (start, end time.Time, ok bool) {
	start, ok = parseDate(ctx, startStr, "start_date")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok = parseDate(ctx, endStr, "end_date")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// parseDate parses a date-only field, responding with 400 on failure.
func parseDate(ctx *gin.Context, value, field string) (time.Time, bool) {
	parsed, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field + ": expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateRange),
		})
		return time.Time{}, false
	}
	return parsed, true
}

// respondUnauthenticated writes the standard missing-identity response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// handleSavingsError maps domain errors to HTTP responses.
func handleSavingsError(ctx *gin.Context, err error) {
	var savErr *domainerror.SavingsError
	if errors.As(err, &savErr) {
		ctx.JSON(statusCodeForSavingsError(savErr.Code), dto.ErrorResponse{
			Error: savErr.Message,
			Code:  string(savErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrTransientStorage) {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Storage temporarily unavailable, please retry",
			Code:  string(domainerror.ErrCodeTransientStorage),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForSavingsError maps savings error codes to HTTP status codes.
func statusCodeForSavingsError(code domainerror.SavingsErrorCode) int {
	switch code {
	case domainerror.ErrCodePlanNotFound, domainerror.ErrCodeWeeklyAmountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodePlanNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeDuplicateWeekNumber:
		return http.StatusConflict
	case domainerror.ErrCodeTransientStorage:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeInvalidPlanName,
		domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidWeekCount,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidWeeklyAmount,
		domainerror.ErrCodeWeekNumberOutOfRange,
		domainerror.ErrCodeAmountsExceedTarget,
		domainerror.ErrCodeMissingPlanFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
