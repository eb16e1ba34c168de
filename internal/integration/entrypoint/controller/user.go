// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/money-saver/backend/internal/application/usecase/user"
	domainerror "github.com/money-saver/backend/internal/domain/error"
	"github.com/money-saver/backend/internal/integration/entrypoint/dto"
	"github.com/money-saver/backend/internal/integration/entrypoint/middleware"
)

// UserController handles user account endpoints.
type UserController struct {
	syncUseCase        *user.SyncUserUseCase
	profileUseCase     *user.GetProfileUseCase
	preferencesUseCase *user.UpdatePreferencesUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	syncUseCase *user.SyncUserUseCase,
	profileUseCase *user.GetProfileUseCase,
	preferencesUseCase *user.UpdatePreferencesUseCase,
) *UserController {
	return &UserController{
		syncUseCase:        syncUseCase,
		profileUseCase:     profileUseCase,
		preferencesUseCase: preferencesUseCase,
	}
}

// Sync handles POST /auth/sync requests. The body is empty; identity comes
// entirely from the verified bearer token.
func (c *UserController) Sync(ctx *gin.Context) {
	claims, ok := middleware.GetIdentityClaimsFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.syncUseCase.Execute(ctx.Request.Context(), user.SyncUserInput{
		Claims: *claims,
	})
	if err != nil {
		handleUserError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.SyncUserResponse{
		User:    dto.ToUserResponse(output.User),
		Created: output.Created,
	})
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.profileUseCase.Execute(ctx.Request.Context(), user.GetProfileInput{
		UserID: userID,
	})
	if err != nil {
		handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// UpdatePreferences handles PATCH /users/me/preferences requests.
func (c *UserController) UpdatePreferences(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.preferencesUseCase.Execute(ctx.Request.Context(), user.UpdatePreferencesInput{
		UserID:             userID,
		EmailNotifications: req.EmailNotifications,
		Name:               req.Name,
	})
	if err != nil {
		handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// handleUserError maps user domain errors to HTTP responses.
func handleUserError(ctx *gin.Context, err error) {
	var userErr *domainerror.UserError
	if errors.As(err, &userErr) {
		ctx.JSON(statusCodeForUserError(userErr.Code), dto.ErrorResponse{
			Error: userErr.Message,
			Code:  string(userErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForUserError maps user error codes to HTTP status codes.
func statusCodeForUserError(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeEmailAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeUserInactive:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
