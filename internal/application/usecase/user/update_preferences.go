// Package user contains user account use cases.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

// UpdatePreferencesInput represents the input for a preferences patch. Only
// non-nil fields are applied.
type UpdatePreferencesInput struct {
	UserID             uuid.UUID
	EmailNotifications *bool
	Name               *string
}

// UpdatePreferencesOutput represents the output of a preferences patch.
type UpdatePreferencesOutput struct {
	User *entity.User
}

// UpdatePreferencesUseCase handles user preference updates.
type UpdatePreferencesUseCase struct {
	userRepo adapter.UserRepository
	clock    adapter.Clock
}

// NewUpdatePreferencesUseCase creates a new UpdatePreferencesUseCase instance.
func NewUpdatePreferencesUseCase(userRepo adapter.UserRepository, clock adapter.Clock) *UpdatePreferencesUseCase {
	return &UpdatePreferencesUseCase{
		userRepo: userRepo,
		clock:    clock,
	}
}

// Execute applies the patch. A user who disables notifications stops being
// selected for reminder cycles from the next cycle on.
func (uc *UpdatePreferencesUseCase) Execute(ctx context.Context, input UpdatePreferencesInput) (*UpdatePreferencesOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}
	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	user.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdatePreferencesOutput{User: user}, nil
}
