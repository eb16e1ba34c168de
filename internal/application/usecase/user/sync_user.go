// Package user contains user account use cases.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

// SyncUserInput carries the verified identity claims to upsert.
type SyncUserInput struct {
	Claims adapter.IdentityClaims
}

// SyncUserOutput represents the output of an identity sync.
type SyncUserOutput struct {
	User    *entity.User
	Created bool
}

// SyncUserUseCase upserts a local user row from a verified identity token.
// The identity provider owns credentials; this service only mirrors the
// subject, email and display name.
type SyncUserUseCase struct {
	userRepo adapter.UserRepository
	clock    adapter.Clock
}

// NewSyncUserUseCase creates a new SyncUserUseCase instance.
func NewSyncUserUseCase(userRepo adapter.UserRepository, clock adapter.Clock) *SyncUserUseCase {
	return &SyncUserUseCase{
		userRepo: userRepo,
		clock:    clock,
	}
}

// Execute creates the user on first sync and refreshes email and name on
// subsequent syncs. A deactivated user is reactivated, since the identity
// provider just proved they are back.
func (uc *SyncUserUseCase) Execute(ctx context.Context, input SyncUserInput) (*SyncUserOutput, error) {
	claims := input.Claims

	existing, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil && !errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if existing == nil {
		// The email may already belong to a different subject, e.g. after a
		// provider migration. That is a conflict the client must resolve.
		byEmail, err := uc.userRepo.FindByEmail(ctx, claims.Email)
		if err != nil && !errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
		if byEmail != nil && byEmail.ID != claims.UserID {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeEmailAlreadyExists,
				"email is already linked to another account",
				domainerror.ErrEmailAlreadyExists,
			)
		}

		created := entity.NewUser(claims.UserID, claims.Email, claims.Name, claims.Provider)
		if err := uc.userRepo.Create(ctx, created); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &SyncUserOutput{User: created, Created: true}, nil
	}

	existing.Email = claims.Email
	if claims.Name != "" {
		existing.Name = claims.Name
	}
	if claims.Provider != "" {
		existing.Provider = claims.Provider
	}
	existing.IsActive = true
	existing.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.userRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &SyncUserOutput{User: existing, Created: false}, nil
}
