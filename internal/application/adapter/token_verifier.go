// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// IdentityClaims is the verified identity tuple extracted from a bearer
// credential issued by the external identity provider.
type IdentityClaims struct {
	UserID   uuid.UUID
	Email    string
	Name     string
	Provider string
}

// TokenVerifier verifies bearer credentials from the identity provider.
type TokenVerifier interface {
	// VerifyAccessToken validates the token and returns its identity claims.
	VerifyAccessToken(ctx context.Context, token string) (*IdentityClaims, error)
}
