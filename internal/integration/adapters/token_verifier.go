// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

// IdentityClaims represents the claims carried by the identity provider's
// access token. The subject is the user's stable ID.
type identityTokenClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// tokenVerifier implements adapter.TokenVerifier for HS256 tokens issued by
// the external identity provider.
type tokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a new token verifier instance.
func NewTokenVerifier(secret string) adapter.TokenVerifier {
	return &tokenVerifier{
		secret: []byte(secret),
	}
}

// VerifyAccessToken parses and validates a token, returning the identity it
// proves. Tokens signed with any method other than HMAC are rejected before
// the signature is checked.
func (v *tokenVerifier) VerifyAccessToken(ctx context.Context, tokenString string) (*adapter.IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &identityTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*identityTokenClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", domainerror.ErrInvalidToken)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", domainerror.ErrInvalidToken)
	}

	return &adapter.IdentityClaims{
		UserID:   userID,
		Email:    claims.Email,
		Name:     claims.Name,
		Provider: claims.Provider,
	}, nil
}
