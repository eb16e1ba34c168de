// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// TipRequest carries the digest context used to personalize a savings tip.
type TipRequest struct {
	UserName       string
	PlansBehind    int
	TotalRemaining string
}

// SavingsTipService generates a short motivational savings tip for the
// weekly reminder digest. Implementations may be unavailable (no API key);
// callers fall back to a static tip.
type SavingsTipService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// GenerateTip returns a one-or-two sentence savings tip.
	GenerateTip(ctx context.Context, req TipRequest) (string, error)
}
