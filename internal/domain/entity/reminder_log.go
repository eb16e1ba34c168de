// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReminderStatus represents the outcome of a reminder send attempt.
type ReminderStatus string

const (
	ReminderStatusSent   ReminderStatus = "sent"
	ReminderStatusFailed ReminderStatus = "failed"
)

// ReminderLog records the outcome of one reminder email attempt for one user
// within a reminder cycle.
type ReminderLog struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	RecipientEmail string
	Subject        string
	Status         ReminderStatus
	ProviderID     string
	LastError      string
	CycleAt        time.Time
	CreatedAt      time.Time
}

// NewReminderLog creates a pending log entry for a reminder attempt.
func NewReminderLog(userID uuid.UUID, recipientEmail, subject string, cycleAt time.Time) *ReminderLog {
	return &ReminderLog{
		ID:             uuid.New(),
		UserID:         userID,
		RecipientEmail: recipientEmail,
		Subject:        subject,
		CycleAt:        cycleAt,
		CreatedAt:      time.Now().UTC(),
	}
}

// MarkSent records a successful send with the provider's message ID.
func (l *ReminderLog) MarkSent(providerID string) {
	l.Status = ReminderStatusSent
	l.ProviderID = providerID
}

// MarkFailed records a failed send attempt.
func (l *ReminderLog) MarkFailed(err error) {
	l.Status = ReminderStatusFailed
	if err != nil {
		l.LastError = err.Error()
	}
}
