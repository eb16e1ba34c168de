// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/money-saver/backend/internal/domain/entity"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// PlanDigest is one plan's row in a user's weekly reminder digest.
type PlanDigest struct {
	Name            string
	TargetAmount    decimal.Decimal
	TotalSaved      decimal.Decimal
	AmountRemaining decimal.Decimal
	PercentComplete float64
	WeeksCompleted  int
	WeeksRemaining  int
	ScheduleStatus  string
	ThisWeekAmount  decimal.Decimal
}

// ReminderDigest is the personalized content of one user's weekly reminder.
type ReminderDigest struct {
	User           *entity.User
	Plans          []PlanDigest
	TotalTarget    decimal.Decimal
	TotalSaved     decimal.Decimal
	TotalRemaining decimal.Decimal
	DueThisWeek    decimal.Decimal
	Tip            string
}

// ReminderMailer renders and sends a weekly reminder digest.
type ReminderMailer interface {
	// SendWeeklyReminder renders the digest templates and sends the email.
	SendWeeklyReminder(ctx context.Context, digest *ReminderDigest) (*SendEmailResult, error)
}
