// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/money-saver/backend/internal/application/adapter"
	domainerror "github.com/money-saver/backend/internal/domain/error"
	"github.com/money-saver/backend/internal/integration/email/templates"
)

// Service renders and sends reminder emails. It implements
// adapter.ReminderMailer on top of any adapter.EmailSender.
type Service struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender) (*Service, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Service{
		sender:   sender,
		renderer: renderer,
	}, nil
}

// SendWeeklyReminder renders the weekly digest and sends it to the user.
func (s *Service) SendWeeklyReminder(ctx context.Context, digest *adapter.ReminderDigest) (*adapter.SendEmailResult, error) {
	data := buildTemplateData(digest)

	html, text, err := s.renderer.Render("weekly_reminder", data)
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render weekly reminder",
			err,
		)
	}

	subject := fmt.Sprintf("Money Saver: £%s to go on your savings", digest.TotalRemaining.StringFixed(2))

	return s.sender.Send(ctx, adapter.SendEmailInput{
		To:      digest.User.Email,
		Name:    digest.User.Name,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
}

// buildTemplateData flattens the digest into display strings. Money is
// formatted with two decimal places here so templates stay dumb.
func buildTemplateData(digest *adapter.ReminderDigest) templates.WeeklyReminderData {
	data := templates.WeeklyReminderData{
		UserName:       digest.User.Name,
		TotalSaved:     digest.TotalSaved.StringFixed(2),
		TotalRemaining: digest.TotalRemaining.StringFixed(2),
		DueThisWeek:    digest.DueThisWeek.StringFixed(2),
		Tip:            digest.Tip,
	}
	if data.UserName == "" {
		data.UserName = "there"
	}

	for _, plan := range digest.Plans {
		data.Plans = append(data.Plans, templates.ReminderPlanRow{
			Name:           plan.Name,
			TotalSaved:     plan.TotalSaved.StringFixed(2),
			Remaining:      plan.AmountRemaining.StringFixed(2),
			PercentDisplay: fmt.Sprintf("%.0f%%", plan.PercentComplete*100),
			ThisWeekAmount: plan.ThisWeekAmount.StringFixed(2),
			StatusLabel:    statusLabel(plan.ScheduleStatus),
			WeeksRemaining: plan.WeeksRemaining,
		})
	}
	return data
}

// statusLabel turns a schedule status into reader-facing copy.
func statusLabel(status string) string {
	switch status {
	case "behind":
		return "a little behind"
	case "ahead":
		return "ahead of schedule"
	case "completed":
		return "completed"
	default:
		return strings.ReplaceAll(status, "-", " ")
	}
}

// Ensure Service implements adapter.ReminderMailer.
var _ adapter.ReminderMailer = (*Service)(nil)
