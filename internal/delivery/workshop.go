package delivery

import (
	"context"

	"github.com/workshoply/email-gateway/internal/metrics"
)

const errMissingWorkshopParams = "Missing required email parameters: email, name, subject, and template are required"

// WorkshopConfirmation carries the details for a workshop signup
// confirmation email. Template is the fully rendered HTML body.
type WorkshopConfirmation struct {
	Email    string
	Name     string
	Subject  string
	Template string
}

// SendWorkshopConfirmation validates the confirmation details and delegates
// to Send with the template as the HTML body. The plain-text part is
// derived by tag stripping.
//
// Name is required but not placed into the outgoing message here; callers
// are expected to render it into the template beforehand. If the template
// arrives unrendered, the recipient's name is silently dropped.
func (s *Service) SendWorkshopConfirmation(ctx context.Context, c WorkshopConfirmation) Result {
	if c.Email == "" || c.Name == "" || c.Subject == "" || c.Template == "" {
		metrics.MailSendTotal.WithLabelValues("invalid").Inc()
		s.log.Error().Str("to", c.Email).Msg("missing required workshop confirmation parameters")
		return Result{Success: false, Error: errMissingWorkshopParams}
	}

	return s.Send(ctx, Request{
		To:      c.Email,
		Subject: c.Subject,
		HTML:    c.Template,
	})
}
