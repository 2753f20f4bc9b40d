package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendFunc delivers a prepared message and reports the HTTP status.
type sendFunc func(ctx context.Context, m *mail.SGMailV3) (status int, body string, err error)

// SendgridMailer sends e-mails through the SendGrid v3 API.
type SendgridMailer struct {
	from *mail.Email
	send sendFunc
}

func NewSendgridMailer(apiKey, fromAddress string) *SendgridMailer {
	client := sendgrid.NewSendClient(apiKey)
	return &SendgridMailer{
		from: mail.NewEmail("Family Account", fromAddress),
		send: func(ctx context.Context, m *mail.SGMailV3) (int, string, error) {
			resp, err := client.SendWithContext(ctx, m)
			if err != nil {
				return 0, "", err
			}
			return resp.StatusCode, resp.Body, nil
		},
	}
}

func (s *SendgridMailer) SendPasswordReset(ctx context.Context, msg ResetMessage) error {
	to := mail.NewEmail(msg.Name, msg.To)
	m := mail.NewSingleEmail(s.from, resetSubject, to, msg.plain(), msg.html())

	status, body, err := s.send(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if status >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", status, body)
	}
	return nil
}
