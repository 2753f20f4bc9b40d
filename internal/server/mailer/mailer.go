// Package mailer delivers password reset e-mails.
package mailer

import (
	"context"
	"fmt"
	"html"
	"time"
)

// Mailer sends transactional e-mails to account holders.
type Mailer interface {
	SendPasswordReset(ctx context.Context, msg ResetMessage) error
}

// ResetMessage carries what the reset e-mail needs.
type ResetMessage struct {
	To        string
	Name      string
	Token     string
	ExpiresIn time.Duration
}

const resetSubject = "Reset your Family Account password"

func (m ResetMessage) plain() string {
	return fmt.Sprintf("Hi %s,\n\nUse this code to choose a new password: %s\nIt expires in %s.\n\nIf you did not ask for a reset you can ignore this e-mail.\n",
		m.Name, m.Token, m.ExpiresIn)
}

func (m ResetMessage) html() string {
	return fmt.Sprintf("<p>Hi %s,</p><p>Use this code to choose a new password: <strong>%s</strong><br>It expires in %s.</p><p>If you did not ask for a reset you can ignore this e-mail.</p>",
		html.EscapeString(m.Name), html.EscapeString(m.Token), m.ExpiresIn)
}
