package mailer

import (
	"context"

	"github.com/dmitrijs2005/familyaccount/internal/logging"
)

// LogMailer writes reset codes to the log instead of sending them. It is
// meant for local development only.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("module", "mailer")}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, msg ResetMessage) error {
	m.logger.Info(ctx, "password reset e-mail", "to", msg.To, "token", msg.Token, "expires_in", msg.ExpiresIn.String())
	return nil
}
