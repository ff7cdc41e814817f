package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/moveon-app/moveon-server/internal/config"
	"github.com/moveon-app/moveon-server/internal/model"
)

var _ model.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers recovery codes over SMTP with STARTTLS.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer creates a mailer from the email configuration. The sender
// address defaults to the SMTP username when From is unset.
func NewSMTPMailer(cfg config.Email) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &SMTPMailer{client: client, from: from}, nil
}

// SendRecoveryCode sends the one-time code with a plain-text body and an
// HTML alternative.
func (m *SMTPMailer) SendRecoveryCode(ctx context.Context, to, code string) error {
	msg, err := buildRecoveryMessage(m.from, to, code)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send recovery email: %w", err)
	}

	return nil
}

func buildRecoveryMessage(from, to, code string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("MoveOn recovery code")
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("Your MoveOn recovery code is: %s. It expires in 15 minutes.", code))
	msg.AddAlternativeString(mail.TypeTextHTML, recoveryHTML(code))

	return msg, nil
}
