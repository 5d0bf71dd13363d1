package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends account notices.
type Mailer interface {
	SendPasswordChanged(ctx context.Context, to, username string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender abstracts gomail's dialer so tests can capture messages.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpMailer struct {
	from   string
	sender Sender
}

// New returns an SMTP mailer, or a no-op one when no host is configured.
func New(cfg Config) Mailer {
	if cfg.Host == "" {
		return noopMailer{}
	}
	return NewWithSender(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password))
}

func NewWithSender(from string, sender Sender) Mailer {
	return &smtpMailer{from: from, sender: sender}
}

func (m *smtpMailer) SendPasswordChanged(ctx context.Context, to, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your password was changed")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nThe password of your clinic account was just changed. "+
			"If you did not request this, contact an administrator.\n", username))

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

type noopMailer struct{}

func (noopMailer) SendPasswordChanged(context.Context, string, string) error { return nil }
