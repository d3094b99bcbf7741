package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"lexdesk/config"
	"lexdesk/logger"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers one message
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// NewMailerFromConfig returns a Resend mailer, or a logging mailer in test mode
func NewMailerFromConfig(cfg *config.Config) (Mailer, error) {
	if cfg.EmailTestMode {
		return &LogMailer{}, nil
	}
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY not configured")
	}
	if cfg.EmailFrom == "" {
		return nil, fmt.Errorf("EMAIL_FROM not configured")
	}
	return NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom), nil
}

// ResendMailer sends through the Resend API
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) Send(ctx context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	logger.L().Infow("email sent", "id", sent.Id, "to", email.To)
	return nil
}

// LogMailer writes messages to the log instead of sending them.
// It keeps what it logged so callers can inspect it.
type LogMailer struct {
	mu   sync.Mutex
	Sent []Email
}

func (m *LogMailer) Send(_ context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.Sent = append(m.Sent, *email)
	m.mu.Unlock()

	logger.L().Infow("email logged (test mode, not sent)",
		"to", email.To,
		"subject", email.Subject,
		"body", truncate(email.TextBody, 500),
	)
	return nil
}

// Messages returns a copy of the logged messages
func (m *LogMailer) Messages() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Email(nil), m.Sent...)
}

func (e *Email) validate() error {
	if len(e.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if strings.TrimSpace(e.Subject) == "" {
		return fmt.Errorf("email has no subject")
	}
	if e.HTMLBody == "" && e.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}
	return nil
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
