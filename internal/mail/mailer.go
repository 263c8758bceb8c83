package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"autoshop/api/internal/config"
)

// Mailer delivers transactional mail. Delivery is best-effort everywhere it
// is used: a failed send is logged by the caller, never surfaced to the
// client.
type Mailer interface {
	SendPasswordReset(to string, name string, resetURL string) error
}

type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendPasswordReset(to string, name string, resetURL string) error {
	if name == "" {
		name = to
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request - DADJ Auto Shop")
	msg.SetBody("text/html", resetBody(name, resetURL))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

func resetBody(name string, resetURL string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h3>Password Reset Request</h3>
  <p>Hello %s,</p>
  <p>We received a request to reset the password for your DADJ Auto Shop account.</p>
  <p><a href="%s" style="background-color:#000080;color:white;padding:12px 24px;text-decoration:none;border-radius:6px;display:inline-block;">Reset Password</a></p>
  <p>Or copy and paste this link in your browser:<br><a href="%s">%s</a></p>
  <p><strong>This link will expire in 1 hour.</strong></p>
  <p>If you didn't request this password reset, please ignore this email.</p>
</div>`, name, resetURL, resetURL, resetURL)
}
