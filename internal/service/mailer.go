package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer delivers transactional email. Callers treat a send failure as
// fatal to the request; there is no retry queue.
type Mailer interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}

const passwordResetSubject = "Password Reset OTP"

func passwordResetText(code string) string {
	return fmt.Sprintf("Your password reset OTP is: %s\n\nThis OTP is valid for 10 minutes. Please do not share this OTP with anyone.", code)
}

func passwordResetHTML(code string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Password Reset OTP</h2>
  <p>Your password reset OTP is:</p>
  <div style="background-color: #f4f4f4; padding: 20px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 2px; border-radius: 5px; margin: 20px 0;">%s</div>
  <p>This OTP is valid for 10 minutes. Please do not share this OTP with anyone.</p>
  <p>If you didn't request this password reset, please ignore this email.</p>
</div>`, code)
}

// SMTPMailer sends through an authenticated SMTP relay.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	if from == "" {
		from = user
	}
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, textBody, htmlBody string) error {
	body := textBody
	contentType := "text/plain; charset=UTF-8"
	if htmlBody != "" {
		body = htmlBody
		contentType = "text/html; charset=UTF-8"
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: GOOD TASTE CATERS <%s>\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n", contentType)
	msg.WriteString(body)

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// DevMailer logs instead of sending. Used when SMTP is not configured, and
// by tests that need to capture the OTP.
type DevMailer struct {
	logger *slog.Logger
}

func NewDevMailer(logger *slog.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

func (m *DevMailer) Send(ctx context.Context, to, subject, textBody, _ string) error {
	m.logger.InfoContext(ctx, "email suppressed in development",
		"to", to,
		"subject", subject,
		"body", textBody,
	)
	return nil
}
