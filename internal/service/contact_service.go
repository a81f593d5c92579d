package service

import (
	"context"
	"errors"
	"fmt"
	"html"
)

var ErrContactNotConfigured = errors.New("admin contact email is not configured")

type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactService forwards contact-form submissions to the admin mailbox.
type ContactService struct {
	mailer     Mailer
	adminEmail string
}

func NewContactService(mailer Mailer, adminEmail string) *ContactService {
	return &ContactService{mailer: mailer, adminEmail: adminEmail}
}

func (s *ContactService) Submit(ctx context.Context, msg ContactMessage) error {
	if s.adminEmail == "" {
		return ErrContactNotConfigured
	}
	phone := msg.Phone
	if phone == "" {
		phone = "N/A"
	}

	text := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s",
		msg.Name, msg.Email, phone, msg.Message)
	htmlBody := fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Phone:</strong> %s</p><p><strong>Message:</strong><br>%s</p>",
		html.EscapeString(msg.Name), html.EscapeString(msg.Email),
		html.EscapeString(phone), html.EscapeString(msg.Message))

	return s.mailer.Send(ctx, s.adminEmail, "New Contact Form Submission", text, htmlBody)
}
