package services

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"campusfix/internal/models"
)

type EmailService interface {
	SendNewSubmissionEmail(to string, task *models.Task) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendNewSubmissionEmail(to string, task *models.Task) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "New maintenance request awaiting approval")

	area := task.Area
	if area == "" {
		area = "not specified"
	}
	body := fmt.Sprintf(`
		<h3>New public maintenance request</h3>
		<p><strong>%s</strong></p>
		<p>%s</p>
		<p>Area: %s</p>
		<p>The request is awaiting approval in the admin console.</p>
	`, html.EscapeString(task.Title), html.EscapeString(task.Description), html.EscapeString(area))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send submission email: %w", err)
	}

	return nil
}
