package services

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// EmailNotifier sends candidate-facing notifications when an application's
// status changes. Implementations must be safe to call from a goroutine;
// delivery is fire-and-forget and never fails the request that triggered it.
type EmailNotifier interface {
	SendStatusChangeEmail(candidateEmail, candidateName, oldStatus, newStatus, jobTitle, notes string)
}

// statusChangeBody renders the shared notification template.
func statusChangeBody(candidateName, oldStatus, newStatus, jobTitle, notes string) string {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour application for %s has moved from %s to %s.",
		candidateName, jobTitle, oldStatus, newStatus,
	)
	if notes != "" {
		body += "\n\nNotes: " + notes
	}
	return body + "\n\nBest regards,\nThe Recruiting Team"
}

// MockEmailService logs notifications instead of delivering them. Default in
// development and tests.
type MockEmailService struct {
	log *zap.Logger
}

func NewMockEmailService(log *zap.Logger) *MockEmailService {
	return &MockEmailService{log: log}
}

func (s *MockEmailService) SendStatusChangeEmail(candidateEmail, candidateName, oldStatus, newStatus, jobTitle, notes string) {
	s.log.Info("mock email: status change notification",
		zap.String("to", candidateEmail),
		zap.String("job_title", jobTitle),
		zap.String("old_status", oldStatus),
		zap.String("new_status", newStatus),
	)
}

// SMTPEmailService delivers notifications over plain SMTP. Delivery errors
// are logged and swallowed; a failed email must never fail a status change.
type SMTPEmailService struct {
	log  *zap.Logger
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPEmailService(log *zap.Logger, host string, port int, from, username, password string) *SMTPEmailService {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPEmailService{
		log:  log,
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

func (s *SMTPEmailService) SendStatusChangeEmail(candidateEmail, candidateName, oldStatus, newStatus, jobTitle, notes string) {
	subject := fmt.Sprintf("Application Update: %s", jobTitle)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.from, candidateEmail, subject,
		statusChangeBody(candidateName, oldStatus, newStatus, jobTitle, notes))

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{candidateEmail}, []byte(msg)); err != nil {
		s.log.Warn("status change email delivery failed",
			zap.String("to", candidateEmail),
			zap.Error(err),
		)
		return
	}
	s.log.Info("status change email sent", zap.String("to", candidateEmail))
}
