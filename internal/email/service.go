package email

import (
	"fmt"
	"net/smtp"
)

// Service handles email sending via SMTP.
type Service struct {
	host     string
	port     string
	from     string
	username string
	password string
}

// NewService creates a new email service. Username and password are optional;
// when set, PLAIN auth is used.
func NewService(host, port, from, username, password string) *Service {
	return &Service{
		host:     host,
		port:     port,
		from:     from,
		username: username,
		password: password,
	}
}

// SendVerification mails the email-verification link to a new user.
func (s *Service) SendVerification(to, name, link string) error {
	subject := "Verify your email address"
	body := BuildVerificationBody(name, link)
	return s.send(to, subject, body)
}

// SendPasswordReset mails a password-reset link.
func (s *Service) SendPasswordReset(to, name, link string) error {
	subject := "Reset your password"
	body := BuildPasswordResetBody(name, link)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg))
}
