package services

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"agentcrm_site/internal/config"
	"agentcrm_site/internal/leadform"
)

// SendMailFunc matches smtp.SendMail so tests can capture outgoing mail
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
	sendMail SendMailFunc
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		sendMail: smtp.SendMail,
	}
}

// Configured reports whether SMTP credentials are complete
func (s *EmailService) Configured() bool {
	return s.host != "" && s.port != "" && s.user != "" && s.password != ""
}

func (s *EmailService) SendEmail(to []string, subject, body string) error {
	if !s.Configured() {
		return fmt.Errorf("SMTP credentials not fully configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	auth := smtp.PlainAuth("", s.user, s.password, s.host)

	message := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", s.from, strings.Join(to, ", "), mime.QEncoding.Encode("utf-8", subject), strings.ReplaceAll(body, "\n", "\r\n")))

	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := s.sendMail(addr, auth, s.from, to, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// EmailDeliverer sends each inquiry as a plain-text email to its recipient
type EmailDeliverer struct {
	Email *EmailService
}

func (d *EmailDeliverer) Deliver(ctx context.Context, inquiry leadform.Inquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body := fmt.Sprintf("Reference: %s\n\n%s", inquiry.Reference, inquiry.Body)
	return d.Email.SendEmail([]string{inquiry.To}, inquiry.Subject, body)
}
