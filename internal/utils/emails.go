package utils

import (
	"log"

	"gopkg.in/gomail.v2"

	"github.com/mentorconnect/backend/internal/config"
)

type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers an HTML email through the configured SMTP server.
func (m *Mailer) Send(to string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.cfg.From)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	if err := dialer.DialAndSend(mailer); err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Email sent successfully to %s", to)
	return nil
}
