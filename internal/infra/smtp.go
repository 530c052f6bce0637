package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/DareDevilStudios/sharon-billing/internal/config"
)

// Mailer wraps SMTP configuration for sending emails with PDF attachments.
// Sends go through a circuit breaker so a dead SMTP relay fast-fails instead
// of tying up workers on connection timeouts.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
	breaker  *CircuitBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		breaker:  NewCircuitBreaker(DefaultCBConfig()),
	}
}

// BreakerState exposes the circuit state for the health endpoint.
func (m *Mailer) BreakerState() string {
	return m.breaker.State().String()
}

// SendInvoice mails an invoice PDF to the customer.
func (m *Mailer) SendInvoice(to, subject, body, pdfPath string) error {
	return m.breaker.Execute(func() error {
		e := email.NewEmail()
		e.From = m.user
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)

		if pdfPath != "" {
			if _, err := e.AttachFile(pdfPath); err != nil {
				return fmt.Errorf("mailer: attach PDF: %w", err)
			}
		}

		auth := smtp.PlainAuth("", m.user, m.password, m.host)
		return e.Send(m.addr, auth)
	})
}
