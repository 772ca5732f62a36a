// Package email envía los correos transaccionales (OTP y contraseña temporal).
package email

import (
	"context"
	"fmt"

	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/pkg/config"
	"github.com/jhoicas/medisupply-api/pkg/logger"
	"gopkg.in/gomail.v2"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// SMTPMailer envía por SMTP con gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewSMTPMailer el remitente se autentica con su propia cuenta (Sender/Password).
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password),
		sender: cfg.Sender,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, email ports.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/html", email.HTML)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email.To, err)
	}
	return nil
}

// LogMailer sólo registra el correo; se usa en desarrollo cuando no hay SMTP configurado.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log.Component("mailer")}
}

func (m *LogMailer) Send(_ context.Context, email ports.Email) error {
	m.log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("correo no enviado (SMTP deshabilitado)")
	m.log.Debug().Str("to", email.To).Msg(email.HTML)
	return nil
}
