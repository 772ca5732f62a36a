package ports

import "context"

// Email mensaje HTML listo para enviar.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer puerto de salida para el envío de correos (SMTP en producción, fake en tests).
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
