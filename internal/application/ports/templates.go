package ports

// Nombres de las plantillas de correo.
const (
	TemplateOTP               = "otp.html"
	TemplateTemporaryPassword = "temporary_password.html"
)

// TemplateRenderer genera el HTML de un correo a partir de una plantilla y sus valores.
type TemplateRenderer interface {
	Render(name string, data any) (string, error)
}
