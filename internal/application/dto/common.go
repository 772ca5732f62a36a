package dto

import (
	"strings"
	"time"
)

// DateLayout formato de fechas sin hora en JSON y query params.
const DateLayout = "2006-01-02"

// Date fecha calendario (YYYY-MM-DD) para delivery_date, due_date, expected_date.
type Date struct {
	time.Time
}

// NewDate trunca t a la fecha (UTC).
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate interpreta "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// Se aceptan también timestamps completos y se truncan a la fecha.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = NewDate(t)
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorDetail un campo inválido del request.
type ValidationErrorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse cuerpo 422 cuando el request no pasa la validación.
type ValidationErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Detail  []ValidationErrorDetail `json:"detail"`
}

// HealthResponse salida de /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
