package domain

import (
	"errors"
	"fmt"
)

// Categorías de error de dominio (sin dependencias externas).
// La capa HTTP traduce cada categoría a su código de estado.
var (
	ErrBadRequest      = errors.New("solicitud inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrUnprocessable   = errors.New("entidad no procesable")
	ErrTooManyRequests = errors.New("demasiadas solicitudes")
	ErrInternal        = errors.New("error interno")
)

// Error error de aplicación: una categoría (Kind) más el mensaje que ve el cliente.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrNotFound).
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}

func BadRequest(format string, args ...any) error { return newError(ErrBadRequest, format, args...) }
func Unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}
func Forbidden(format string, args ...any) error { return newError(ErrForbidden, format, args...) }
func NotFound(format string, args ...any) error  { return newError(ErrNotFound, format, args...) }
func Conflict(format string, args ...any) error  { return newError(ErrConflict, format, args...) }
func Unprocessable(format string, args ...any) error {
	return newError(ErrUnprocessable, format, args...)
}
func TooManyRequests(format string, args ...any) error {
	return newError(ErrTooManyRequests, format, args...)
}

// AsError extrae el *Error de una cadena envuelta.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
