package entity

import "time"

// OTP código de un solo uso para el segundo factor del login.
type OTP struct {
	ID                string
	UserID            string
	Code              string
	ExpirationMinutes int
	ExpiresAt         time.Time
	IsUsed            bool
	CreatedAt         time.Time
}

// Valid indica si el código puede canjearse en el instante dado.
func (o *OTP) Valid(now time.Time) bool {
	return !o.IsUsed && now.Before(o.ExpiresAt)
}
