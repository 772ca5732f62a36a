package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin         = "admin"
	RoleCommercial    = "commercial"
	RoleInstitutional = "institutional"
)

// User representa a cualquier usuario del sistema.
// Un institucional (cliente) apunta a su vendedor comercial vía SellerID.
type User struct {
	ID            string
	FullName      string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Phone         string
	DOI           string
	Address       *string
	Role          string
	ZoneID        *string
	SellerID      *string
	GeolocationID *string
	CreatedAt     time.Time
}

// IsClientOf indica si el usuario es cliente institucional del vendedor dado.
func (u *User) IsClientOf(sellerID string) bool {
	return u.Role == RoleInstitutional && u.SellerID != nil && *u.SellerID == sellerID
}
