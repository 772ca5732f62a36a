package dto

import "time"

// SellerCreateRequest alta de un vendedor (la contraseña se genera y se envía por correo).
type SellerCreateRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	DOI      string `json:"doi" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email,min=5,max=120"`
	Phone    string `json:"phone" validate:"required,phone"`
	ZoneID   string `json:"zone_id" validate:"required,uuid"`
}

// SellerResponse vendedor con su zona.
type SellerResponse struct {
	ID        string        `json:"id"`
	FullName  string        `json:"full_name"`
	DOI       string        `json:"doi"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	CreatedAt time.Time     `json:"created_at"`
	Zone      *ZoneResponse `json:"zone,omitempty"`
}

// SellersResponse listado de vendedores.
type SellersResponse struct {
	TotalCount int              `json:"total_count"`
	Sellers    []SellerResponse `json:"sellers"`
}
