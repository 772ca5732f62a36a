package dto

import "time"

// ProviderCreateRequest alta de proveedor.
type ProviderCreateRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	RIT      string  `json:"rit" validate:"required,min=1,max=50"`
	City     string  `json:"city" validate:"required,min=1,max=100"`
	Country  string  `json:"country" validate:"required,min=1,max=100"`
	ImageURL *string `json:"image_url" validate:"omitempty,max=255"`
	Email    string  `json:"email" validate:"required,email,max=120"`
	Phone    string  `json:"phone" validate:"required,phone"`
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RIT       string    `json:"rit"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ProvidersResponse listado de proveedores.
type ProvidersResponse struct {
	TotalCount int                `json:"total_count"`
	Providers  []ProviderResponse `json:"providers"`
}
