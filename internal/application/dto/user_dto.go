package dto

import "time"

// UserCreateRequest entrada de registro público (password en texto, se hashea en use case).
type UserCreateRequest struct {
	Email    string `json:"email" validate:"required,email,min=5,max=120"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	DOI      string `json:"doi" validate:"required,min=1,max=50"`
	Address  string `json:"address" validate:"required,min=1,max=255"`
	Phone    string `json:"phone" validate:"required,phone"`
	Role     string `json:"role" validate:"required,oneof=institutional commercial"`
	Password string `json:"password" validate:"required,min=6,max=12"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	DOI       string    `json:"doi"`
	Address   *string   `json:"address,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest primer paso del login: credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,min=5,max=120"`
	Password string `json:"password" validate:"required,min=6,max=12"`
}

// LoginResponse confirma el envío del OTP.
type LoginResponse struct {
	Message              string `json:"message"`
	OTPExpirationMinutes int    `json:"otp_expiration_minutes"`
}

// VerifyOTPRequest segundo paso del login.
type VerifyOTPRequest struct {
	Email   string `json:"email" validate:"required,email,min=5,max=120"`
	OTPCode string `json:"otp_code" validate:"required,len=6,numeric"`
}

// VerifyOTPResponse token de acceso emitido tras validar el OTP.
type VerifyOTPResponse struct {
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// EndpointPermission una ruta registrada y los roles que pueden usarla (vacío = pública).
type EndpointPermission struct {
	Path         string   `json:"path"`
	Methods      []string `json:"methods"`
	AllowedRoles []string `json:"allowed_roles"`
}

// PermissionsResponse usuario actual más las rutas que puede consumir.
type PermissionsResponse struct {
	User      UserResponse         `json:"user"`
	Endpoints []EndpointPermission `json:"endpoints"`
}

// ClientsResponse clientes asignados a un vendedor.
type ClientsResponse struct {
	TotalCount int            `json:"total_count"`
	Clients    []UserResponse `json:"clients"`
}
