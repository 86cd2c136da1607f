package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	NombreCompleto string `json:"nombre_completo"`
	Empresa        string `json:"empresa,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsuarioResponse usuario en respuestas (sin hash de contraseña).
type UsuarioResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	NombreCompleto string    `json:"nombre_completo"`
	Empresa        string    `json:"empresa,omitempty"`
	Telefono       string    `json:"telefono,omitempty"`
	LogoURL        string    `json:"logo_url,omitempty"`
	CreadoEn       time.Time `json:"creado_en"`
}

// LoginResponse token + usuario tras un login exitoso.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// UpdatePerfilRequest body para PUT /api/perfil.
type UpdatePerfilRequest struct {
	NombreCompleto string `json:"nombre_completo"`
	Empresa        string `json:"empresa"`
	Telefono       string `json:"telefono"`
}
