package repository

import "github.com/brainware-dev/cotizador-api/internal/domain/entity"

// UsuarioRepository puerto de persistencia de usuarios (emisores).
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	UpdatePerfil(u *entity.Usuario) error
	UpdateLogoURL(id, logoURL string) error
}
