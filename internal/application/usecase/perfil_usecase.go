package usecase

import (
	"time"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
)

// PerfilUseCase lectura y edición del perfil del emisor (nombre, empresa,
// teléfono, logo). El perfil se resuelve al renderizar documentos.
type PerfilUseCase struct {
	usuarioRepo repository.UsuarioRepository
}

// NewPerfilUseCase construye el caso de uso.
func NewPerfilUseCase(usuarioRepo repository.UsuarioRepository) *PerfilUseCase {
	return &PerfilUseCase{usuarioRepo: usuarioRepo}
}

// Get devuelve el perfil del usuario autenticado.
func (uc *PerfilUseCase) Get(usuarioID string) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarioRepo.GetByID(usuarioID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUsuarioResponse(u), nil
}

// Update edita los campos del perfil (no el email ni la contraseña).
func (uc *PerfilUseCase) Update(usuarioID string, in dto.UpdatePerfilRequest) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarioRepo.GetByID(usuarioID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.NombreCompleto = in.NombreCompleto
	u.Empresa = in.Empresa
	u.Telefono = in.Telefono
	u.ActualizadoEn = time.Now()
	if err := uc.usuarioRepo.UpdatePerfil(u); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// SetLogoURL guarda la URL pública del logo recién subido.
func (uc *PerfilUseCase) SetLogoURL(usuarioID, logoURL string) error {
	return uc.usuarioRepo.UpdateLogoURL(usuarioID, logoURL)
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:             u.ID,
		Email:          u.Email,
		NombreCompleto: u.NombreCompleto,
		Empresa:        u.Empresa,
		Telefono:       u.Telefono,
		LogoURL:        u.LogoURL,
		CreadoEn:       u.CreadoEn,
	}
}
