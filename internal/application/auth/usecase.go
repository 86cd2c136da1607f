package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
	"github.com/brainware-dev/cotizador-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.usuarioRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nombre := in.NombreCompleto
	if nombre == "" {
		nombre = in.Email
	}
	u := &entity.Usuario{
		ID:             uuid.New().String(),
		Email:          in.Email,
		PasswordHash:   string(hash),
		NombreCompleto: nombre,
		Empresa:        in.Empresa,
		CreadoEn:       now,
		ActualizadoEn:  now,
	}
	if err := uc.usuarioRepo.Create(u); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *toUsuarioResponse(u),
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
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
