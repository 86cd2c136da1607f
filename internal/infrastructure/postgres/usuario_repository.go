package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia de usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const columnasUsuario = "id, email, password_hash, nombre_completo, empresa, telefono, logo_url, creado_en, actualizado_en"

// Create registra un usuario. Email duplicado devuelve ErrEmailAlreadyExists.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + columnasUsuario + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.PasswordHash, u.NombreCompleto, u.Empresa, u.Telefono, u.LogoURL, u.CreadoEn, u.ActualizadoEn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.getBy("id", id)
}

// GetByEmail obtiene un usuario por email. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return r.getBy("email", email)
}

func (r *UsuarioRepo) getBy(columna, valor string) (*entity.Usuario, error) {
	query := `SELECT ` + columnasUsuario + ` FROM usuarios WHERE ` + columna + ` = $1`
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, valor).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.NombreCompleto, &u.Empresa, &u.Telefono, &u.LogoURL, &u.CreadoEn, &u.ActualizadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// UpdatePerfil actualiza los campos editables del perfil.
func (r *UsuarioRepo) UpdatePerfil(u *entity.Usuario) error {
	query := `
		UPDATE usuarios
		SET nombre_completo = $2, empresa = $3, telefono = $4, actualizado_en = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, u.ID, u.NombreCompleto, u.Empresa, u.Telefono, u.ActualizadoEn)
	if err != nil {
		return fmt.Errorf("update perfil: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateLogoURL guarda la URL pública del logo subido.
func (r *UsuarioRepo) UpdateLogoURL(id, logoURL string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET logo_url = $2, actualizado_en = now() WHERE id = $1`, id, logoURL)
	if err != nil {
		return fmt.Errorf("update logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
