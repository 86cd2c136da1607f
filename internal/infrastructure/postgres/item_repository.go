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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia del catálogo. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem del catálogo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, usuario_id, nombre, codigo_sku, descripcion, precio_base, categoria, recurrencia, notas_internas, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.UsuarioID, item.Nombre, item.CodigoSKU, item.Descripcion,
		item.PrecioBase, string(item.Categoria), item.Recurrencia, item.NotasInternas, item.CreadoEn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `
		SELECT id, usuario_id, nombre, codigo_sku, descripcion, precio_base, categoria, recurrencia, notas_internas, creado_en
		FROM items WHERE id = $1`
	var it entity.Item
	var categoria string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.UsuarioID, &it.Nombre, &it.CodigoSKU, &it.Descripcion,
		&it.PrecioBase, &categoria, &it.Recurrencia, &it.NotasInternas, &it.CreadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	it.Categoria = entity.Categoria(categoria)
	return &it, nil
}

// ListByUsuario lista el catálogo completo del usuario, alfabético por nombre.
func (r *ItemRepo) ListByUsuario(usuarioID string) ([]*entity.Item, error) {
	query := `
		SELECT id, usuario_id, nombre, codigo_sku, descripcion, precio_base, categoria, recurrencia, notas_internas, creado_en
		FROM items WHERE usuario_id = $1 ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var it entity.Item
		var categoria string
		if err := rows.Scan(
			&it.ID, &it.UsuarioID, &it.Nombre, &it.CodigoSKU, &it.Descripcion,
			&it.PrecioBase, &categoria, &it.Recurrencia, &it.NotasInternas, &it.CreadoEn,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Categoria = entity.Categoria(categoria)
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Update reemplaza los campos editables del ítem.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET nombre = $2, codigo_sku = $3, descripcion = $4, precio_base = $5, categoria = $6, recurrencia = $7, notas_internas = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Nombre, item.CodigoSKU, item.Descripcion,
		item.PrecioBase, string(item.Categoria), item.Recurrencia, item.NotasInternas,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el ítem del catálogo. Las líneas de cotizaciones guardadas
// conservan su snapshot: borrar aquí nunca las altera.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
