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

var _ repository.CotizacionRepository = (*CotizacionRepo)(nil)

// CotizacionRepo implementación del puerto CotizacionRepository sobre PostgreSQL (usable con pool o tx).
type CotizacionRepo struct {
	q Querier
}

// NewCotizacionRepository construye el adaptador de persistencia de cotizaciones. Pasar pool o tx (Querier).
func NewCotizacionRepository(q Querier) *CotizacionRepo {
	return &CotizacionRepo{q: q}
}

// Create persiste la cabecera de la cotización con sus totales congelados.
func (r *CotizacionRepo) Create(c *entity.Cotizacion) error {
	query := `
		INSERT INTO cotizaciones (id, usuario_id, cliente_nombre, cliente_email, tasa_impuesto, subtotal, impuestos, total,
			notas_visibles, temas_legales_visibles, exclusiones_visibles, firma_url, tipo_documento, estado, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.UsuarioID, c.ClienteNombre, c.ClienteEmail, c.TasaImpuesto, c.Subtotal, c.Impuestos, c.Total,
		c.NotasVisibles, c.TemasLegalesVisibles, c.ExclusionesVisibles, c.FirmaURL, c.TipoDocumento, c.Estado, c.CreadoEn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cotizacion: %w", err)
	}
	return nil
}

// CreateLineas inserta las líneas preservando el orden con posicion; la
// lectura ordena por esa columna para que el documento salga igual que se guardó.
func (r *CotizacionRepo) CreateLineas(cotizacionID string, lineas []entity.Linea) error {
	query := `
		INSERT INTO cotizacion_items (cotizacion_id, posicion, item_id, nombre, codigo_sku, cantidad, precio_unitario, precio_total, categoria, recurrencia)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, l := range lineas {
		_, err := r.q.Exec(context.Background(), query,
			cotizacionID, i, l.ItemID, l.Nombre, l.CodigoSKU, l.Cantidad,
			l.PrecioUnitario, l.PrecioTotal, string(l.Categoria), l.Recurrencia,
		)
		if err != nil {
			return fmt.Errorf("insert linea %d: %w", i, err)
		}
	}
	return nil
}

// GetByID carga cabecera y líneas. Devuelve (nil, nil) si no existe.
func (r *CotizacionRepo) GetByID(id string) (*entity.Cotizacion, error) {
	query := `
		SELECT id, usuario_id, cliente_nombre, cliente_email, tasa_impuesto, subtotal, impuestos, total,
			notas_visibles, temas_legales_visibles, exclusiones_visibles, firma_url, tipo_documento, estado, creado_en
		FROM cotizaciones WHERE id = $1`
	var c entity.Cotizacion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.UsuarioID, &c.ClienteNombre, &c.ClienteEmail, &c.TasaImpuesto, &c.Subtotal, &c.Impuestos, &c.Total,
		&c.NotasVisibles, &c.TemasLegalesVisibles, &c.ExclusionesVisibles, &c.FirmaURL, &c.TipoDocumento, &c.Estado, &c.CreadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cotizacion: %w", err)
	}

	lineas, err := r.lineasDe(id)
	if err != nil {
		return nil, err
	}
	c.Lineas = lineas
	return &c, nil
}

// ListByUsuario lista las cotizaciones del usuario, más recientes primero,
// con sus líneas cargadas.
func (r *CotizacionRepo) ListByUsuario(usuarioID string) ([]*entity.Cotizacion, error) {
	query := `
		SELECT id, usuario_id, cliente_nombre, cliente_email, tasa_impuesto, subtotal, impuestos, total,
			notas_visibles, temas_legales_visibles, exclusiones_visibles, firma_url, tipo_documento, estado, creado_en
		FROM cotizaciones WHERE usuario_id = $1 ORDER BY creado_en DESC`
	rows, err := r.q.Query(context.Background(), query, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("list cotizaciones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cotizacion
	for rows.Next() {
		var c entity.Cotizacion
		if err := rows.Scan(
			&c.ID, &c.UsuarioID, &c.ClienteNombre, &c.ClienteEmail, &c.TasaImpuesto, &c.Subtotal, &c.Impuestos, &c.Total,
			&c.NotasVisibles, &c.TemasLegalesVisibles, &c.ExclusionesVisibles, &c.FirmaURL, &c.TipoDocumento, &c.Estado, &c.CreadoEn,
		); err != nil {
			return nil, fmt.Errorf("scan cotizacion: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range out {
		lineas, err := r.lineasDe(c.ID)
		if err != nil {
			return nil, err
		}
		c.Lineas = lineas
	}
	return out, nil
}

func (r *CotizacionRepo) lineasDe(cotizacionID string) ([]entity.Linea, error) {
	query := `
		SELECT item_id, nombre, codigo_sku, cantidad, precio_unitario, precio_total, categoria, recurrencia
		FROM cotizacion_items WHERE cotizacion_id = $1 ORDER BY posicion`
	rows, err := r.q.Query(context.Background(), query, cotizacionID)
	if err != nil {
		return nil, fmt.Errorf("list lineas: %w", err)
	}
	defer rows.Close()

	var lineas []entity.Linea
	for rows.Next() {
		var l entity.Linea
		var categoria string
		if err := rows.Scan(
			&l.ItemID, &l.Nombre, &l.CodigoSKU, &l.Cantidad,
			&l.PrecioUnitario, &l.PrecioTotal, &categoria, &l.Recurrencia,
		); err != nil {
			return nil, fmt.Errorf("scan linea: %w", err)
		}
		l.Categoria = entity.Categoria(categoria)
		lineas = append(lineas, l)
	}
	return lineas, rows.Err()
}

// UpdateEstado es un UPDATE atómico de un solo statement. Sin token de
// concurrencia: el último escritor gana.
func (r *CotizacionRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE cotizaciones SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTipoDocumento escribe tipo y estado en un solo statement (la
// conversión fuerza Aprobado en la misma escritura).
func (r *CotizacionRepo) UpdateTipoDocumento(id, tipo, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE cotizaciones SET tipo_documento = $2, estado = $3 WHERE id = $1`, id, tipo, estado)
	if err != nil {
		return fmt.Errorf("update tipo documento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
