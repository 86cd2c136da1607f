package repository

import "github.com/brainware-dev/cotizador-api/internal/domain/entity"

// CotizacionRepository puerto de persistencia de cotizaciones y sus líneas.
type CotizacionRepository interface {
	// Create persiste la cabecera; las líneas se insertan con CreateLineas
	// dentro de la misma transacción (ver postgres.TxRunner).
	Create(c *entity.Cotizacion) error
	CreateLineas(cotizacionID string, lineas []entity.Linea) error

	// GetByID carga cabecera y líneas en orden de inserción.
	// Devuelve (nil, nil) si no existe.
	GetByID(id string) (*entity.Cotizacion, error)

	// ListByUsuario lista por fecha de creación descendente.
	ListByUsuario(usuarioID string) ([]*entity.Cotizacion, error)

	// UpdateEstado y UpdateTipoDocumento son UPDATEs atómicos de un solo
	// statement. No hay token de concurrencia: el último escritor gana.
	UpdateEstado(id, estado string) error
	UpdateTipoDocumento(id, tipo, estado string) error
}
