package quoting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/quote"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
)

// CotizacionUseCase creación y consulta de cotizaciones.
type CotizacionUseCase struct {
	cotizacionRepo repository.CotizacionRepository
	itemRepo       repository.ItemRepository
	tx             TxRunner
}

// NewCotizacionUseCase construye el caso de uso.
func NewCotizacionUseCase(cotizacionRepo repository.CotizacionRepository, itemRepo repository.ItemRepository, tx TxRunner) *CotizacionUseCase {
	return &CotizacionUseCase{cotizacionRepo: cotizacionRepo, itemRepo: itemRepo, tx: tx}
}

// Create valida la solicitud, resuelve cada línea contra el catálogo del
// usuario, congela el snapshot (nombre, precio, categoría por línea) y
// calcula los totales en el servidor. Los totales del cliente se ignoran
// siempre: el documento guardado es la única fuente de verdad.
func (uc *CotizacionUseCase) Create(ctx context.Context, usuarioID string, req *dto.CreateCotizacionRequest) (*dto.CotizacionResponse, error) {
	if strings.TrimSpace(req.ClienteNombre) == "" || len(req.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}

	lineas := make([]entity.Linea, 0, len(req.Lineas))
	for _, lr := range req.Lineas {
		item, err := uc.itemRepo.GetByID(lr.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.UsuarioID != usuarioID {
			return nil, domain.ErrInvalidInput
		}
		l := entity.NuevaLinea(item, lr.Cantidad)
		if lr.PrecioUnitario.GreaterThan(decimal.Zero) {
			// Precio negociado para esta cotización; no toca el catálogo.
			l.PrecioUnitario = lr.PrecioUnitario
			l.Recalcular()
		}
		lineas = append(lineas, l)
	}

	totales := quote.CalcularTotales(lineas, req.TasaImpuesto)

	c := &entity.Cotizacion{
		ID:                   uuid.New().String(),
		UsuarioID:            usuarioID,
		ClienteNombre:        strings.TrimSpace(req.ClienteNombre),
		ClienteEmail:         strings.TrimSpace(req.ClienteEmail),
		Lineas:               lineas,
		TasaImpuesto:         totales.TasaImpuesto,
		Subtotal:             totales.Subtotal,
		Impuestos:            totales.Impuestos,
		Total:                totales.Total,
		NotasVisibles:        req.NotasVisibles,
		TemasLegalesVisibles: req.TemasLegalesVisibles,
		ExclusionesVisibles:  req.ExclusionesVisibles,
		FirmaURL:             req.FirmaURL,
		TipoDocumento:        entity.TipoCotizacion,
		Estado:               entity.EstadoEnProceso,
		CreadoEn:             time.Now(),
	}

	err := uc.tx.Run(ctx, func(cotizaciones repository.CotizacionRepository) error {
		if err := cotizaciones.Create(c); err != nil {
			return err
		}
		return cotizaciones.CreateLineas(c.ID, c.Lineas)
	})
	if err != nil {
		return nil, err
	}
	return ToCotizacionResponse(c), nil
}

// GetByID devuelve la cotización si existe y pertenece al usuario.
func (uc *CotizacionUseCase) GetByID(usuarioID, id string) (*dto.CotizacionResponse, error) {
	c, err := uc.cargarPropia(usuarioID, id)
	if err != nil {
		return nil, err
	}
	return ToCotizacionResponse(c), nil
}

// List lista las cotizaciones del usuario, más recientes primero.
func (uc *CotizacionUseCase) List(usuarioID string) ([]*dto.CotizacionResponse, error) {
	cs, err := uc.cotizacionRepo.ListByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CotizacionResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCotizacionResponse(c))
	}
	return out, nil
}

func (uc *CotizacionUseCase) cargarPropia(usuarioID, id string) (*entity.Cotizacion, error) {
	c, err := uc.cotizacionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.UsuarioID != usuarioID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

// ToCotizacionResponse convierte la entidad al DTO de respuesta.
func ToCotizacionResponse(c *entity.Cotizacion) *dto.CotizacionResponse {
	lineas := make([]dto.LineaResponse, 0, len(c.Lineas))
	for _, l := range c.Lineas {
		lineas = append(lineas, dto.LineaResponse{
			ItemID:         l.ItemID,
			Nombre:         l.Nombre,
			CodigoSKU:      l.CodigoSKU,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			PrecioTotal:    l.PrecioTotal,
			Categoria:      string(l.Categoria),
			Recurrencia:    l.Recurrencia,
		})
	}
	return &dto.CotizacionResponse{
		ID:                   c.ID,
		Ref:                  c.ShortRef(),
		ClienteNombre:        c.ClienteNombre,
		ClienteEmail:         c.ClienteEmail,
		Lineas:               lineas,
		TasaImpuesto:         c.TasaImpuesto,
		Subtotal:             c.Subtotal,
		Impuestos:            c.Impuestos,
		Total:                c.Total,
		NotasVisibles:        c.NotasVisibles,
		TemasLegalesVisibles: c.TemasLegalesVisibles,
		ExclusionesVisibles:  c.ExclusionesVisibles,
		FirmaURL:             c.FirmaURL,
		TipoDocumento:        c.TipoDocumento,
		Estado:               c.Estado,
		CreadoEn:             c.CreadoEn,
	}
}
