package quoting

import (
	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/domain"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/quote"
)

// EstadoUseCase movimientos de estado: arrastres del tablero kanban,
// conversión de documento y aperturas reportadas por el webhook de correo.
type EstadoUseCase struct {
	cotizaciones *CotizacionUseCase
}

// NewEstadoUseCase construye el caso de uso.
func NewEstadoUseCase(cotizaciones *CotizacionUseCase) *EstadoUseCase {
	return &EstadoUseCase{cotizaciones: cotizaciones}
}

// CambiarEstado mueve la cotización a cualquier estado válido del pipeline.
// Los movimientos manuales del tablero son libres; solo se rechazan estados
// desconocidos. Sin token de concurrencia: el último escritor gana.
func (uc *EstadoUseCase) CambiarEstado(usuarioID, id, estado string) (*dto.CotizacionResponse, error) {
	if !quote.CambioManualValido(estado) {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.cotizaciones.cargarPropia(usuarioID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.cotizaciones.cotizacionRepo.UpdateEstado(id, estado); err != nil {
		return nil, err
	}
	c.Estado = estado
	return ToCotizacionResponse(c), nil
}

// Convertir cambia el tipo de documento a cuenta de cobro o factura
// proforma y fuerza el estado a Aprobado en la misma escritura. La
// conversión es de una sola vía: nunca se vuelve a "cotizacion".
func (uc *EstadoUseCase) Convertir(usuarioID, id, tipo string) (*dto.CotizacionResponse, error) {
	if !entity.TipoConversionValido(tipo) {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.cotizaciones.cargarPropia(usuarioID, id)
	if err != nil {
		return nil, err
	}
	estado := quote.EstadoTrasConversion()
	if err := uc.cotizaciones.cotizacionRepo.UpdateTipoDocumento(id, tipo, estado); err != nil {
		return nil, err
	}
	c.TipoDocumento = tipo
	c.Estado = estado
	return ToCotizacionResponse(c), nil
}

// RegistrarApertura aplica el avance monótono por apertura de correo. Solo
// Enviado avanza a Tramitando; cualquier otro estado queda intacto, así un
// cliente que reabre el correo semanas después no degrada un Pagado o un
// Ganado. Sin dueño: el webhook llega sin sesión, la cotización se busca
// por el ID que viajó como etiqueta del correo.
func (uc *EstadoUseCase) RegistrarApertura(cotizacionID string) (cambio bool, err error) {
	c, err := uc.cotizaciones.cotizacionRepo.GetByID(cotizacionID)
	if err != nil {
		return false, err
	}
	if c == nil {
		// ID desconocido o etiqueta corrupta; el webhook se acepta igual
		// para que el proveedor no reintente.
		return false, nil
	}
	nuevo, cambio := quote.AplicarApertura(c.Estado)
	if !cambio {
		return false, nil
	}
	if err := uc.cotizaciones.cotizacionRepo.UpdateEstado(cotizacionID, nuevo); err != nil {
		return false, err
	}
	return true, nil
}
