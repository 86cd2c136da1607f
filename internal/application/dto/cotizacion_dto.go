package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaRequest línea al crear una cotización. PrecioTotal no se acepta:
// siempre se deriva de unitario × cantidad en el servidor.
type LineaRequest struct {
	ItemID         string          `json:"item_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"` // 0 = usar el precio base del catálogo
}

// CreateCotizacionRequest body para POST /api/cotizaciones.
type CreateCotizacionRequest struct {
	ClienteNombre        string          `json:"cliente_nombre"`
	ClienteEmail         string          `json:"cliente_email,omitempty"`
	TasaImpuesto         decimal.Decimal `json:"tasa_impuesto"`
	Lineas               []LineaRequest  `json:"lineas"`
	NotasVisibles        *string         `json:"notas_visibles,omitempty"`
	TemasLegalesVisibles *string         `json:"temas_legales_visibles,omitempty"`
	ExclusionesVisibles  *string         `json:"exclusiones_visibles,omitempty"`
	FirmaURL             *string         `json:"firma_url,omitempty"`
}

// LineaResponse línea de detalle en respuestas.
type LineaResponse struct {
	ItemID         string          `json:"item_id"`
	Nombre         string          `json:"nombre"`
	CodigoSKU      string          `json:"codigo_sku,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
	Categoria      string          `json:"categoria"`
	Recurrencia    string          `json:"recurrencia,omitempty"`
}

// CotizacionResponse cotización completa en respuestas.
type CotizacionResponse struct {
	ID                   string          `json:"id"`
	Ref                  string          `json:"ref"` // primeros 8 chars del ID, mayúsculas
	ClienteNombre        string          `json:"cliente_nombre"`
	ClienteEmail         string          `json:"cliente_email,omitempty"`
	Lineas               []LineaResponse `json:"lineas"`
	TasaImpuesto         decimal.Decimal `json:"tasa_impuesto"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	Impuestos            decimal.Decimal `json:"impuestos"`
	Total                decimal.Decimal `json:"total"`
	NotasVisibles        *string         `json:"notas_visibles,omitempty"`
	TemasLegalesVisibles *string         `json:"temas_legales_visibles,omitempty"`
	ExclusionesVisibles  *string         `json:"exclusiones_visibles,omitempty"`
	FirmaURL             *string         `json:"firma_url,omitempty"`
	TipoDocumento        string          `json:"tipo_documento"`
	Estado               string          `json:"estado"`
	CreadoEn             time.Time       `json:"creado_en"`
	Paginas              int             `json:"paginas,omitempty"` // páginas del documento renderizado
}

// UpdateEstadoRequest body para PATCH /api/cotizaciones/:id/estado.
type UpdateEstadoRequest struct {
	Estado string `json:"estado"`
}

// ConvertirRequest body para POST /api/cotizaciones/:id/convertir.
type ConvertirRequest struct {
	TipoDocumento string `json:"tipo_documento"` // cuenta_cobro | factura_proforma
}

// EnviarRequest body para POST /api/cotizaciones/:id/enviar.
type EnviarRequest struct {
	Para   string `json:"para,omitempty"`   // por defecto el email del cliente
	Asunto string `json:"asunto,omitempty"` // por defecto "Nueva Cotización"
	URL    string `json:"url"`              // enlace al documento
}

// EnviarResponse id de entrega devuelto por el proveedor de correo.
type EnviarResponse struct {
	DeliveryID string `json:"delivery_id"`
}
