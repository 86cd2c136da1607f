package dto

import "github.com/shopspring/decimal"

// AICotizarRequest body para POST /api/ai/cotizar.
type AICotizarRequest struct {
	Mensaje string `json:"mensaje"`
}

// ItemCatalogoAI resumen del catálogo que se entrega al modelo.
type ItemCatalogoAI struct {
	ID         string          `json:"id"`
	Nombre     string          `json:"nombre"`
	CodigoSKU  string          `json:"codigo_sku,omitempty"`
	PrecioBase decimal.Decimal `json:"precio_base"`
}

// AIItemPropuesto línea propuesta por el asistente. ItemID siempre debe
// existir en el catálogo entregado (mundo cerrado).
type AIItemPropuesto struct {
	ItemID         string          `json:"item_id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// AICotizarResponse borrador estructurado devuelto al formulario.
type AICotizarResponse struct {
	ClienteNombre  string            `json:"cliente_nombre"`
	ClienteEmail   string            `json:"cliente_email"`
	Items          []AIItemPropuesto `json:"items"`
	NoEncontrados  []string          `json:"no_encontrados"`
	NotasSugeridas string            `json:"notas_sugeridas"`
}

// AIEscribirRequest body para POST /api/ai/escribir.
type AIEscribirRequest struct {
	Texto    string `json:"texto"`
	Contexto string `json:"contexto,omitempty"` // etiqueta corta: "notas", "términos legales", ...
}

// AIEscribirResponse texto mejorado.
type AIEscribirResponse struct {
	Resultado string `json:"resultado"`
}
