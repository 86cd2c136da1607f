package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest body para crear o actualizar un ítem del catálogo.
type ItemRequest struct {
	Nombre        string          `json:"nombre"`
	CodigoSKU     string          `json:"codigo_sku,omitempty"`
	Descripcion   string          `json:"descripcion,omitempty"`
	PrecioBase    decimal.Decimal `json:"precio_base"`
	Categoria     string          `json:"categoria"`
	Recurrencia   string          `json:"recurrencia,omitempty"`
	NotasInternas string          `json:"notas_internas,omitempty"`
}

// ItemResponse ítem del catálogo en respuestas.
type ItemResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	CodigoSKU     string          `json:"codigo_sku,omitempty"`
	Descripcion   string          `json:"descripcion,omitempty"`
	PrecioBase    decimal.Decimal `json:"precio_base"`
	Categoria     string          `json:"categoria"`
	Recurrencia   string          `json:"recurrencia,omitempty"`
	NotasInternas string          `json:"notas_internas,omitempty"`
	CreadoEn      time.Time       `json:"creado_en"`
}
