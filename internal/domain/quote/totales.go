// Package quote contiene el motor financiero y la máquina de estados de
// las cotizaciones. Todo aquí son funciones puras sobre el agregado:
// nada toca I/O y el mismo input produce siempre el mismo output.
package quote

import (
	"github.com/shopspring/decimal"

	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
)

// Totales es el resumen financiero derivado de las líneas de una
// cotización. Invariante: Total = Subtotal + Impuestos, exacto al
// redondeo de la moneda. TasaImpuesto es la tasa efectivamente aplicada
// (ya clampada), que es la que se persiste junto a los montos.
type Totales struct {
	TasaImpuesto decimal.Decimal
	Subtotal     decimal.Decimal
	Impuestos    decimal.Decimal
	Total        decimal.Decimal
}

// CalcularTotales deriva subtotal, impuestos y total desde cero.
//
// Las líneas de categoría "Costo adicional" se muestran en la tabla del
// documento pero NUNCA suman al subtotal ni generan impuestos: son pagos
// que el cliente hace directo a terceros. Esa asimetría (visible pero no
// agregada) es la regla central del motor.
//
// La tasa se clampa en 0 por abajo; por arriba no se valida (ver DESIGN.md).
// Siempre se recalcula completo, nunca se parcha incrementalmente: el
// recálculo total elimina cualquier deriva entre líneas y totales.
func CalcularTotales(lineas []entity.Linea, tasaImpuesto decimal.Decimal) Totales {
	if tasaImpuesto.IsNegative() {
		tasaImpuesto = decimal.Zero
	}

	subtotal := decimal.Zero
	for _, l := range lineas {
		if l.Categoria.IncluidaEnSubtotal() {
			subtotal = subtotal.Add(l.PrecioTotal)
		}
	}

	impuestos := subtotal.Mul(tasaImpuesto).Div(decimal.NewFromInt(100)).Round(0)
	return Totales{
		TasaImpuesto: tasaImpuesto,
		Subtotal:     subtotal,
		Impuestos:    impuestos,
		Total:        subtotal.Add(impuestos),
	}
}
