package quote_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/internal/domain/quote"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de totales.
//
// La regla central: las líneas "Costo adicional" aparecen en la tabla del
// documento pero jamás suman al subtotal ni generan impuestos. Equivocarse
// aquí o esconde costos legítimos de terceros o infla lo que el emisor
// aparenta cobrar; por eso los escenarios de abajo fijan los montos exactos.
// ──────────────────────────────────────────────────────────────────────────────

func linea(categoria entity.Categoria, precioTotal int64) entity.Linea {
	return entity.Linea{
		Nombre:      "Servicio de prueba",
		Cantidad:    1,
		Categoria:   categoria,
		PrecioTotal: decimal.NewFromInt(precioTotal),
	}
}

// Escenario A del flujo completo: ítem de 50.000 × 3 con IVA 19%.
func TestCalcularTotales_EscenarioPagoUnicoConImpuesto(t *testing.T) {
	item := &entity.Item{
		ID:         "item-1",
		Nombre:     "Diseño web",
		PrecioBase: decimal.NewFromInt(50_000),
		Categoria:  entity.CategoriaPagoUnico,
	}
	l := entity.NuevaLinea(item, 3)
	require.True(t, l.PrecioTotal.Equal(decimal.NewFromInt(150_000)),
		"el precio total de la línea debe ser unitario × cantidad")

	tot := quote.CalcularTotales([]entity.Linea{l}, decimal.NewFromInt(19))

	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(150_000)), "subtotal: %s", tot.Subtotal)
	assert.True(t, tot.Impuestos.Equal(decimal.NewFromInt(28_500)), "impuestos: %s", tot.Impuestos)
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(178_500)), "total: %s", tot.Total)
}

// Escenario B: el costo adicional se excluye del subtotal pero la línea existe.
func TestCalcularTotales_CostoAdicionalExcluido(t *testing.T) {
	lineas := []entity.Linea{
		linea(entity.CategoriaPagoUnico, 100_000),
		linea(entity.CategoriaCostoAdicional, 20_000),
	}

	tot := quote.CalcularTotales(lineas, decimal.Zero)

	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(100_000)),
		"el costo adicional no debe sumar al subtotal")
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(100_000)))
	assert.Len(t, lineas, 2, "ambas líneas siguen presentes para la tabla del documento")
}

func TestCalcularTotales_RecurrenteIncluido(t *testing.T) {
	lineas := []entity.Linea{
		linea(entity.CategoriaPagoRecurrente, 80_000),
	}
	tot := quote.CalcularTotales(lineas, decimal.NewFromInt(19))
	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(80_000)),
		"los pagos recurrentes sí suman al subtotal")
}

// Invariante: total == subtotal + impuestos para cualquier combinación.
func TestCalcularTotales_InvarianteTotal(t *testing.T) {
	casos := []struct {
		nombre string
		lineas []entity.Linea
		tasa   decimal.Decimal
	}{
		{"sin líneas", nil, decimal.NewFromInt(19)},
		{"solo costo adicional", []entity.Linea{linea(entity.CategoriaCostoAdicional, 50_000)}, decimal.NewFromInt(19)},
		{"tasa con decimales", []entity.Linea{linea(entity.CategoriaPagoUnico, 33_333)}, decimal.NewFromFloat(7.5)},
		{"tasa mayor a 100", []entity.Linea{linea(entity.CategoriaPagoUnico, 10_000)}, decimal.NewFromInt(150)},
		{"mezcla", []entity.Linea{
			linea(entity.CategoriaPagoUnico, 100_000),
			linea(entity.CategoriaPagoRecurrente, 45_000),
			linea(entity.CategoriaCostoAdicional, 99_999),
		}, decimal.NewFromInt(19)},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			tot := quote.CalcularTotales(c.lineas, c.tasa)
			assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.Impuestos)),
				"total (%s) debe ser subtotal (%s) + impuestos (%s)",
				tot.Total, tot.Subtotal, tot.Impuestos)
		})
	}
}

func TestCalcularTotales_TasaNegativaSeClampa(t *testing.T) {
	tot := quote.CalcularTotales([]entity.Linea{linea(entity.CategoriaPagoUnico, 10_000)}, decimal.NewFromInt(-5))
	assert.True(t, tot.Impuestos.IsZero(), "tasa negativa se clampa a 0")
	assert.True(t, tot.Total.Equal(tot.Subtotal))
	// La tasa que sale en el resumen es la clampada, no la solicitada:
	// es la que se persiste junto a los montos y debe ser coherente con
	// el impuesto calculado.
	assert.True(t, tot.TasaImpuesto.IsZero(), "la tasa persistida debe ser la clampada: %s", tot.TasaImpuesto)
}

func TestCalcularTotales_TasaAplicadaEnElResumen(t *testing.T) {
	tasa := decimal.NewFromFloat(7.5)
	tot := quote.CalcularTotales([]entity.Linea{linea(entity.CategoriaPagoUnico, 10_000)}, tasa)
	assert.True(t, tot.TasaImpuesto.Equal(tasa), "una tasa válida pasa intacta al resumen")
}

// Idempotencia: función pura, el mismo input produce el mismo output.
func TestCalcularTotales_Idempotente(t *testing.T) {
	lineas := []entity.Linea{
		linea(entity.CategoriaPagoUnico, 123_456),
		linea(entity.CategoriaCostoAdicional, 7_890),
	}
	tasa := decimal.NewFromInt(19)

	t1 := quote.CalcularTotales(lineas, tasa)
	t2 := quote.CalcularTotales(lineas, tasa)

	assert.True(t, t1.Subtotal.Equal(t2.Subtotal))
	assert.True(t, t1.Impuestos.Equal(t2.Impuestos))
	assert.True(t, t1.Total.Equal(t2.Total))
}

// ── Cómputo de líneas ─────────────────────────────────────────────────────────

func TestNuevaLinea_CantidadInvalidaSeClampaAUno(t *testing.T) {
	item := &entity.Item{
		ID:         "item-1",
		Nombre:     "Hosting",
		PrecioBase: decimal.NewFromInt(25_000),
		Categoria:  entity.CategoriaPagoRecurrente,
		Recurrencia: entity.RecurrenciaMes,
	}
	for _, cantidad := range []int{0, -3} {
		l := entity.NuevaLinea(item, cantidad)
		assert.Equal(t, 1, l.Cantidad, "cantidad %d debe coercionarse a 1, no rechazarse", cantidad)
		assert.True(t, l.PrecioTotal.Equal(decimal.NewFromInt(25_000)))
	}
}

func TestLinea_RecalcularTrasEdicion(t *testing.T) {
	item := &entity.Item{ID: "item-1", Nombre: "Soporte", PrecioBase: decimal.NewFromInt(10_000), Categoria: entity.CategoriaPagoUnico}
	l := entity.NuevaLinea(item, 2)
	require.True(t, l.PrecioTotal.Equal(decimal.NewFromInt(20_000)))

	// Editar el precio unitario recalcula de inmediato.
	l.PrecioUnitario = decimal.NewFromInt(12_500)
	l.Recalcular()
	assert.True(t, l.PrecioTotal.Equal(decimal.NewFromInt(25_000)))

	// Editar la cantidad también.
	l.Cantidad = 4
	l.Recalcular()
	assert.True(t, l.PrecioTotal.Equal(decimal.NewFromInt(50_000)))
}

func TestLinea_RedondeoAUnidadDeMoneda(t *testing.T) {
	item := &entity.Item{ID: "item-1", Nombre: "Hora técnica", PrecioBase: decimal.NewFromFloat(33_333.5), Categoria: entity.CategoriaPagoUnico}
	l := entity.NuevaLinea(item, 3)
	// 33.333,5 × 3 = 100.000,5 → 100.001 (0 decimales en COP)
	assert.True(t, l.PrecioTotal.Equal(decimal.NewFromInt(100_001)),
		"el precio extendido se redondea a la unidad mínima: %s", l.PrecioTotal)
}
