// Package money formatea montos y fechas para los documentos generados.
// Locale fijo del despliegue: es-CO, pesos colombianos, 0 decimales.
package money

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// FormatearCOP formatea un monto en pesos colombianos: sin decimales,
// miles agrupados según es-CO y símbolo antepuesto. Ej: 1500000 → "$ 1.500.000".
func FormatearCOP(v decimal.Decimal) string {
	return "$ " + printer.Sprintf("%v", number.Decimal(v.Round(0).IntPart()))
}

var meses = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatearFechaLarga devuelve la fecha con nombre de mes largo en español.
// Ej: "2 de enero de 2026".
func FormatearFechaLarga(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), meses[t.Month()-1], t.Year())
}
