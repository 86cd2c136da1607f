package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categoria de precio de un ítem del catálogo. Conjunto cerrado: cualquier
// decisión que dependa de la categoría (totales, render) debe hacer switch
// exhaustivo sobre estos valores.
type Categoria string

const (
	CategoriaPagoUnico      Categoria = "Pago único"
	CategoriaPagoRecurrente Categoria = "Pago recurrente"
	CategoriaCostoAdicional Categoria = "Costo adicional"
)

// Valida reporta si la categoría es una de las tres conocidas.
func (c Categoria) Valida() bool {
	switch c {
	case CategoriaPagoUnico, CategoriaPagoRecurrente, CategoriaCostoAdicional:
		return true
	}
	return false
}

// IncluidaEnSubtotal reporta si las líneas de esta categoría suman al
// subtotal. Los costos adicionales se muestran en el documento pero nunca
// se agregan: son pagos directos a terceros que el emisor no cobra.
// Una categoría desconocida queda excluida, nunca incluida por omisión.
func (c Categoria) IncluidaEnSubtotal() bool {
	switch c {
	case CategoriaPagoUnico:
		return true
	case CategoriaPagoRecurrente:
		return true
	case CategoriaCostoAdicional:
		return false
	default:
		return false
	}
}

// Recurrencias válidas para ítems de categoría "Pago recurrente".
const (
	RecurrenciaHora      = "Hora"
	RecurrenciaDia       = "Día"
	RecurrenciaMes       = "Mes"
	RecurrenciaTrimestre = "Trimestre"
	RecurrenciaSemestre  = "Semestre"
	RecurrenciaAno       = "Año"
)

// RecurrenciaValida reporta si r es una unidad de recurrencia conocida.
func RecurrenciaValida(r string) bool {
	switch r {
	case RecurrenciaHora, RecurrenciaDia, RecurrenciaMes, RecurrenciaTrimestre, RecurrenciaSemestre, RecurrenciaAno:
		return true
	}
	return false
}

// Item representa un producto o servicio vendible del catálogo del usuario.
// NotasInternas nunca se expone en documentos generados.
type Item struct {
	ID            string
	UsuarioID     string
	Nombre        string
	CodigoSKU     string // opcional
	Descripcion   string
	PrecioBase    decimal.Decimal // precio unitario base, nunca negativo
	Categoria     Categoria
	Recurrencia   string // obligatoria si Categoria = Pago recurrente, vacía en otro caso
	NotasInternas string
	CreadoEn      time.Time
}

// Normalizar aplica las políticas de coerción del catálogo: precio negativo
// se lleva a 0, la categoría desconocida cae a "Pago único" y la
// recurrencia solo sobrevive en ítems recurrentes.
func (i *Item) Normalizar() {
	if i.PrecioBase.IsNegative() {
		i.PrecioBase = decimal.Zero
	}
	if !i.Categoria.Valida() {
		i.Categoria = CategoriaPagoUnico
	}
	if i.Categoria != CategoriaPagoRecurrente {
		i.Recurrencia = ""
	} else if !RecurrenciaValida(i.Recurrencia) {
		i.Recurrencia = RecurrenciaMes
	}
}
