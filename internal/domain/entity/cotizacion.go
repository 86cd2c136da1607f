package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pipeline de una cotización (tablero kanban).
const (
	EstadoEnProceso  = "En proceso" // estado inicial al crear
	EstadoEnviado    = "Enviado"    // el usuario la envió al cliente
	EstadoTramitando = "Tramitando" // el cliente abrió el correo (webhook)
	EstadoPagado     = "Pagado"
	EstadoAprobado   = "Aprobado" // forzado al convertir el documento
	EstadoGanado     = "Ganado"
	EstadoPerdido    = "Perdido"
)

// EstadoValido reporta si s es un estado conocido del pipeline.
func EstadoValido(s string) bool {
	switch s {
	case EstadoEnProceso, EstadoEnviado, EstadoTramitando, EstadoPagado, EstadoAprobado, EstadoGanado, EstadoPerdido:
		return true
	}
	return false
}

// Tipos de documento. Una cotización nace como "cotizacion" y puede
// convertirse (una sola vía) a cuenta de cobro o factura proforma.
const (
	TipoCotizacion      = "cotizacion"
	TipoCuentaCobro     = "cuenta_cobro"
	TipoFacturaProforma = "factura_proforma"
)

// TipoConversionValido reporta si t es un destino de conversión permitido.
// "cotizacion" no es destino: la conversión nunca es reversible.
func TipoConversionValido(t string) bool {
	return t == TipoCuentaCobro || t == TipoFacturaProforma
}

// Linea es una línea de detalle de una cotización. Referencia débil al
// ítem del catálogo: Nombre, CodigoSKU, PrecioUnitario, Categoria y
// Recurrencia se copian al agregarla, de modo que cambios o borrados
// posteriores del catálogo no alteran cotizaciones guardadas.
type Linea struct {
	ItemID         string
	Nombre         string
	CodigoSKU      string
	Cantidad       int // siempre >= 1
	PrecioUnitario decimal.Decimal
	PrecioTotal    decimal.Decimal // siempre derivado, nunca editable
	Categoria      Categoria
	Recurrencia    string
}

// NuevaLinea construye una línea a partir de un ítem del catálogo.
// Cantidad fuera de rango se coerciona a 1: la política de entrada es no
// bloquear nunca, siempre llevar a un estado válido.
func NuevaLinea(item *Item, cantidad int) Linea {
	l := Linea{
		ItemID:         item.ID,
		Nombre:         item.Nombre,
		CodigoSKU:      item.CodigoSKU,
		Cantidad:       cantidad,
		PrecioUnitario: item.PrecioBase,
		Categoria:      item.Categoria,
		Recurrencia:    item.Recurrencia,
	}
	l.Recalcular()
	return l
}

// Recalcular coerciona la cantidad y deriva PrecioTotal = unitario × cantidad
// redondeado a la unidad mínima de la moneda (COP: 0 decimales). Debe
// llamarse tras cualquier edición de Cantidad o PrecioUnitario.
func (l *Linea) Recalcular() {
	if l.Cantidad < 1 {
		l.Cantidad = 1
	}
	l.PrecioTotal = l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad))).Round(0)
}

// Cotizacion es la raíz del agregado: cliente, líneas, totales congelados
// al guardar y estado del pipeline. Inmutable tras la creación salvo
// Estado y TipoDocumento.
type Cotizacion struct {
	ID                   string
	UsuarioID            string
	ClienteNombre        string          // obligatorio, no vacío
	ClienteEmail         string          // opcional
	Lineas               []Linea         // el orden de inserción es el orden de despliegue
	TasaImpuesto         decimal.Decimal // porcentaje, clamp inferior en 0
	Subtotal             decimal.Decimal // derivados; nunca entrada del usuario
	Impuestos            decimal.Decimal
	Total                decimal.Decimal
	NotasVisibles        *string
	TemasLegalesVisibles *string
	ExclusionesVisibles  *string
	FirmaURL             *string
	TipoDocumento        string
	Estado               string
	CreadoEn             time.Time
}

// ShortRef devuelve la referencia corta visible para humanos: los primeros
// 8 caracteres del ID en mayúsculas. Determinista e independiente del
// locale; se usa en encabezados y nombres de archivo.
func (c *Cotizacion) ShortRef() string {
	return ShortRef(c.ID)
}

// ShortRef calcula la referencia corta de un ID de cotización.
func ShortRef(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
