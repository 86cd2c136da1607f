// Package document compone una cotización en un documento virtual de
// ancho fijo y alto variable, y lo pagina en páginas físicas.
//
// El modelo replica el lienzo de impresión original: 794 unidades de
// ancho por página de 1123 de alto (A4 a 96 dpi). Componer produce la
// secuencia fija de secciones medidas; Paginar corta el documento en
// rebanadas de alto de página, de arriba hacia abajo, sin reacomodar
// contenido (una frontera de página puede caer en mitad de una fila de
// la tabla; ese es el tradeoff aceptado de fidelidad visual).
package document

import (
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	"github.com/brainware-dev/cotizador-api/pkg/money"
)

// Dimensiones del lienzo virtual.
const (
	AnchoDocumento = 794
	AltoPagina     = 1123
)

// Etiqueta que sustituye el nombre de una línea cuyo ítem de catálogo fue
// borrado y cuya copia desnormalizada quedó vacía.
const EtiquetaItemEliminado = "(Ítem eliminado del catálogo)"

// Alturas de las secciones en unidades virtuales, medidas del lienzo
// original. Las secciones de texto crecen por línea.
const (
	altoEncabezado    = 128
	altoDePara        = 140
	altoCabeceraTabla = 42
	altoFila          = 46
	altoFilaConSKU    = 60
	altoResumenBase   = 76 // subtotal + total
	altoFilaImpuestos = 26 // solo cuando impuestos > 0
	altoBloqueBase    = 66 // título + padding de un bloque de texto
	altoLineaTexto    = 18
	altoFirma         = 168
	altoPie           = 120
)

// TipoSeccion identifica cada sección del documento en su orden fijo.
type TipoSeccion string

const (
	SeccionEncabezado  TipoSeccion = "encabezado"
	SeccionDePara      TipoSeccion = "de_para"
	SeccionTabla       TipoSeccion = "tabla"
	SeccionResumen     TipoSeccion = "resumen"
	SeccionNotas       TipoSeccion = "notas"
	SeccionLegales     TipoSeccion = "temas_legales"
	SeccionExclusiones TipoSeccion = "exclusiones"
	SeccionFirma       TipoSeccion = "firma"
	SeccionPie         TipoSeccion = "pie"
)

// Emisor es el snapshot del perfil del usuario resuelto al momento del
// render; no se guarda en la cotización.
type Emisor struct {
	Nombre  string
	Empresa string
	Email   string
	LogoURL string
}

// Fila es una fila ya formateada de la tabla de ítems.
type Fila struct {
	Descripcion    string
	CodigoSKU      string
	Recurrencia    string
	Cantidad       int
	PrecioUnitario string
	PrecioTotal    string
}

// Seccion es un bloque medido del documento. Solo los campos relevantes
// a su tipo están poblados.
type Seccion struct {
	Tipo   TipoSeccion
	Alto   int
	Titulo string
	Texto  string
	Filas  []Fila
}

// Documento es el artefacto continuo de ancho fijo y alto variable que
// consume el paginador y el generador de PDF.
type Documento struct {
	Ancho int
	Alto  int

	Ref          string // referencia corta: 8 chars del ID en mayúsculas
	TituloDoc    string // COTIZACIÓN | CUENTA DE COBRO | FACTURA PROFORMA
	Fecha        string
	Emisor       Emisor
	ClienteNombre string
	ClienteEmail  string
	FirmaURL      string

	Subtotal  string
	Impuestos string // vacío cuando no aplica
	Total     string

	Secciones []Seccion
}

// tituloPorTipo traduce el tipo de documento persistido al título impreso.
func tituloPorTipo(tipo string) string {
	switch tipo {
	case entity.TipoCuentaCobro:
		return "CUENTA DE COBRO"
	case entity.TipoFacturaProforma:
		return "FACTURA PROFORMA"
	default:
		return "COTIZACIÓN"
	}
}

// contarLineas cuenta líneas de un bloque de texto para medir su alto.
func contarLineas(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Componer construye el documento virtual a partir de una cotización y el
// snapshot del emisor. Determinista: el mismo agregado produce siempre el
// mismo documento (mismas secciones, mismas alturas).
//
// Orden fijo de secciones: encabezado, de/para, tabla, resumen, bloques
// opcionales (notas, temas legales, exclusiones), firma, pie. Cada bloque
// opcional aparece solo si su campo no es nulo.
func Componer(c *entity.Cotizacion, emisor Emisor) *Documento {
	doc := &Documento{
		Ancho:         AnchoDocumento,
		Ref:           c.ShortRef(),
		TituloDoc:     tituloPorTipo(c.TipoDocumento),
		Fecha:         money.FormatearFechaLarga(c.CreadoEn),
		Emisor:        emisor,
		ClienteNombre: c.ClienteNombre,
		ClienteEmail:  c.ClienteEmail,
		Subtotal:      money.FormatearCOP(c.Subtotal),
		Total:         money.FormatearCOP(c.Total),
	}
	if c.Impuestos.IsPositive() {
		doc.Impuestos = money.FormatearCOP(c.Impuestos)
	}
	if c.FirmaURL != nil {
		doc.FirmaURL = *c.FirmaURL
	}

	doc.Secciones = append(doc.Secciones,
		Seccion{Tipo: SeccionEncabezado, Alto: altoEncabezado},
		Seccion{Tipo: SeccionDePara, Alto: altoDePara},
	)

	// Tabla: todas las líneas se listan, incluidas las de costo adicional
	// que no suman al total (transparencia hacia el cliente).
	tabla := Seccion{Tipo: SeccionTabla, Alto: altoCabeceraTabla}
	for _, l := range c.Lineas {
		nombre := l.Nombre
		if nombre == "" {
			nombre = EtiquetaItemEliminado
		}
		fila := Fila{
			Descripcion:    nombre,
			CodigoSKU:      l.CodigoSKU,
			Recurrencia:    l.Recurrencia,
			Cantidad:       l.Cantidad,
			PrecioUnitario: money.FormatearCOP(l.PrecioUnitario),
			PrecioTotal:    money.FormatearCOP(l.PrecioTotal),
		}
		if fila.CodigoSKU != "" {
			tabla.Alto += altoFilaConSKU
		} else {
			tabla.Alto += altoFila
		}
		tabla.Filas = append(tabla.Filas, fila)
	}
	doc.Secciones = append(doc.Secciones, tabla)

	resumen := Seccion{Tipo: SeccionResumen, Alto: altoResumenBase}
	if doc.Impuestos != "" {
		resumen.Alto += altoFilaImpuestos
	}
	doc.Secciones = append(doc.Secciones, resumen)

	doc.agregarBloque(SeccionNotas, "NOTAS", c.NotasVisibles)
	doc.agregarBloque(SeccionLegales, "TÉRMINOS LEGALES", c.TemasLegalesVisibles)
	doc.agregarBloque(SeccionExclusiones, "EXCLUSIONES", c.ExclusionesVisibles)

	if doc.FirmaURL != "" {
		doc.Secciones = append(doc.Secciones, Seccion{Tipo: SeccionFirma, Alto: altoFirma})
	}
	doc.Secciones = append(doc.Secciones, Seccion{Tipo: SeccionPie, Alto: altoPie})

	for _, s := range doc.Secciones {
		doc.Alto += s.Alto
	}
	return doc
}

func (d *Documento) agregarBloque(tipo TipoSeccion, titulo string, texto *string) {
	if texto == nil || *texto == "" {
		return
	}
	d.Secciones = append(d.Secciones, Seccion{
		Tipo:   tipo,
		Alto:   altoBloqueBase + contarLineas(*texto)*altoLineaTexto,
		Titulo: titulo,
		Texto:  *texto,
	})
}
