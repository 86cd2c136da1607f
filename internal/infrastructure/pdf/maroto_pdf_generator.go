// Package pdf renderiza el documento de cotización con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor / Empresa  │  COTIZACIÓN #REF + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DE: emisor + email        │  PARA: cliente + email          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | P.Unit | Total                  │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                       │
//	│  BLOQUES: Notas / Términos legales / Exclusiones             │
//	│  FIRMA + PIE                                                 │
//	└─────────────────────────────────────────────────────────────┘
//
// El documento virtual de ancho fijo (document.Componer) define el orden y
// contenido de las secciones; aquí las filas fluyen y Maroto corta páginas
// entre filas, nunca por la mitad de una.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/brainware-dev/cotizador-api/internal/application/quoting"
	"github.com/brainware-dev/cotizador-api/internal/domain/document"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 17, Green: 17, Blue: 17}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Verificar en tiempo de compilación que cumple el puerto.
var _ quoting.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa quoting.PDFGenerator usando Maroto v2.
// descargarImagen trae la firma o el logo por URL; puede ser nil para
// omitir imágenes remotas (tests, entornos sin salida de red).
type MarotoPDFGenerator struct {
	descargarImagen func(url string) ([]byte, error)
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(descargarImagen func(url string) ([]byte, error)) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{descargarImagen: descargarImagen}
}

// Generar renderiza el documento compuesto y devuelve los bytes del PDF.
func (g *MarotoPDFGenerator) Generar(doc *document.Documento) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.TituloDoc+" "+doc.Ref, true).
		WithAuthor(doc.Emisor.Nombre, true).
		Build()

	m := maroto.New(cfg)

	for _, s := range doc.Secciones {
		switch s.Tipo {
		case document.SeccionEncabezado:
			m.AddRows(g.encabezadoRow(doc))
			m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
		case document.SeccionDePara:
			m.AddRows(deParaRow(doc))
			m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		case document.SeccionTabla:
			m.AddRows(tablaCabeceraRow())
			for _, r := range tablaFilasRows(s.Filas) {
				m.AddRows(r)
			}
		case document.SeccionResumen:
			m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
			m.AddRows(resumenRow(doc))
		case document.SeccionNotas, document.SeccionLegales, document.SeccionExclusiones:
			for _, r := range bloqueRows(s) {
				m.AddRows(r)
			}
		case document.SeccionFirma:
			for _, r := range g.firmaRows(doc.FirmaURL) {
				m.AddRows(r)
			}
		case document.SeccionPie:
			m.AddRows(line.NewRow(3))
			m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
			m.AddRows(pieRow(doc))
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// encabezadoRow: emisor (izq) y título + referencia + fecha (der).
func (g *MarotoPDFGenerator) encabezadoRow(doc *document.Documento) core.Row {
	izquierda := col.New(7)
	if logo := g.bajar(doc.Emisor.LogoURL); logo != nil {
		izquierda.Add(image.NewFromBytes(logo, extension.Png, props.Rect{Percent: 60}))
	} else {
		izquierda.Add(
			text.New(nonEmpty(doc.Emisor.Empresa, doc.Emisor.Nombre), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Emisor.Email, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		)
	}

	return row.New(18).Add(
		izquierda,
		col.New(5).Add(
			text.New(doc.TituloDoc, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("#"+doc.Ref, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
			text.New(doc.Fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// deParaRow: emisor y cliente lado a lado.
func deParaRow(doc *document.Documento) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("DE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(nonEmpty(doc.Emisor.Nombre, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(doc.Emisor.Email, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("PARA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(doc.ClienteNombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(doc.ClienteEmail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tablaCabeceraRow: cabecera de la tabla de ítems.
func tablaCabeceraRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Descripción", 6, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tablaFilasRows: una fila por línea; el SKU y la recurrencia van como
// subtítulo bajo la descripción cuando existen.
func tablaFilasRows(filas []document.Fila) []core.Row {
	result := make([]core.Row, 0, len(filas))
	for _, f := range filas {
		alto := float64(7)
		sub := ""
		if f.CodigoSKU != "" {
			sub = f.CodigoSKU
			alto = 10
		}
		if f.Recurrencia != "" {
			if sub != "" {
				sub += "  ·  por " + f.Recurrencia
			} else {
				sub = "por " + f.Recurrencia
			}
			alto = 10
		}

		desc := col.New(6).Add(text.New(f.Descripcion, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		}))
		if sub != "" {
			desc.Add(text.New(sub, props.Text{
				Size: 7, Align: align.Left, Top: 5.5, Left: 1, Color: colorGray,
			}))
		}

		result = append(result, row.New(alto).Add(
			desc,
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", f.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				f.PrecioUnitario,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				f.PrecioTotal,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// resumenRow: bloque de totales alineado a la derecha. La fila de
// impuestos solo aparece cuando el documento la trae.
func resumenRow(doc *document.Documento) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	labels := col.New(4)
	values := col.New(4)
	top := float64(1)
	labels.Add(label("Subtotal:", top))
	values.Add(value(doc.Subtotal, top))
	if doc.Impuestos != "" {
		top += 6
		labels.Add(label("Impuestos:", top))
		values.Add(value(doc.Impuestos, top))
	}
	top += 7
	labels.Add(text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 2, Top: top,
	}))
	values.Add(text.New(doc.Total, props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
	}))

	return row.New(top + 8).Add(col.New(4), labels, values)
}

// bloqueRows: título del bloque + una fila por línea de texto.
func bloqueRows(s document.Seccion) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(6).Add(col.New(12).Add(
			text.New(s.Titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, linea := range splitLines(s.Texto) {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(linea, props.Text{Size: 8, Color: colorGray, Top: 0.5, Left: 1}),
		)))
	}
	return rows
}

// firmaRows: imagen de la firma si se pudo descargar, con su rótulo.
func (g *MarotoPDFGenerator) firmaRows(firmaURL string) []core.Row {
	rows := []core.Row{row.New(6)}
	if img := g.bajar(firmaURL); img != nil {
		rows = append(rows, row.New(24).Add(
			col.New(4).Add(image.NewFromBytes(img, extension.Png, props.Rect{Percent: 90})),
			col.New(8),
		))
	}
	rows = append(rows, row.New(6).Add(col.New(4).Add(
		text.New("Firma", props.Text{Size: 8, Color: colorGray, Top: 1}),
	)))
	return rows
}

// pieRow: cierre del documento.
func pieRow(doc *document.Documento) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Documento %s generado el %s.", doc.Ref, doc.Fecha), props.Text{
			Size: 7, Color: colorGray, Top: 2, Align: align.Center,
		}),
		text.New("Gracias por su confianza.", props.Text{
			Size: 7, Color: colorGray, Top: 7, Align: align.Center,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) bajar(url string) []byte {
	if url == "" || g.descargarImagen == nil {
		return nil
	}
	img, err := g.descargarImagen(url)
	if err != nil {
		return nil // sin imagen el documento sale igual, solo sin el logo o la firma
	}
	return img
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
