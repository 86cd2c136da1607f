package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainware-dev/cotizador-api/internal/domain/document"
)

// docDeAlto construye un documento sintético del alto pedido, ya en el
// ancho nativo del lienzo (sin reescalado).
func docDeAlto(alto int) *document.Documento {
	return &document.Documento{Ancho: document.AnchoDocumento, Alto: alto}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aritmética de paginación por rebanado. Los tres casos límite fijan el
// contrato: alto exacto = 1 página, una unidad más = 2, alto cero = 1.
// ──────────────────────────────────────────────────────────────────────────────

func TestPaginar_AltoExactoDeUnaPagina(t *testing.T) {
	paginas := document.PaginarA4(docDeAlto(document.AltoPagina))
	require.Len(t, paginas, 1)
	assert.Equal(t, 0, paginas[0].Desde)
	assert.Equal(t, document.AltoPagina, paginas[0].Hasta)
}

func TestPaginar_UnaUnidadDeMasProduceDosPaginas(t *testing.T) {
	paginas := document.PaginarA4(docDeAlto(document.AltoPagina + 1))
	require.Len(t, paginas, 2)
	assert.Equal(t, document.AltoPagina, paginas[1].Desde)
	assert.Equal(t, document.AltoPagina+1, paginas[1].Hasta,
		"el pedazo parcial final se emite como página completa aunque mida 1 unidad")
}

func TestPaginar_AltoCeroProduceUnaPagina(t *testing.T) {
	paginas := document.PaginarA4(docDeAlto(0))
	require.Len(t, paginas, 1, "un documento vacío igual produce una página")
	assert.Equal(t, 1, paginas[0].Numero)
}

func TestPaginar_RebanadasContiguasSinHuecos(t *testing.T) {
	paginas := document.PaginarA4(docDeAlto(3*document.AltoPagina + 400))
	require.Len(t, paginas, 4)
	for i, p := range paginas {
		assert.Equal(t, i+1, p.Numero)
		if i > 0 {
			assert.Equal(t, paginas[i-1].Hasta, p.Desde,
				"cada página empieza donde terminó la anterior (rebanado de imagen)")
		}
	}
}

func TestPaginar_EscaladoAlAnchoDestino(t *testing.T) {
	// Documento el doble de ancho que la página destino: el alto efectivo
	// se reduce a la mitad al ajustarlo al ancho.
	doc := &document.Documento{Ancho: 2 * document.AnchoDocumento, Alto: 2 * document.AltoPagina}
	paginas := document.Paginar(doc, document.AnchoDocumento, document.AltoPagina)
	assert.Len(t, paginas, 1, "2×alto con 2×ancho escala a exactamente una página")
}

func TestPaginar_DimensionesInvalidas(t *testing.T) {
	assert.Nil(t, document.Paginar(docDeAlto(100), 0, document.AltoPagina))
	assert.Nil(t, document.Paginar(docDeAlto(100), document.AnchoDocumento, -1))
}

// Un documento real (compuesto) siempre cabe en al menos una página y su
// paginación es estable entre llamadas.
func TestPaginar_DocumentoCompuestoEstable(t *testing.T) {
	doc := document.Componer(cotizacionDePrueba(), emisorDePrueba())
	p1 := document.PaginarA4(doc)
	p2 := document.PaginarA4(doc)
	require.NotEmpty(t, p1)
	assert.Equal(t, p1, p2)
}
