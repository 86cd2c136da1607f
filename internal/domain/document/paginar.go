package document

// Pagina es una rebanada física del documento: el rango [Desde, Hasta)
// de unidades verticales ya escaladas al ancho de la página destino.
type Pagina struct {
	Numero int // 1-indexado
	Desde  int
	Hasta  int
}

// Paginar corta el documento en páginas de altoPagina unidades una vez
// escalado al anchoPagina destino, de arriba hacia abajo.
//
// Es paginación por rebanado de imagen, no por reflujo de contenido: la
// aritmética no sabe de secciones y una frontera puede partir una fila de
// la tabla. Reglas exactas:
//   - un documento de alto 0 produce exactamente 1 página;
//   - alto == altoPagina produce exactamente 1 página;
//   - alto == altoPagina+1 produce 2, y el último pedazo parcial se emite
//     como página completa.
func Paginar(doc *Documento, anchoPagina, altoPagina int) []Pagina {
	if anchoPagina <= 0 || altoPagina <= 0 {
		return nil
	}

	// Alto escalado al ancho destino (ajuste proporcional al ancho).
	alto := doc.Alto
	if doc.Ancho > 0 && doc.Ancho != anchoPagina {
		alto = doc.Alto * anchoPagina / doc.Ancho
	}

	n := (alto + altoPagina - 1) / altoPagina
	if n < 1 {
		n = 1
	}

	paginas := make([]Pagina, 0, n)
	for i := 0; i < n; i++ {
		desde := i * altoPagina
		hasta := desde + altoPagina
		if hasta > alto {
			hasta = alto
		}
		paginas = append(paginas, Pagina{Numero: i + 1, Desde: desde, Hasta: hasta})
	}
	return paginas
}

// PaginarA4 pagina con las dimensiones nativas del lienzo (794 × 1123).
func PaginarA4(doc *Documento) []Pagina {
	return Paginar(doc, AnchoDocumento, AltoPagina)
}
