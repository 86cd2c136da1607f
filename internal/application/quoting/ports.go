package quoting

import (
	"context"

	"github.com/brainware-dev/cotizador-api/internal/domain/document"
	"github.com/brainware-dev/cotizador-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con un repositorio atado
// a la tx. La creación de una cotización inserta cabecera y líneas en la
// misma transacción: o se persiste todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(cotizaciones repository.CotizacionRepository) error) error
}

// PDFGenerator renderiza el documento compuesto a bytes PDF.
type PDFGenerator interface {
	Generar(doc *document.Documento) ([]byte, error)
}

// Correo a enviar. HTML ya renderizado; Etiquetas viajan al proveedor y
// vuelven en los webhooks de apertura, es ahí donde se correlaciona el
// evento con la cotización.
type Correo struct {
	Para      string
	Asunto    string
	HTML      string
	Etiquetas map[string]string
}

// Mailer puerto del proveedor de correo transaccional. Devuelve el ID de
// entrega asignado por el proveedor.
type Mailer interface {
	Enviar(ctx context.Context, c Correo) (string, error)
}
