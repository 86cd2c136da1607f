package ports

import (
	"context"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
)

// LLMService define el puerto de salida hacia los asistentes de IA.
// Cualquier adaptador (Anthropic, OpenAI, mock) debe implementar esta
// interfaz; la aplicación solo conoce este contrato.
//
// Ambas operaciones reciben un contexto con timeout: ninguna muta estado
// hasta que el caller acepta el resultado, así que cancelarlas es seguro.
type LLMService interface {
	// MapearCotizacion interpreta una solicitud informal y la mapea a
	// ítems del catálogo entregado. Contrato de mundo cerrado: solo puede
	// proponer IDs que existan en el catálogo; lo que no coincide va en
	// NoEncontrados, nunca se inventa. Si la respuesta del modelo no es el
	// JSON esperado devuelve domain.ErrAIUnparsable (envuelto), distinto
	// de un fallo de transporte.
	MapearCotizacion(ctx context.Context, mensaje string, catalogo []dto.ItemCatalogoAI) (*dto.AICotizarResponse, error)

	// MejorarTexto reescribe un texto de la cotización (notas, términos
	// legales, descripciones) en tono comercial profesional. Sin
	// conocimiento del catálogo: puramente textual.
	MejorarTexto(ctx context.Context, texto, contexto string) (string, error)
}
