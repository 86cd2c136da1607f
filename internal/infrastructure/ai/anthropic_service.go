package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/application/ports"
	"github.com/brainware-dev/cotizador-api/internal/domain"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	cotizarSystemPrompt = `Eres un asistente comercial que arma borradores de cotización a partir de un mensaje de cliente.
Recibes el mensaje y el catálogo de servicios del usuario (lista JSON con id, nombre, codigo_sku y precio_base).
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código` + " ```json" + `) con esta estructura exacta:
{
  "cliente_nombre": "<nombre del cliente si el mensaje lo menciona, o cadena vacía>",
  "cliente_email": "<email del cliente si el mensaje lo menciona, o cadena vacía>",
  "items": [{"item_id": "<id EXACTO del catálogo>", "nombre": "<nombre del catálogo>", "cantidad": <entero >= 1>, "precio_unitario": <número>}],
  "no_encontrados": ["<lo pedido que NO existe en el catálogo, en palabras del cliente>"],
  "notas_sugeridas": "<nota breve y profesional para el documento, o cadena vacía>"
}

Reglas:
- item_id SOLO puede ser un id presente en el catálogo entregado. NUNCA inventes ids ni servicios.
- Lo que el cliente pida y no tenga equivalente en el catálogo va en no_encontrados, nunca en items.
- precio_unitario por defecto es el precio_base del catálogo; usa otro solo si el mensaje lo indica.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`

	escribirSystemPrompt = `Eres un redactor comercial en español. Recibes un texto de un documento de cotización y el nombre de la sección a la que pertenece.
Reescríbelo con tono profesional y claro, conservando todos los datos concretos (cifras, fechas, nombres).
Devuelve ÚNICAMENTE el texto reescrito, sin comillas, sin markdown y sin comentarios sobre el cambio.`
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además su propio context.WithTimeout.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque Claude lo envuelva en markdown.
// Captura desde el primer '{' hasta el último '}' coincidente.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// MapearCotizacion envía el mensaje del cliente y el catálogo a Claude y
// devuelve el borrador estructurado. Una respuesta sin JSON parseable es
// ErrAIUnparsable; los fallos de red o de la API se reportan aparte.
func (s *AnthropicService) MapearCotizacion(ctx context.Context, mensaje string, catalogo []dto.ItemCatalogoAI) (*dto.AICotizarResponse, error) {
	catalogoJSON, err := json.Marshal(catalogo)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar catálogo: %w", err)
	}
	userContent := fmt.Sprintf("Mensaje del cliente:\n%s\n\nCatálogo:\n%s", mensaje, catalogoJSON)

	rawText, err := s.completar(ctx, cotizarSystemPrompt, userContent)
	if err != nil {
		return nil, err
	}

	// Parseo seguro: extraer solo el bloque JSON aunque Claude añada texto adicional.
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("%w: sin JSON en la respuesta del modelo", domain.ErrAIUnparsable)
	}

	var borrador dto.AICotizarResponse
	if err := json.Unmarshal([]byte(cleanJSON), &borrador); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAIUnparsable, err)
	}
	return &borrador, nil
}

// MejorarTexto reescribe un texto de sección con tono profesional.
func (s *AnthropicService) MejorarTexto(ctx context.Context, texto, contexto string) (string, error) {
	if contexto == "" {
		contexto = "notas"
	}
	userContent := fmt.Sprintf("Sección: %s\n\nTexto:\n%s", contexto, texto)

	rawText, err := s.completar(ctx, escribirSystemPrompt, userContent)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rawText), nil
}

// completar ejecuta una llamada al Messages API y devuelve el texto del
// primer bloque de contenido.
func (s *AnthropicService) completar(ctx context.Context, system, userContent string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    system,
		Messages: []anthropicMessage{
			{Role: "user", Content: userContent},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	// Manejar errores HTTP de la API de Anthropic
	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return anthResp.Content[0].Text, nil
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	// Eliminar bloques markdown ```json ... ``` o ``` ... ```
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		// Quitar la línea de apertura (```json o ```)
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		// Quitar el cierre ```
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	// Si el texto resultante ya empieza con '{', usarlo directamente
	if strings.HasPrefix(text, "{") {
		return text
	}

	// Fallback: regex para extraer el primer {...}
	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
