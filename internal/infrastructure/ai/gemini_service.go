package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/application/ports"
	"github.com/brainware-dev/cotizador-api/internal/domain"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// GeminiService adaptador que implementa LLMService llamando a la API REST de Google Gemini.
// Proveedor alternativo a Anthropic; se selecciona con AI_PROVIDER=gemini.
// Usa response_mime_type=application/json en el mapeo, que obliga a Gemini a
// devolver JSON puro sin envolturas markdown.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
// Si apiKey está vacío, las llamadas devuelven error descriptivo en lugar de panic.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 25 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"response_mime_type,omitempty"`
	Temperature      float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// MapearCotizacion envía el mensaje del cliente y el catálogo a Gemini y
// devuelve el borrador estructurado.
func (s *GeminiService) MapearCotizacion(ctx context.Context, mensaje string, catalogo []dto.ItemCatalogoAI) (*dto.AICotizarResponse, error) {
	catalogoJSON, err := json.Marshal(catalogo)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar catálogo: %w", err)
	}
	userContent := fmt.Sprintf("Mensaje del cliente:\n%s\n\nCatálogo:\n%s", mensaje, catalogoJSON)

	rawText, err := s.generar(ctx, cotizarSystemPrompt, userContent, "application/json")
	if err != nil {
		return nil, err
	}

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
func (s *GeminiService) MejorarTexto(ctx context.Context, texto, contexto string) (string, error) {
	if contexto == "" {
		contexto = "notas"
	}
	userContent := fmt.Sprintf("Sección: %s\n\nTexto:\n%s", contexto, texto)

	rawText, err := s.generar(ctx, escribirSystemPrompt, userContent, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rawText), nil
}

// generar ejecuta una llamada a generateContent y devuelve el texto del
// primer candidato.
func (s *GeminiService) generar(ctx context.Context, system, userContent, mimeType string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userContent}}},
		},
		GenerationConfig: genConfig{ResponseMIMEType: mimeType, Temperature: 0.2},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
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

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if gemResp.Error != nil {
		return "", fmt.Errorf("AI: Gemini error %d: %s", gemResp.Error.Code, gemResp.Error.Message)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return gemResp.Candidates[0].Content.Parts[0].Text, nil
}
