package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brainware-dev/cotizador-api/internal/application/quoting"
	"github.com/brainware-dev/cotizador-api/internal/domain"
)

// Verificar en tiempo de compilación que ResendService implementa Mailer.
var _ quoting.Mailer = (*ResendService)(nil)

const resendEmailsURL = "https://api.resend.com/emails"

// ResendService adaptador del puerto Mailer sobre la API REST de Resend.
// Las etiquetas del correo vuelven en los webhooks (email.opened), ahí se
// correlaciona la apertura con la cotización.
type ResendService struct {
	apiKey     string
	remitente  string // "Nombre <correo@dominio>"
	httpClient *http.Client
}

// NewResendService construye el adaptador.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewResendService(apiKey, remitente string) *ResendService {
	return &ResendService{
		apiKey:    apiKey,
		remitente: remitente,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ── Estructuras del protocolo Resend ──────────────────────────────────────────

type resendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type resendRequest struct {
	From    string      `json:"from"`
	To      []string    `json:"to"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html"`
	Tags    []resendTag `json:"tags,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

// Enviar manda el correo y devuelve el ID de entrega de Resend. Un rechazo
// del proveedor (4xx) es ErrEmailRejected; los fallos de red se reportan aparte.
func (s *ResendService) Enviar(ctx context.Context, c quoting.Correo) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("email: RESEND_API_KEY no configurado")
	}

	payload := resendRequest{
		From:    s.remitente,
		To:      []string{c.Para},
		Subject: c.Asunto,
		HTML:    c.HTML,
	}
	for name, value := range c.Etiquetas {
		payload.Tags = append(payload.Tags, resendTag{Name: name, Value: value})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("email: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEmailsURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("email: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("email: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("email: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("email: leer respuesta: %w", err)
	}

	var rr resendResponse
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(rawBody, &rr) == nil && rr.Message != "" {
			return "", fmt.Errorf("%w: Resend %d: %s", domain.ErrEmailRejected, resp.StatusCode, rr.Message)
		}
		return "", fmt.Errorf("%w: Resend HTTP %d", domain.ErrEmailRejected, resp.StatusCode)
	}
	if err := json.Unmarshal(rawBody, &rr); err != nil {
		return "", fmt.Errorf("email: deserializar respuesta Resend: %w", err)
	}
	return rr.ID, nil
}
