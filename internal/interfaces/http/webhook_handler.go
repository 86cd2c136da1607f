package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/brainware-dev/cotizador-api/internal/application/quoting"
	"github.com/brainware-dev/cotizador-api/pkg/logger"
)

// resendWebhookEvent payload de los webhooks de Resend. Solo interesan el
// tipo de evento y las etiquetas que viajaron con el correo.
type resendWebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		EmailID string            `json:"email_id"`
		Tags    map[string]string `json:"tags"`
	} `json:"data"`
}

// WebhookHandler recibe eventos del proveedor de correo (público, sin JWT).
// El secreto compartido va en la query string de la URL registrada en Resend.
type WebhookHandler struct {
	estados *quoting.EstadoUseCase
	secreto string
	log     *logger.Logger
}

// NewWebhookHandler construye el handler. secreto vacío desactiva la verificación.
func NewWebhookHandler(estados *quoting.EstadoUseCase, secreto string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{estados: estados, secreto: secreto, log: log}
}

// Resend godoc
// @Summary      Webhook de eventos de correo
// @Description  email.opened avanza la cotización de Enviado a Tramitando.
// @Description  Cualquier otro evento se acepta y se ignora.
// @Tags         webhooks
// @Accept       json
// @Param        secreto  query  string  false  "Secreto compartido"
// @Success      200
// @Failure      401
// @Router       /api/webhooks/resend [post]
func (h *WebhookHandler) Resend(c *fiber.Ctx) error {
	if h.secreto != "" {
		dado := c.Query("secreto")
		if subtle.ConstantTimeCompare([]byte(dado), []byte(h.secreto)) != 1 {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
	}

	var evento resendWebhookEvent
	if err := c.BodyParser(&evento); err != nil {
		// Payload malformado: 200 igual para que Resend no reintente en bucle.
		h.log.Warn().Err(err).Msg("webhook resend: payload ilegible")
		return c.JSON(fiber.Map{"received": true})
	}

	if evento.Type != "email.opened" {
		return c.JSON(fiber.Map{"received": true})
	}

	cotizacionID := evento.Data.Tags["cotizacion_id"]
	if cotizacionID == "" {
		return c.JSON(fiber.Map{"received": true})
	}

	cambio, err := h.estados.RegistrarApertura(cotizacionID)
	if err != nil {
		h.log.Error().Err(err).Str("cotizacion_id", cotizacionID).Msg("webhook resend: error registrando apertura")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if cambio {
		h.log.Info().Str("cotizacion_id", cotizacionID).Msg("cotización abierta por el cliente")
	}
	return c.JSON(fiber.Map{"received": true})
}
