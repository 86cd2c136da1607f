package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/application/usecase"
)

// AIHandler maneja los asistentes de IA (protegido).
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Cotizar godoc
// @Summary      Mapear un mensaje de cliente a un borrador de cotización
// @Description  El borrador solo usa ítems del catálogo del usuario; lo que
// @Description  no exista se reporta en no_encontrados. No persiste nada.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AICotizarRequest  true  "Mensaje del cliente"
// @Success      200   {object}  dto.AICotizarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ai/cotizar [post]
func (h *AIHandler) Cotizar(c *fiber.Ctx) error {
	var in dto.AICotizarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Cotizar(c.Context(), GetUserID(c), in.Mensaje)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Escribir godoc
// @Summary      Mejorar un texto del documento
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AIEscribirRequest  true  "Texto y sección"
// @Success      200   {object}  dto.AIEscribirResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ai/escribir [post]
func (h *AIHandler) Escribir(c *fiber.Ctx) error {
	var in dto.AIEscribirRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resultado, err := h.uc.Escribir(c.Context(), in.Texto, in.Contexto)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.AIEscribirResponse{Resultado: resultado})
}
