package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/application/quoting"
)

// CotizacionHandler maneja el ciclo de vida de las cotizaciones (protegido).
type CotizacionHandler struct {
	cotizaciones *quoting.CotizacionUseCase
	estados      *quoting.EstadoUseCase
	pdfs         *quoting.PDFUseCase
	enviar       *quoting.EnviarUseCase
}

// NewCotizacionHandler construye el handler.
func NewCotizacionHandler(
	cotizaciones *quoting.CotizacionUseCase,
	estados *quoting.EstadoUseCase,
	pdfs *quoting.PDFUseCase,
	enviar *quoting.EnviarUseCase,
) *CotizacionHandler {
	return &CotizacionHandler{cotizaciones: cotizaciones, estados: estados, pdfs: pdfs, enviar: enviar}
}

// Create godoc
// @Summary      Crear cotización
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCotizacionRequest  true  "Cliente, tasa de impuesto y líneas"
// @Success      201   {object}  dto.CotizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones [post]
func (h *CotizacionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.cotizaciones.Create(c.Context(), GetUserID(c), &in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones del usuario (más recientes primero)
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CotizacionResponse
// @Router       /api/cotizaciones [get]
func (h *CotizacionHandler) List(c *fiber.Ctx) error {
	out, err := h.cotizaciones.List(GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cotización con el total de páginas del documento
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.CotizacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id} [get]
func (h *CotizacionHandler) GetByID(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	out, err := h.cotizaciones.GetByID(usuarioID, c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if _, paginas, err := h.pdfs.Documento(usuarioID, c.Params("id")); err == nil {
		out.Paginas = len(paginas)
	}
	return c.JSON(out)
}

// UpdateEstado godoc
// @Summary      Mover la cotización en el tablero
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.UpdateEstadoRequest  true  "Estado destino"
// @Success      200   {object}  dto.CotizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/estado [patch]
func (h *CotizacionHandler) UpdateEstado(c *fiber.Ctx) error {
	var in dto.UpdateEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.estados.CambiarEstado(GetUserID(c), c.Params("id"), in.Estado)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Convertir godoc
// @Summary      Convertir a cuenta de cobro o factura proforma
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.ConvertirRequest  true  "Tipo de documento destino"
// @Success      200   {object}  dto.CotizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/convertir [post]
func (h *CotizacionHandler) Convertir(c *fiber.Ctx) error {
	var in dto.ConvertirRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.estados.Convertir(GetUserID(c), c.Params("id"), in.TipoDocumento)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar el PDF del documento
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/pdf [get]
func (h *CotizacionHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdfs.Generar(GetUserID(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdf)
}

// Enviar godoc
// @Summary      Enviar la cotización al cliente por correo
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.EnviarRequest  true  "Destinatario, asunto y enlace"
// @Success      200   {object}  dto.EnviarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/enviar [post]
func (h *CotizacionHandler) Enviar(c *fiber.Ctx) error {
	var in dto.EnviarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.enviar.Enviar(c.Context(), GetUserID(c), c.Params("id"), &in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
