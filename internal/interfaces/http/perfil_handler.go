package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/application/ports"
	"github.com/brainware-dev/cotizador-api/internal/application/usecase"
)

// PerfilHandler maneja el perfil del emisor y la subida de su logo (protegido).
type PerfilHandler struct {
	uc      *usecase.PerfilUseCase
	storage ports.BlobStorage
}

// NewPerfilHandler construye el handler.
func NewPerfilHandler(uc *usecase.PerfilUseCase, storage ports.BlobStorage) *PerfilHandler {
	return &PerfilHandler{uc: uc, storage: storage}
}

// Get godoc
// @Summary      Perfil del usuario autenticado
// @Tags         perfil
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UsuarioResponse
// @Router       /api/perfil [get]
func (h *PerfilHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar perfil
// @Tags         perfil
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePerfilRequest  true  "Datos del perfil"
// @Success      200   {object}  dto.UsuarioResponse
// @Router       /api/perfil [put]
func (h *PerfilHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePerfilRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// UploadLogo godoc
// @Summary      Subir logo del emisor
// @Tags         perfil
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo  formData  file  true  "Imagen del logo"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/perfil/logo [post]
func (h *PerfilHandler) UploadLogo(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	contenido, nombre, contentType, err := leerArchivo(c, "logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}

	url, err := h.storage.SubirImagen(c.Context(), usuarioID, nombre, contentType, contenido)
	if err != nil {
		return responderError(c, err)
	}
	if err := h.uc.SetLogoURL(usuarioID, url); err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.Get(usuarioID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// leerArchivo extrae un archivo multipart y devuelve contenido, nombre y content type.
func leerArchivo(c *fiber.Ctx, campo string) ([]byte, string, string, error) {
	fh, err := c.FormFile(campo)
	if err != nil {
		return nil, "", "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer f.Close()
	contenido, err := io.ReadAll(f)
	if err != nil {
		return nil, "", "", err
	}
	return contenido, fh.Filename, fh.Header.Get("Content-Type"), nil
}
