package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainware-dev/cotizador-api/internal/application/dto"
	"github.com/brainware-dev/cotizador-api/internal/application/ports"
)

// UploadHandler sube imágenes sueltas (firmas) y devuelve su URL pública
// para que el formulario la referencie en firma_url (protegido).
type UploadHandler struct {
	storage ports.BlobStorage
}

// NewUploadHandler construye el handler.
func NewUploadHandler(storage ports.BlobStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// UploadResponse URL pública del archivo subido.
type UploadResponse struct {
	URL string `json:"url"`
}

// maxFirmaBytes tope para imágenes de firma, más estricto que el tope
// general de imágenes del storage.
const maxFirmaBytes = 2 << 20 // 2 MB

// Firma godoc
// @Summary      Subir imagen de firma
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        firma  formData  file  true  "Imagen de la firma"
// @Success      201    {object}  UploadResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/uploads/firma [post]
func (h *UploadHandler) Firma(c *fiber.Ctx) error {
	contenido, nombre, contentType, err := leerArchivo(c, "firma")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	if len(contenido) > maxFirmaBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la firma no puede superar 2 MB"})
	}
	url, err := h.storage.SubirImagen(c.Context(), GetUserID(c), nombre, contentType, contenido)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(UploadResponse{URL: url})
}
