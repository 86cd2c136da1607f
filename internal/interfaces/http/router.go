package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainware-dev/cotizador-api/internal/application/auth"
	"github.com/brainware-dev/cotizador-api/internal/application/ports"
	"github.com/brainware-dev/cotizador-api/internal/application/quoting"
	"github.com/brainware-dev/cotizador-api/internal/application/usecase"
	"github.com/brainware-dev/cotizador-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ItemUC        *usecase.ItemUseCase
	PerfilUC      *usecase.PerfilUseCase
	AIUC          *usecase.AIUseCase
	CotizacionUC  *quoting.CotizacionUseCase
	EstadoUC      *quoting.EstadoUseCase
	PDFUC         *quoting.PDFUseCase
	EnviarUC      *quoting.EnviarUseCase
	Storage       ports.BlobStorage
	JWTSecret     string
	WebhookSecret string
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhooks (público: Resend no manda JWT, valida con secreto compartido)
	webhookHandler := NewWebhookHandler(deps.EstadoUC, deps.WebhookSecret, deps.Logger)
	api.Post("/webhooks/resend", webhookHandler.Resend)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de ítems (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Cotizaciones (protegido)
	cotizaciones := protected.Group("/cotizaciones")
	cotizacionHandler := NewCotizacionHandler(deps.CotizacionUC, deps.EstadoUC, deps.PDFUC, deps.EnviarUC)
	cotizaciones.Post("/", cotizacionHandler.Create)
	cotizaciones.Get("/", cotizacionHandler.List)
	cotizaciones.Get("/:id", cotizacionHandler.GetByID)
	cotizaciones.Patch("/:id/estado", cotizacionHandler.UpdateEstado)
	cotizaciones.Post("/:id/convertir", cotizacionHandler.Convertir)
	cotizaciones.Get("/:id/pdf", cotizacionHandler.PDF)
	cotizaciones.Post("/:id/enviar", cotizacionHandler.Enviar)

	// Perfil del emisor (protegido)
	perfil := protected.Group("/perfil")
	perfilHandler := NewPerfilHandler(deps.PerfilUC, deps.Storage)
	perfil.Get("/", perfilHandler.Get)
	perfil.Put("/", perfilHandler.Update)
	perfil.Post("/logo", perfilHandler.UploadLogo)

	// Subidas sueltas (protegido)
	uploads := protected.Group("/uploads")
	uploadHandler := NewUploadHandler(deps.Storage)
	uploads.Post("/firma", uploadHandler.Firma)

	// Asistentes de IA (protegido)
	ai := protected.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC)
	ai.Post("/cotizar", aiHandler.Cotizar)
	ai.Post("/escribir", aiHandler.Escribir)
}
