package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/brainware-dev/cotizador-api/internal/application/auth"
	"github.com/brainware-dev/cotizador-api/internal/application/ports"
	"github.com/brainware-dev/cotizador-api/internal/application/quoting"
	"github.com/brainware-dev/cotizador-api/internal/application/usecase"
	infraai "github.com/brainware-dev/cotizador-api/internal/infrastructure/ai"
	infraemail "github.com/brainware-dev/cotizador-api/internal/infrastructure/email"
	infrapdf "github.com/brainware-dev/cotizador-api/internal/infrastructure/pdf"
	"github.com/brainware-dev/cotizador-api/internal/infrastructure/postgres"
	infrastorage "github.com/brainware-dev/cotizador-api/internal/infrastructure/storage"
	httpRouter "github.com/brainware-dev/cotizador-api/internal/interfaces/http"
	"github.com/brainware-dev/cotizador-api/pkg/config"
	"github.com/brainware-dev/cotizador-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:      cfg.App.Env,
		Level:    cfg.Log.Level,
		Servicio: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	cotizacionRepo := postgres.NewCotizacionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := usecase.NewItemUseCase(itemRepo)
	perfilUC := usecase.NewPerfilUseCase(usuarioRepo)

	// Asistente de IA: Anthropic por defecto, Gemini como alternativa.
	var llm ports.LLMService
	if cfg.AI.Provider == "gemini" {
		llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	} else {
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	}
	aiUC := usecase.NewAIUseCase(llm, itemRepo)

	mailer := infraemail.NewResendService(cfg.Email.ResendAPIKey, cfg.Email.From)

	gcs, err := infrastorage.NewGCSService(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente de Google Cloud Storage")
	}
	defer gcs.Close()

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(descargarImagen)

	cotizacionUC := quoting.NewCotizacionUseCase(cotizacionRepo, itemRepo, txRunner)
	estadoUC := quoting.NewEstadoUseCase(cotizacionUC)
	pdfUC := quoting.NewPDFUseCase(cotizacionUC, usuarioRepo, pdfGenerator)
	enviarUC := quoting.NewEnviarUseCase(cotizacionUC, usuarioRepo, mailer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la generación de PDF puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cotizador API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ItemUC:        itemUC,
		PerfilUC:      perfilUC,
		AIUC:          aiUC,
		CotizacionUC:  cotizacionUC,
		EstadoUC:      estadoUC,
		PDFUC:         pdfUC,
		EnviarUC:      enviarUC,
		Storage:       gcs,
		JWTSecret:     cfg.JWT.Secret,
		WebhookSecret: cfg.Email.WebhookSecret,
		Logger:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// descargarImagen trae el logo o la firma por URL para incrustarlos en el PDF.
func descargarImagen(url string) ([]byte, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("descargar imagen: HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 10<<20))
}
