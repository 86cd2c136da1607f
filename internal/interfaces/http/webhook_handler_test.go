package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainware-dev/cotizador-api/internal/application/quoting"
	"github.com/brainware-dev/cotizador-api/internal/domain/entity"
	apphttp "github.com/brainware-dev/cotizador-api/internal/interfaces/http"
	"github.com/brainware-dev/cotizador-api/pkg/logger"
)

// cotizacionRepoEnMemoria implementa solo lo que el webhook toca.
type cotizacionRepoEnMemoria struct {
	cotizaciones map[string]*entity.Cotizacion
}

func (r *cotizacionRepoEnMemoria) Create(c *entity.Cotizacion) error { return nil }
func (r *cotizacionRepoEnMemoria) CreateLineas(string, []entity.Linea) error {
	return nil
}
func (r *cotizacionRepoEnMemoria) GetByID(id string) (*entity.Cotizacion, error) {
	return r.cotizaciones[id], nil
}
func (r *cotizacionRepoEnMemoria) ListByUsuario(string) ([]*entity.Cotizacion, error) {
	return nil, nil
}
func (r *cotizacionRepoEnMemoria) UpdateEstado(id, estado string) error {
	r.cotizaciones[id].Estado = estado
	return nil
}
func (r *cotizacionRepoEnMemoria) UpdateTipoDocumento(id, tipo, estado string) error {
	return nil
}

func armarAppWebhook(repo *cotizacionRepoEnMemoria, secreto string) *fiber.App {
	cotizaciones := quoting.NewCotizacionUseCase(repo, nil, nil)
	estados := quoting.NewEstadoUseCase(cotizaciones)
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	app := fiber.New()
	app.Post("/api/webhooks/resend", apphttp.NewWebhookHandler(estados, secreto, log).Resend)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, url, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestWebhookResend_AperturaAvanzaAEnviado(t *testing.T) {
	repo := &cotizacionRepoEnMemoria{cotizaciones: map[string]*entity.Cotizacion{
		"cot-1": {ID: "cot-1", Estado: entity.EstadoEnviado},
	}}
	app := armarAppWebhook(repo, "")

	resp := postWebhook(t, app, "/api/webhooks/resend",
		`{"type":"email.opened","data":{"email_id":"d-1","tags":{"cotizacion_id":"cot-1"}}}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.EstadoTramitando, repo.cotizaciones["cot-1"].Estado)
}

func TestWebhookResend_NoDegradaEstadosAvanzados(t *testing.T) {
	repo := &cotizacionRepoEnMemoria{cotizaciones: map[string]*entity.Cotizacion{
		"cot-1": {ID: "cot-1", Estado: entity.EstadoPagado},
	}}
	app := armarAppWebhook(repo, "")

	resp := postWebhook(t, app, "/api/webhooks/resend",
		`{"type":"email.opened","data":{"email_id":"d-1","tags":{"cotizacion_id":"cot-1"}}}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.EstadoPagado, repo.cotizaciones["cot-1"].Estado, "reabrir el correo no degrada Pagado")
}

func TestWebhookResend_EventoDistintoSeIgnora(t *testing.T) {
	repo := &cotizacionRepoEnMemoria{cotizaciones: map[string]*entity.Cotizacion{
		"cot-1": {ID: "cot-1", Estado: entity.EstadoEnviado},
	}}
	app := armarAppWebhook(repo, "")

	resp := postWebhook(t, app, "/api/webhooks/resend",
		`{"type":"email.delivered","data":{"email_id":"d-1","tags":{"cotizacion_id":"cot-1"}}}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.EstadoEnviado, repo.cotizaciones["cot-1"].Estado)
}

func TestWebhookResend_IDDesconocidoRespondeOK(t *testing.T) {
	repo := &cotizacionRepoEnMemoria{cotizaciones: map[string]*entity.Cotizacion{}}
	app := armarAppWebhook(repo, "")

	resp := postWebhook(t, app, "/api/webhooks/resend",
		`{"type":"email.opened","data":{"email_id":"d-1","tags":{"cotizacion_id":"no-existe"}}}`)
	defer resp.Body.Close()

	// 200 siempre: el proveedor no debe reintentar por etiquetas corruptas.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhookResend_SecretoIncorrectoRetorna401(t *testing.T) {
	repo := &cotizacionRepoEnMemoria{cotizaciones: map[string]*entity.Cotizacion{
		"cot-1": {ID: "cot-1", Estado: entity.EstadoEnviado},
	}}
	app := armarAppWebhook(repo, "super-secreto")

	resp := postWebhook(t, app, "/api/webhooks/resend?secreto=equivocado",
		`{"type":"email.opened","data":{"email_id":"d-1","tags":{"cotizacion_id":"cot-1"}}}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, entity.EstadoEnviado, repo.cotizaciones["cot-1"].Estado)

	resp2 := postWebhook(t, app, "/api/webhooks/resend?secreto=super-secreto",
		`{"type":"email.opened","data":{"email_id":"d-1","tags":{"cotizacion_id":"cot-1"}}}`)
	defer resp2.Body.Close()

	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, entity.EstadoTramitando, repo.cotizaciones["cot-1"].Estado)
}
