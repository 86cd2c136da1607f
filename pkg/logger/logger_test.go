package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_EstampaElServicioEnCadaEvento(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Servicio: "cotizador-api"})

	// Redirigir la salida conserva los campos fijos del contexto.
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("evento de prueba")

	assert.Contains(t, buf.String(), `"servicio":"cotizador-api"`)
	assert.Contains(t, buf.String(), "evento de prueba")
}

func TestNew_ServicioVacioUsaElPorDefecto(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info"})

	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("x")

	assert.Contains(t, buf.String(), `"servicio":"cotizador-api"`)
}

func TestNew_NivelDesconocidoCaeAInfo(t *testing.T) {
	casos := []struct {
		nivel    string
		esperado zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"cualquier-cosa", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, c := range casos {
		l := New(Config{Env: "production", Level: c.nivel})
		assert.Equal(t, c.esperado, l.Zerolog().GetLevel(), "nivel %q", c.nivel)
	}
}
