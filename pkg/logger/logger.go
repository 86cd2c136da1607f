// Package logger envuelve zerolog para el cotizador. El logger se inyecta
// donde hace falta (arranque, webhook de correo); los casos de uso no
// loguean, devuelven errores y el borde HTTP decide qué registrar.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config del logger. Servicio se estampa en cada evento para poder
// filtrar los logs del cotizador cuando comparten destino con otros
// servicios; vacío usa el nombre por defecto.
type Config struct {
	Env      string // development escribe consola legible; cualquier otro, JSON
	Level    string // trace, debug, info, warn, error
	Servicio string
}

const servicioPorDefecto = "cotizador-api"

// Logger instancia inyectable sobre zerolog.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno y redirige el logger global de
// zerolog al mismo destino, para las librerías que escriben por esa vía.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	servicio := cfg.Servicio
	if servicio == "" {
		servicio = servicioPorDefecto
	}

	zl := zerolog.New(w).
		Level(nivel(cfg.Level)).
		With().
		Timestamp().
		Str("servicio", servicio).
		Logger()

	log.Logger = zl

	return &Logger{zl: zl}
}

// nivel traduce el nivel configurado; un valor desconocido cae a info en
// vez de fallar el arranque.
func nivel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos, por ejemplo el handler que lo usa.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger interno para quien necesite la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
