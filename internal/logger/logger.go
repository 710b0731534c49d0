package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config define el nivel y el formato de salida del logger
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool
}

// New crea el logger estructurado de la aplicación
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter permite dirigir la salida a otro writer (tests, archivos)
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Nop devuelve un logger deshabilitado
func Nop() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}
