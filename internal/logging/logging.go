package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Setup(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// WithComponent devolve ponteiro para permitir encadear direto
// (logging.WithComponent("x").Warn()...): os métodos de nível do zerolog
// têm receptor ponteiro.
func WithComponent(name string) *zerolog.Logger {
	l := log.With().Str("component", name).Logger()
	return &l
}
