package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Options struct {
	Level  string // debug|info|warn|error (default info)
	Format string // json|console (default json)
	App    string
}

// New construye el logger raíz del servicio.
func New(opts Options) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = os.Stdout
	if strings.EqualFold(strings.TrimSpace(opts.Format), "console") {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	ctx := zerolog.New(w).Level(lvl).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}
	return ctx.Logger()
}
