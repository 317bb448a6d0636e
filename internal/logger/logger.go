package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	appCtx "github.com/wellbot/wellbot-backend/internal/pkg/context"
)

const serviceName = "wellbot"

// Logger is the process-wide logger. It is a no-op until Init runs.
var Logger zerolog.Logger

// Options controls the logger output. Zero values mean info level, console format.
type Options struct {
	Level  zerolog.Level
	Format string // "console" or "json"
}

// OptionsFromEnv reads LOG_LEVEL and LOG_FORMAT. Unknown levels fall back to info.
func OptionsFromEnv() Options {
	opts := Options{Level: zerolog.InfoLevel, Format: "console"}

	if lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && lvl != zerolog.NoLevel {
		opts.Level = lvl
	}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		opts.Format = "json"
	}
	return opts
}

func Init() {
	InitWithWriter(os.Stdout)
}

func InitWithWriter(w io.Writer) {
	Configure(w, OptionsFromEnv())
}

// Configure builds Logger and mirrors it into zerolog's global logger.
func Configure(w io.Writer, opts Options) {
	if opts.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	Logger = zerolog.New(w).
		Level(opts.Level).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	zlog.Logger = Logger
}

// WithCtx returns Logger enriched with the request id and, once the caller is
// authenticated, their user id.
func WithCtx(ctx context.Context) *zerolog.Logger {
	rid := appCtx.GetRequestID(ctx)
	uid := appCtx.GetUserID(ctx)

	l := Logger
	if rid != "" || uid != "" {
		c := l.With()
		if rid != "" {
			c = c.Str("request_id", rid)
		}
		if uid != "" {
			c = c.Str("user_id", uid)
		}
		l = c.Logger()
	}
	return &l
}
