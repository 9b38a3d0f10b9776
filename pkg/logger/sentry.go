package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Release     string `yaml:"release"`
	// MinLevel is the lowest level stored in Sentry as a log.
	// Errors always create issues.
	MinLevel slog.Level `yaml:"-"`
}

// NewWithSentry creates a logger that writes locally and to Sentry.
// With an empty DSN, or if the SDK fails to start, only the local
// handler is used.
func NewWithSentry(cfg SentryConfig, opts ...Option) *slog.Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	local := o.handler()

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(local, o.extractors...))
	}

	env := cfg.Environment
	if env == "" {
		env = "prod"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: env,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("sentry init failed", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(local, o.extractors...))
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   sentryLogLevels(cfg.MinLevel),
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{local, remote}, o.extractors...))
}

func sentryLogLevels(floor slog.Level) []slog.Level {
	var levels []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= floor {
			levels = append(levels, l)
		}
	}
	return levels
}

// SentryFlush returns a shutdown hook that waits for buffered Sentry
// events, bounded by timeout and the hook context. It is a no-op when
// Sentry was never initialized.
//
//	app.Run(":8080", mvc.ShutdownHook(logger.SentryFlush(2*time.Second)))
func SentryFlush(timeout time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		if sentry.CurrentHub().Client() == nil {
			return nil
		}
		if dl, ok := ctx.Deadline(); ok {
			if left := time.Until(dl); left < timeout {
				timeout = left
			}
		}
		if !sentry.Flush(timeout) {
			return context.DeadlineExceeded
		}
		return nil
	}
}
