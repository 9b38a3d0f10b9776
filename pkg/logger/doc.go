// Package logger builds slog loggers with context extraction and
// optional Sentry reporting.
//
// # Basic Usage
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithExtractors(func(ctx context.Context) (slog.Attr, bool) {
//	        id, ok := ctx.Value(requestIDKey{}).(string)
//	        return slog.String("request_id", id), ok && id != ""
//	    }),
//	)
//	log.InfoContext(ctx, "page rendered", slog.String("theme", "default"))
//
// Extractors run on every record, so request-scoped values are always
// current. [NewContextHandler] applies them to any slog.Handler.
//
// # Sentry
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//	    DSN:      os.Getenv("SENTRY_DSN"),
//	    MinLevel: slog.LevelWarn,
//	})
//
// Error records create Sentry issues; records at MinLevel and above are
// stored as Sentry logs. Without a DSN the logger writes locally only.
// Register [SentryFlush] as a shutdown hook so buffered events are sent
// before the process exits.
//
// [NewNope] returns a logger that discards everything; it is the default
// wherever a logger is optional.
package logger
