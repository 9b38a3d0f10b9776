package logger

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type options struct {
	output     io.Writer
	level      slog.Leveler
	format     Format
	extractors []ContextExtractor
}

// Option configures a logger built by New or NewWithSentry.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		output: os.Stdout,
		level:  slog.LevelInfo,
		format: FormatJSON,
	}
}

// WithOutput sets the destination. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
// Pass a *slog.LevelVar to change the level at runtime.
func WithLevel(l slog.Leveler) Option {
	return func(o *options) {
		if l != nil {
			o.level = l
		}
	}
}

// WithFormat selects JSON (default) or text output.
func WithFormat(f Format) Option {
	return func(o *options) {
		if f == FormatJSON || f == FormatText {
			o.format = f
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

func (o *options) handler() slog.Handler {
	hopts := &slog.HandlerOptions{Level: o.level}
	if o.format == FormatText {
		return slog.NewTextHandler(o.output, hopts)
	}
	return slog.NewJSONHandler(o.output, hopts)
}
