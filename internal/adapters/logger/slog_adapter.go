package logger

import (
	"log/slog"
	"os"
	"time"

	"marketplace-service/internal/core/port"

	"github.com/lmittmann/tint"
)

// SlogConfig - настройки стандартного логгера в stdout.
type SlogConfig struct {
	Level    slog.Level
	IsJSON   bool
	UseColor bool
}

// SlogAdapter оборачивает slog в LoggerPort приложения.
type SlogAdapter struct {
	logger *slog.Logger
}

func NewSlogAdapter(cfg SlogConfig) port.LoggerPort {
	var handler slog.Handler
	switch {
	case cfg.IsJSON:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})
	case cfg.UseColor:
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      cfg.Level,
			TimeFormat: time.TimeOnly,
		})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})
	}
	return &SlogAdapter{logger: slog.New(handler)}
}

func (a *SlogAdapter) Debug(msg string, fields port.Fields) {
	a.logger.Debug(msg, argsFromFields(fields)...)
}

func (a *SlogAdapter) Info(msg string, fields port.Fields) {
	a.logger.Info(msg, argsFromFields(fields)...)
}

func (a *SlogAdapter) Warn(msg string, fields port.Fields) {
	a.logger.Warn(msg, argsFromFields(fields)...)
}

func (a *SlogAdapter) Error(msg string, err error, fields port.Fields) {
	args := argsFromFields(fields)
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	a.logger.Error(msg, args...)
}

func (a *SlogAdapter) WithFields(fields port.Fields) port.LoggerPort {
	if len(fields) == 0 {
		return a
	}
	return &SlogAdapter{logger: a.logger.With(argsFromFields(fields)...)}
}

func argsFromFields(fields port.Fields) []any {
	if len(fields) == 0 {
		return nil
	}
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return args
}
