package logger

import (
	"fmt"
	"log/slog"

	"marketplace-service/internal/core/port"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// FluentLoggerAdapter отправляет структурированные логи в Fluent Bit.
// Поля накапливаются через WithFields и уходят с каждой записью.
type FluentLoggerAdapter struct {
	client *fluent.Fluent
	level  slog.Level
	fields port.Fields
}

func NewFluentLoggerAdapter(client *fluent.Fluent, level slog.Level) (port.LoggerPort, error) {
	if client == nil {
		return nil, fmt.Errorf("fluent client cannot be nil")
	}
	return &FluentLoggerAdapter{client: client, level: level}, nil
}

func (a *FluentLoggerAdapter) Debug(msg string, fields port.Fields) {
	a.post(slog.LevelDebug, "debug", msg, nil, fields)
}

func (a *FluentLoggerAdapter) Info(msg string, fields port.Fields) {
	a.post(slog.LevelInfo, "info", msg, nil, fields)
}

func (a *FluentLoggerAdapter) Warn(msg string, fields port.Fields) {
	a.post(slog.LevelWarn, "warn", msg, nil, fields)
}

func (a *FluentLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	a.post(slog.LevelError, "error", msg, err, fields)
}

func (a *FluentLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	if len(fields) == 0 {
		return a
	}
	merged := make(port.Fields, len(a.fields)+len(fields))
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &FluentLoggerAdapter{client: a.client, level: a.level, fields: merged}
}

func (a *FluentLoggerAdapter) post(level slog.Level, levelName, msg string, err error, fields port.Fields) {
	if level < a.level {
		return
	}

	payload := make(map[string]interface{}, len(a.fields)+len(fields)+3)
	for k, v := range a.fields {
		payload[k] = fmt.Sprintf("%v", v)
	}
	for k, v := range fields {
		payload[k] = fmt.Sprintf("%v", v)
	}
	payload["level"] = levelName
	payload["message"] = msg
	if err != nil {
		payload["error"] = err.Error()
	}

	// Ошибка отправки лога не должна ронять приложение, пишем ее в stderr
	// силами самого fluent-клиента через возврат.
	if postErr := a.client.Post(levelName, payload); postErr != nil {
		fmt.Printf("ERROR: failed to post log to fluent: %v\n", postErr)
	}
}
