package logger

import (
	"fmt"

	"marketplace-service/internal/core/port"
)

// MultiloggerAdapter дублирует каждую запись во все вложенные логгеры.
type MultiloggerAdapter struct {
	loggers []port.LoggerPort
}

func NewMultiloggerAdapter(loggers ...port.LoggerPort) (port.LoggerPort, error) {
	if len(loggers) == 0 {
		return nil, fmt.Errorf("at least one logger is required")
	}
	return &MultiloggerAdapter{loggers: loggers}, nil
}

func (a *MultiloggerAdapter) Debug(msg string, fields port.Fields) {
	for _, l := range a.loggers {
		l.Debug(msg, fields)
	}
}

func (a *MultiloggerAdapter) Info(msg string, fields port.Fields) {
	for _, l := range a.loggers {
		l.Info(msg, fields)
	}
}

func (a *MultiloggerAdapter) Warn(msg string, fields port.Fields) {
	for _, l := range a.loggers {
		l.Warn(msg, fields)
	}
}

func (a *MultiloggerAdapter) Error(msg string, err error, fields port.Fields) {
	for _, l := range a.loggers {
		l.Error(msg, err, fields)
	}
}

func (a *MultiloggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	wrapped := make([]port.LoggerPort, len(a.loggers))
	for i, l := range a.loggers {
		wrapped[i] = l.WithFields(fields)
	}
	return &MultiloggerAdapter{loggers: wrapped}
}
