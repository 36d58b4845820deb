package port

// Fields - структурированный контекст для записи лога.
type Fields map[string]interface{}

// LoggerPort - порт логирования для ядра. Реализации живут в adapters/logger.
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	WithFields(fields Fields) LoggerPort
}

type noopLogger struct{}

func (l *noopLogger) Debug(msg string, fields Fields)            {}
func (l *noopLogger) Info(msg string, fields Fields)             {}
func (l *noopLogger) Warn(msg string, fields Fields)             {}
func (l *noopLogger) Error(msg string, err error, fields Fields) {}
func (l *noopLogger) WithFields(fields Fields) LoggerPort        { return l }

// NewNoopLogger возвращает логгер-заглушку. Используется как безопасный
// дефолт, когда в контексте логгера нет.
func NewNoopLogger() LoggerPort {
	return &noopLogger{}
}
