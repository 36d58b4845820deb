package rabbitmq

import (
	"fmt"

	"marketplace-service/internal/core/port"
	"marketplace-service/pkg/rabbitmq/rabbitmq_common"
)

// PkgLoggerBridge адаптирует LoggerPort приложения к интерфейсу логгера
// pkg-уровня, у которого поля передаются плоским списком ключ-значение.
type PkgLoggerBridge struct {
	logger port.LoggerPort
}

func NewPkgLoggerBridge(logger port.LoggerPort) rabbitmq_common.Logger {
	return &PkgLoggerBridge{logger: logger}
}

func (b *PkgLoggerBridge) Debug(msg string, keysAndValues ...interface{}) {
	b.logger.Debug(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (b *PkgLoggerBridge) Info(msg string, keysAndValues ...interface{}) {
	b.logger.Info(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (b *PkgLoggerBridge) Warn(msg string, keysAndValues ...interface{}) {
	b.logger.Warn(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (b *PkgLoggerBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	b.logger.Error(msg, err, fieldsFromKeysAndValues(keysAndValues))
}

// fieldsFromKeysAndValues собирает пары в структурированные поля.
// Непарный хвост сохраняется под служебным ключом, а не теряется.
func fieldsFromKeysAndValues(keysAndValues []interface{}) port.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(port.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	if len(keysAndValues)%2 != 0 {
		fields["unpaired"] = keysAndValues[len(keysAndValues)-1]
	}
	return fields
}
