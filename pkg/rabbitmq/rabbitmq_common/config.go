package rabbitmq_common

import (
	"fmt"
	"strings"
)

// Config - общая часть конфигурации продюсеров и консьюмеров.
type Config struct {
	URL string // Адрес брокера, amqp:// или amqps://
}

// Validate проверяет общую часть конфигурации.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("rabbitmq config: URL is required")
	}
	if !strings.HasPrefix(c.URL, "amqp://") && !strings.HasPrefix(c.URL, "amqps://") {
		return fmt.Errorf("rabbitmq config: URL must start with amqp:// or amqps://")
	}
	return nil
}
