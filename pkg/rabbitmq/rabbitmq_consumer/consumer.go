package rabbitmq_consumer

import "context"

// Consumer - общий контракт потребителей: блокирующее потребление
// до отмены контекста и корректное освобождение ресурсов.
type Consumer interface {
	StartConsuming(ctx context.Context) error
	Close() error
}
