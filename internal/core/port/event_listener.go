package port

import "context"

// EventListenerPort - входящий адаптер, слушающий внешние события
// (у нас - очередь публикаций из пайплайна индексации).
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
