package constants

// Имена очередей
const (
	QueuePublicationEvents = "publication_events"
)

// Ключи маршрутизации
const (
	RoutingKeyPublicationEvents = "marketplace.publications.save"
)

// Типы событий в заголовках сообщений
const (
	EventTypePublicationSubmitted     = "PublicationSubmittedEvent"
	EventTypePublicationStatusChanged = "PublicationStatusChangedEvent"
	EventVersionV1                    = "1.0.0"
)

const (
	FinalDLXExchange   = "publication_events_final_dlx"
	FinalDLQ           = "publication_events_final_dlq"
	FinalDLQRoutingKey = "publications.dlq.key"
)
