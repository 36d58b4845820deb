package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace-service/internal/constants"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/contracts"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	usecases_port "marketplace-service/internal/core/port/usecases_port"

	"marketplace-service/pkg/rabbitmq/rabbitmq_common"
	"marketplace-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publicationSubmittedDTO - тело события о новой публикации.
type publicationSubmittedDTO struct {
	TxHash             string     `json:"tx_hash"`
	TxStatus           string     `json:"tx_status"`
	AssetID            string     `json:"asset_id"`
	AssetType          string     `json:"asset_type"`
	Owner              string     `json:"owner"`
	Price              float64    `json:"price"`
	ExpiresAt          time.Time  `json:"expires_at"`
	Status             string     `json:"status"`
	BlockNumber        int64      `json:"block_number"`
	BlockTimeCreatedAt *time.Time `json:"block_time_created_at"`
	BlockTimeUpdatedAt *time.Time `json:"block_time_updated_at"`
	ContractID         string     `json:"contract_id"`
	MarketplaceAddress string     `json:"marketplace_address"`
}

// publicationStatusChangedDTO - тело события о смене статуса.
type publicationStatusChangedDTO struct {
	TxHash             string     `json:"tx_hash"`
	Status             string     `json:"status"`
	TxStatus           string     `json:"tx_status"`
	BlockTimeUpdatedAt *time.Time `json:"block_time_updated_at"`
}

// PublicationConsumerAdapter - входящий адаптер, который слушает очередь
// событий маркетплейса и вызывает use case'ы записи публикаций.
// Очередь одна, тип события определяется заголовком event-type.
type PublicationConsumerAdapter struct {
	consumer       rabbitmq_consumer.Consumer
	saveUC         usecases_port.SavePublicationPort
	changeStatusUC usecases_port.ChangePublicationStatusPort
	logger         port.LoggerPort
}

func NewPublicationConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	saveUC usecases_port.SavePublicationPort,
	changeStatusUC usecases_port.ChangePublicationStatusPort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*PublicationConsumerAdapter, error) {

	adapter := &PublicationConsumerAdapter{
		saveUC:         saveUC,
		changeStatusUC: changeStatusUC,
		logger:         logger,
	}

	// Логгер для pkg-уровня с контекстом нашего компонента
	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_batch_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewBatchConsumer(consumerCfg, adapter.batchMessageHandler, 100, 10*time.Second, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for publication events: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

// batchMessageHandler - обработчик пачки сообщений. Ошибка на любом
// сообщении возвращает в очередь всю пачку: запись публикаций
// идемпотентна по tx_hash, повторная доставка безопасна.
func (a *PublicationConsumerAdapter) batchMessageHandler(deliveries []amqp.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}

	traceID, _ := deliveries[0].Headers["x-trace-id"].(string)
	if traceID == "" {
		traceID = uuid.New().String()
	}
	batchID := uuid.New().String()

	batchLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"batch_id":     batchID,
		"batch_size":   len(deliveries),
		"adapter_name": "PublicationConsumerAdapter",
	})

	ctx := context.Background()
	ctx = contextkeys.ContextWithLogger(ctx, batchLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	batchLogger.Info("Received batch of publication events.", nil)

	for _, d := range deliveries {
		if err := a.handleDelivery(ctx, d, batchLogger); err != nil {
			return err
		}
	}

	batchLogger.Info("Batch processed successfully.", nil)
	return nil
}

func (a *PublicationConsumerAdapter) handleDelivery(ctx context.Context, d amqp.Delivery, parentLogger port.LoggerPort) error {
	eventType, _ := d.Headers["event-type"].(string)
	eventVersion, _ := d.Headers["event-version"].(string)

	msgLogger := parentLogger.WithFields(port.Fields{
		"message_id":    d.MessageId,
		"event_type":    eventType,
		"event_version": eventVersion,
	})

	// Валидация по схеме до любой десериализации
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Message failed schema validation. Rejecting.", err, nil)
		return err
	}

	switch eventType {
	case constants.EventTypePublicationSubmitted:
		var dto publicationSubmittedDTO
		if err := json.Unmarshal(d.Body, &dto); err != nil {
			return fmt.Errorf("failed to unmarshal publication submitted event: %w", err)
		}
		return a.saveUC.Execute(ctx, toDomainPublication(dto))

	case constants.EventTypePublicationStatusChanged:
		var dto publicationStatusChangedDTO
		if err := json.Unmarshal(d.Body, &dto); err != nil {
			return fmt.Errorf("failed to unmarshal publication status changed event: %w", err)
		}
		return a.changeStatusUC.Execute(ctx, domain.PublicationStatusUpdate{
			TxHash:             dto.TxHash,
			Status:             domain.PublicationStatus(dto.Status),
			TxStatus:           domain.TxStatus(dto.TxStatus),
			BlockTimeUpdatedAt: dto.BlockTimeUpdatedAt,
		})

	default:
		// Схема бы не пропустила неизвестный тип, но заголовок и тело
		// приходят раздельно, поэтому проверка повторяется и здесь.
		err := fmt.Errorf("unknown event type: %s", eventType)
		msgLogger.Error("Cannot dispatch message.", err, nil)
		return err
	}
}

func toDomainPublication(dto publicationSubmittedDTO) domain.Publication {
	return domain.Publication{
		TxHash:             dto.TxHash,
		TxStatus:           domain.TxStatus(dto.TxStatus),
		AssetID:            dto.AssetID,
		AssetType:          domain.AssetType(dto.AssetType),
		Owner:              dto.Owner,
		Price:              dto.Price,
		ExpiresAt:          dto.ExpiresAt,
		Status:             domain.PublicationStatus(dto.Status),
		BlockNumber:        dto.BlockNumber,
		BlockTimeCreatedAt: dto.BlockTimeCreatedAt,
		BlockTimeUpdatedAt: dto.BlockTimeUpdatedAt,
		ContractID:         dto.ContractID,
		MarketplaceAddress: dto.MarketplaceAddress,
	}
}

// Start реализует EventListenerPort, запуская прослушивание очереди
func (a *PublicationConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort, корректно останавливая консьюмера
func (a *PublicationConsumerAdapter) Close() error {
	return a.consumer.Close()
}
