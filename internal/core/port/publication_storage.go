package port

import (
	"context"

	"marketplace-service/internal/core/domain"
)

// PublicationStoragePort - порт писателя публикаций.
// Save обязан атомарно поддерживать инвариант "не больше одной
// is_latest-строки на ассет": сброс старого флага и установка нового
// происходят в одной транзакции.
type PublicationStoragePort interface {
	Save(ctx context.Context, publication domain.Publication) error
	UpdateStatus(ctx context.Context, update domain.PublicationStatusUpdate) error
}

// DistrictStoragePort - чтение районов.
type DistrictStoragePort interface {
	FindEnabled(ctx context.Context) ([]domain.District, error)
}
