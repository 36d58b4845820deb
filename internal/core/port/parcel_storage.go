package port

import (
	"context"

	"marketplace-service/internal/core/domain"
)

// ParcelStoragePort - специфичные для участков запросы, не покрытые
// обобщенным AssetStoragePort.
type ParcelStoragePort interface {
	// InRange возвращает участки с min.X <= x <= max.X и min.Y <= y <= max.Y,
	// декорированные последней публикацией, в порядке x ASC, y DESC.
	// Фильтрация истекших публикаций здесь НЕ выполняется - это забота
	// вызывающего кода (см. ParcelsInRangeUseCase).
	InRange(ctx context.Context, min, max domain.Coordinate) ([]domain.Parcel, error)

	// EncodeTokenID - token_id по координатам, nil если участка нет.
	EncodeTokenID(ctx context.Context, x, y int) (*string, error)
	// DecodeTokenID - id участка по token_id, nil если участка нет.
	DecodeTokenID(ctx context.Context, tokenID string) (*string, error)

	// FindOwneable - участки вне районов (обычная земля).
	FindOwneable(ctx context.Context) ([]domain.Parcel, error)
	// FindLandmarks - участки, принадлежащие районам.
	FindLandmarks(ctx context.Context) ([]domain.Parcel, error)

	// FindWithActiveMortgageByBorrower - участки, под которые у заемщика
	// есть действующий залог.
	FindWithActiveMortgageByBorrower(ctx context.Context, borrower string) ([]domain.Parcel, error)
}
