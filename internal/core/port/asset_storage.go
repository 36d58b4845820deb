package port

import (
	"context"

	"marketplace-service/internal/core/domain"
)

// AssetStoragePort - обобщенный порт чтения ассетов одного типа
// (участки или эстейты), каждый ассет декорирован последней публикацией.
//
// Контракты:
//   - одиночные выборки возвращают (nil, nil), если записи нет;
//   - пакетные выборки на пустом входе возвращают пустой срез,
//     не выполняя запрос;
//   - ошибки хранилища пробрасываются без изменений.
type AssetStoragePort[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	FindByTokenID(ctx context.Context, tokenID string) (*T, error)
	FindByIDs(ctx context.Context, ids []string) ([]T, error)
	FindByTokenIDs(ctx context.Context, tokenIDs []string) ([]T, error)
	FindByOwner(ctx context.Context, owner string) ([]T, error)
	FindByOwnerAndStatus(ctx context.Context, owner string, status domain.PublicationStatus) ([]T, error)

	// Filter - страница маркетплейса + общий счетчик под тем же предикатом.
	Filter(ctx context.Context, filters domain.SanitizedFilters) (*domain.FilteredAssets[T], error)
}
