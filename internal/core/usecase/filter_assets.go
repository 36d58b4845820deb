package usecase

import (
	"context"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// FilterAssetsUseCase - страница маркетплейса: принимает сырые параметры
// запроса, прогоняет их через санитайзер и отдает странице хранилища уже
// только проверенные значения. Сырой ввод ниже этого слоя не спускается.
type FilterAssetsUseCase[T any] struct {
	storage port.AssetStoragePort[T]
}

func NewFilterAssetsUseCase[T any](storage port.AssetStoragePort[T]) *FilterAssetsUseCase[T] {
	return &FilterAssetsUseCase[T]{storage: storage}
}

func (uc *FilterAssetsUseCase[T]) Execute(ctx context.Context, filters domain.PublicationFilters) (*domain.FilteredAssets[T], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FilterAssets",
	})

	sanitized := filters.Sanitize()
	ucLogger.Info("Use case started", port.Fields{
		"sort_by":    sanitized.Sort.By,
		"sort_order": sanitized.Sort.Order,
		"limit":      sanitized.Pagination.Limit,
		"offset":     sanitized.Pagination.Offset,
	})

	result, err := uc.storage.Filter(ctx, sanitized)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total": result.Total})
	return result, nil
}
