package usecases_port

import (
	"context"

	"marketplace-service/internal/core/domain"
)

type FilterAssetsUseCase[T any] interface {
	Execute(ctx context.Context, filters domain.PublicationFilters) (*domain.FilteredAssets[T], error)
}
