package usecases_port

import (
	"context"

	"marketplace-service/internal/core/domain"
)

type ParcelsInRangeUseCase interface {
	Execute(ctx context.Context, a, b domain.Coordinate) ([]domain.Parcel, error)
}
