package usecases_port

import (
	"context"

	"marketplace-service/internal/core/domain"
)

type GetMapParcelsUseCase interface {
	Owneable(ctx context.Context) ([]domain.Parcel, error)
	Landmarks(ctx context.Context) ([]domain.Parcel, error)
}
