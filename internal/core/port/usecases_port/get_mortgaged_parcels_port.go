package usecases_port

import (
	"context"

	"marketplace-service/internal/core/domain"
)

type GetMortgagedParcelsUseCase interface {
	Execute(ctx context.Context, borrower string) ([]domain.Parcel, error)
}
