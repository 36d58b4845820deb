package usecases_port

import (
	"context"

	"marketplace-service/internal/core/domain"
)

type GetDistrictsUseCase interface {
	Execute(ctx context.Context) ([]domain.District, error)
}
