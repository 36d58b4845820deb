package usecase

import (
	"context"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// GetDistrictsUseCase - справочник видимых районов.
type GetDistrictsUseCase struct {
	storage port.DistrictStoragePort
}

func NewGetDistrictsUseCase(storage port.DistrictStoragePort) *GetDistrictsUseCase {
	return &GetDistrictsUseCase{storage: storage}
}

func (uc *GetDistrictsUseCase) Execute(ctx context.Context) ([]domain.District, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetDistricts",
	})

	districts, err := uc.storage.FindEnabled(ctx)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return districts, nil
}
