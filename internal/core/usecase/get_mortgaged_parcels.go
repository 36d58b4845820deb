package usecase

import (
	"context"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// GetMortgagedParcelsUseCase - участки, под которые у заемщика есть
// действующий залог.
type GetMortgagedParcelsUseCase struct {
	storage port.ParcelStoragePort
}

func NewGetMortgagedParcelsUseCase(storage port.ParcelStoragePort) *GetMortgagedParcelsUseCase {
	return &GetMortgagedParcelsUseCase{storage: storage}
}

func (uc *GetMortgagedParcelsUseCase) Execute(ctx context.Context, borrower string) ([]domain.Parcel, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetMortgagedParcels",
		"borrower": borrower,
	})

	ucLogger.Info("Use case started", nil)

	parcels, err := uc.storage.FindWithActiveMortgageByBorrower(ctx, borrower)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(parcels)})
	return parcels, nil
}
