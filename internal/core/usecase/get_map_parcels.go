package usecase

import (
	"context"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// GetMapParcelsUseCase - слои карты: обычная земля и участки районов.
type GetMapParcelsUseCase struct {
	storage port.ParcelStoragePort
}

func NewGetMapParcelsUseCase(storage port.ParcelStoragePort) *GetMapParcelsUseCase {
	return &GetMapParcelsUseCase{storage: storage}
}

func (uc *GetMapParcelsUseCase) Owneable(ctx context.Context) ([]domain.Parcel, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetOwneableParcels",
	})

	parcels, err := uc.storage.FindOwneable(ctx)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return parcels, nil
}

func (uc *GetMapParcelsUseCase) Landmarks(ctx context.Context) ([]domain.Parcel, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetLandmarkParcels",
	})

	parcels, err := uc.storage.FindLandmarks(ctx)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return parcels, nil
}
