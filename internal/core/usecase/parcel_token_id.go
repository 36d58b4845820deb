package usecase

import (
	"context"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
)

// ParcelTokenIDUseCase - преобразования между координатами участка и его
// ончейн-идентификатором. Отсутствие участка отдается как nil.
type ParcelTokenIDUseCase struct {
	storage port.ParcelStoragePort
}

func NewParcelTokenIDUseCase(storage port.ParcelStoragePort) *ParcelTokenIDUseCase {
	return &ParcelTokenIDUseCase{storage: storage}
}

func (uc *ParcelTokenIDUseCase) Encode(ctx context.Context, x, y int) (*string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "EncodeParcelTokenID",
		"x":        x,
		"y":        y,
	})

	tokenID, err := uc.storage.EncodeTokenID(ctx, x, y)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return tokenID, nil
}

func (uc *ParcelTokenIDUseCase) Decode(ctx context.Context, tokenID string) (*string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "DecodeParcelTokenID",
		"token_id": tokenID,
	})

	id, err := uc.storage.DecodeTokenID(ctx, tokenID)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return id, nil
}
