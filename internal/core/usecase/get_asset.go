package usecase

import (
	"context"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
)

// GetAssetUseCase - точечное чтение одного ассета.
// Отсутствие записи не ошибка: возвращается nil, решение
// о 404 принимает транспортный слой.
type GetAssetUseCase[T any] struct {
	storage port.AssetStoragePort[T]
}

func NewGetAssetUseCase[T any](storage port.AssetStoragePort[T]) *GetAssetUseCase[T] {
	return &GetAssetUseCase[T]{storage: storage}
}

func (uc *GetAssetUseCase[T]) ByID(ctx context.Context, id string) (*T, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetAssetByID",
		"id":       id,
	})

	result, err := uc.storage.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return result, nil
}

func (uc *GetAssetUseCase[T]) ByTokenID(ctx context.Context, tokenID string) (*T, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetAssetByTokenID",
		"token_id": tokenID,
	})

	result, err := uc.storage.FindByTokenID(ctx, tokenID)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return result, nil
}
