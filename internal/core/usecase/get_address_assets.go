package usecase

import (
	"context"
	"errors"
	"fmt"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// ErrInvalidPublicationStatus - статус, которого нет в перечислении.
// В отличие от фильтров страницы здесь нет молчаливой подмены на
// значение по умолчанию: явный запрос с опечаткой должен падать.
var ErrInvalidPublicationStatus = errors.New("invalid publication status")

// GetAddressAssetsUseCase - ассеты одного владельца, опционально
// суженные до имеющих публикацию в заданном статусе.
type GetAddressAssetsUseCase[T any] struct {
	storage port.AssetStoragePort[T]
}

func NewGetAddressAssetsUseCase[T any](storage port.AssetStoragePort[T]) *GetAddressAssetsUseCase[T] {
	return &GetAddressAssetsUseCase[T]{storage: storage}
}

func (uc *GetAddressAssetsUseCase[T]) Execute(ctx context.Context, owner string, status string) ([]T, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetAddressAssets",
		"owner":    owner,
		"status":   status,
	})

	ucLogger.Info("Use case started", nil)

	if status == "" {
		result, err := uc.storage.FindByOwner(ctx, owner)
		if err != nil {
			ucLogger.Error("Storage returned an error", err, nil)
			return nil, err
		}
		return result, nil
	}

	if !domain.ValidPublicationStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPublicationStatus, status)
	}

	result, err := uc.storage.FindByOwnerAndStatus(ctx, owner, domain.PublicationStatus(status))
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(result)})
	return result, nil
}
