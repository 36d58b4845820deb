package usecase

import (
	"context"
	"fmt"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// SavePublicationUseCase - прием нового объявления из потока событий.
// Валидация здесь дублирует JSON-схему сознательно: ядро не должно
// доверять тому, что транспортный слой все проверил.
type SavePublicationUseCase struct {
	storage port.PublicationStoragePort
}

func NewSavePublicationUseCase(storage port.PublicationStoragePort) *SavePublicationUseCase {
	return &SavePublicationUseCase{storage: storage}
}

func (uc *SavePublicationUseCase) Execute(ctx context.Context, publication domain.Publication) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SavePublication",
		"tx_hash":  publication.TxHash,
		"asset_id": publication.AssetID,
	})

	ucLogger.Info("Use case started", nil)

	if err := validatePublication(publication); err != nil {
		ucLogger.Error("Publication validation failed", err, nil)
		return err
	}

	if err := uc.storage.Save(ctx, publication); err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

func validatePublication(p domain.Publication) error {
	if p.TxHash == "" {
		return fmt.Errorf("publication tx_hash is required")
	}
	if p.AssetID == "" {
		return fmt.Errorf("publication asset_id is required")
	}
	if !domain.ValidAssetType(string(p.AssetType)) {
		return fmt.Errorf("unknown asset type: %s", p.AssetType)
	}
	if !domain.ValidPublicationStatus(string(p.Status)) {
		return fmt.Errorf("%w: %s", ErrInvalidPublicationStatus, p.Status)
	}
	if p.Price < 0 {
		return fmt.Errorf("publication price cannot be negative")
	}
	return nil
}
