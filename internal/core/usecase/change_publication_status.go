package usecase

import (
	"context"
	"fmt"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// ChangePublicationStatusUseCase - переход публикации по жизненному
// циклу: подтверждение транзакции, продажа, отмена.
type ChangePublicationStatusUseCase struct {
	storage port.PublicationStoragePort
}

func NewChangePublicationStatusUseCase(storage port.PublicationStoragePort) *ChangePublicationStatusUseCase {
	return &ChangePublicationStatusUseCase{storage: storage}
}

func (uc *ChangePublicationStatusUseCase) Execute(ctx context.Context, update domain.PublicationStatusUpdate) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ChangePublicationStatus",
		"tx_hash":  update.TxHash,
		"status":   update.Status,
	})

	ucLogger.Info("Use case started", nil)

	if update.TxHash == "" {
		return fmt.Errorf("publication tx_hash is required")
	}
	if !domain.ValidPublicationStatus(string(update.Status)) {
		return fmt.Errorf("%w: %s", ErrInvalidPublicationStatus, update.Status)
	}

	if err := uc.storage.UpdateStatus(ctx, update); err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
