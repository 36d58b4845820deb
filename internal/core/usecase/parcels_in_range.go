package usecase

import (
	"context"
	"time"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// ParcelsInRangeUseCase - участки прямоугольника карты. Углы принимает
// любые: сначала нормализует их в min/max по каждой оси, потом убирает
// из выдачи участки с истекшей публикацией. База фильтрует только по
// is_latest, срок жизни публикации сверяется с часами приложения.
type ParcelsInRangeUseCase struct {
	storage port.ParcelStoragePort
	nowFn   func() time.Time
}

func NewParcelsInRangeUseCase(storage port.ParcelStoragePort) *ParcelsInRangeUseCase {
	return &ParcelsInRangeUseCase{storage: storage, nowFn: time.Now}
}

func (uc *ParcelsInRangeUseCase) Execute(ctx context.Context, a, b domain.Coordinate) ([]domain.Parcel, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ParcelsInRange",
	})

	min, max := domain.NormalizeRange(a, b)

	ucLogger.Info("Use case started", port.Fields{
		"min": min.ID(),
		"max": max.ID(),
	})

	parcels, err := uc.storage.InRange(ctx, min, max)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	// Участок без публикации остается на карте; участок с истекшей
	// публикацией выпадает из выдачи целиком.
	now := uc.nowFn()
	result := parcels[:0]
	for _, parcel := range parcels {
		if parcel.Publication != nil && parcel.Publication.IsExpired(now) {
			continue
		}
		result = append(result, parcel)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(result)})
	return result, nil
}
