package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-service/internal/core/domain"
)

// stubParcelStorage - ручная заглушка порта участков; nil-поля
// означают "метод в тесте не ожидается".
type stubParcelStorage struct {
	inRange        func(ctx context.Context, min, max domain.Coordinate) ([]domain.Parcel, error)
	encodeTokenID  func(ctx context.Context, x, y int) (*string, error)
	decodeTokenID  func(ctx context.Context, tokenID string) (*string, error)
	owneable       func(ctx context.Context) ([]domain.Parcel, error)
	landmarks      func(ctx context.Context) ([]domain.Parcel, error)
	withMortgageBy func(ctx context.Context, borrower string) ([]domain.Parcel, error)
}

func (s *stubParcelStorage) InRange(ctx context.Context, min, max domain.Coordinate) ([]domain.Parcel, error) {
	return s.inRange(ctx, min, max)
}

func (s *stubParcelStorage) EncodeTokenID(ctx context.Context, x, y int) (*string, error) {
	return s.encodeTokenID(ctx, x, y)
}

func (s *stubParcelStorage) DecodeTokenID(ctx context.Context, tokenID string) (*string, error) {
	return s.decodeTokenID(ctx, tokenID)
}

func (s *stubParcelStorage) FindOwneable(ctx context.Context) ([]domain.Parcel, error) {
	return s.owneable(ctx)
}

func (s *stubParcelStorage) FindLandmarks(ctx context.Context) ([]domain.Parcel, error) {
	return s.landmarks(ctx)
}

func (s *stubParcelStorage) FindWithActiveMortgageByBorrower(ctx context.Context, borrower string) ([]domain.Parcel, error) {
	return s.withMortgageBy(ctx, borrower)
}

func TestParcelsInRangeNormalizesCorners(t *testing.T) {
	var gotMin, gotMax domain.Coordinate
	storage := &stubParcelStorage{
		inRange: func(_ context.Context, min, max domain.Coordinate) ([]domain.Parcel, error) {
			gotMin, gotMax = min, max
			return nil, nil
		},
	}

	uc := NewParcelsInRangeUseCase(storage)
	// клиент прислал углы NW/SE в "неправильном" порядке
	if _, err := uc.Execute(context.Background(), domain.Coordinate{X: 5, Y: 5}, domain.Coordinate{X: -5, Y: -5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMin != (domain.Coordinate{X: -5, Y: -5}) || gotMax != (domain.Coordinate{X: 5, Y: 5}) {
		t.Fatalf("range passed to storage = %v..%v", gotMin, gotMax)
	}
}

func TestParcelsInRangeExcludesExpiredPublications(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	fresh := &domain.Publication{TxHash: "0x1", IsLatest: true, TxStatus: domain.TxConfirmed, ExpiresAt: now.Add(time.Hour)}
	stale := &domain.Publication{TxHash: "0x2", IsLatest: true, TxStatus: domain.TxConfirmed, ExpiresAt: now.Add(-time.Hour)}

	storage := &stubParcelStorage{
		inRange: func(context.Context, domain.Coordinate, domain.Coordinate) ([]domain.Parcel, error) {
			return []domain.Parcel{
				{ID: "1,1", X: 1, Y: 1, Publication: fresh},
				{ID: "2,2", X: 2, Y: 2, Publication: stale},
				{ID: "3,3", X: 3, Y: 3},
			}, nil
		},
	}

	uc := NewParcelsInRangeUseCase(storage)
	uc.nowFn = func() time.Time { return now }

	parcels, err := uc.Execute(context.Background(), domain.Coordinate{X: 0, Y: 0}, domain.Coordinate{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// участок с истекшей публикацией выпадает целиком,
	// участок без публикации остается
	if len(parcels) != 2 {
		t.Fatalf("parcel count = %d, want 2", len(parcels))
	}
	if parcels[0].ID != "1,1" || parcels[0].Publication == nil || parcels[0].Publication.TxHash != "0x1" {
		t.Fatalf("fresh publication must survive: %+v", parcels[0])
	}
	if parcels[1].ID != "3,3" || parcels[1].Publication != nil {
		t.Fatalf("bare parcel must stay in the result: %+v", parcels[1])
	}
}

func TestParcelsInRangeAllExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stale := &domain.Publication{TxHash: "0x2", IsLatest: true, TxStatus: domain.TxConfirmed, ExpiresAt: now.Add(-time.Hour)}

	storage := &stubParcelStorage{
		inRange: func(context.Context, domain.Coordinate, domain.Coordinate) ([]domain.Parcel, error) {
			return []domain.Parcel{{ID: "2,2", X: 2, Y: 2, Publication: stale}}, nil
		},
	}

	uc := NewParcelsInRangeUseCase(storage)
	uc.nowFn = func() time.Time { return now }

	parcels, err := uc.Execute(context.Background(), domain.Coordinate{X: 0, Y: 0}, domain.Coordinate{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parcels) != 0 {
		t.Fatalf("expired-publication parcels must be excluded, got %d", len(parcels))
	}
}

func TestParcelsInRangeStorageError(t *testing.T) {
	wantErr := errors.New("connection reset")
	storage := &stubParcelStorage{
		inRange: func(context.Context, domain.Coordinate, domain.Coordinate) ([]domain.Parcel, error) {
			return nil, wantErr
		},
	}

	uc := NewParcelsInRangeUseCase(storage)
	if _, err := uc.Execute(context.Background(), domain.Coordinate{}, domain.Coordinate{}); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
