package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-service/internal/core/domain"
)

// stubPublicationStorage - заглушка писателя публикаций.
type stubPublicationStorage struct {
	save         func(ctx context.Context, publication domain.Publication) error
	updateStatus func(ctx context.Context, update domain.PublicationStatusUpdate) error
}

func (s *stubPublicationStorage) Save(ctx context.Context, publication domain.Publication) error {
	return s.save(ctx, publication)
}

func (s *stubPublicationStorage) UpdateStatus(ctx context.Context, update domain.PublicationStatusUpdate) error {
	return s.updateStatus(ctx, update)
}

func validTestPublication() domain.Publication {
	return domain.Publication{
		TxHash:    "0xabcdef",
		TxStatus:  domain.TxConfirmed,
		AssetID:   "10,-5",
		AssetType: domain.AssetParcel,
		Owner:     "0xowner",
		Price:     1500,
		ExpiresAt: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.PublicationOpen,
	}
}

func TestSavePublicationValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Publication)
	}{
		{"missing tx_hash", func(p *domain.Publication) { p.TxHash = "" }},
		{"missing asset_id", func(p *domain.Publication) { p.AssetID = "" }},
		{"unknown asset type", func(p *domain.Publication) { p.AssetType = "wearable" }},
		{"unknown status", func(p *domain.Publication) { p.Status = "expired" }},
		{"negative price", func(p *domain.Publication) { p.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := false
			storage := &stubPublicationStorage{
				save: func(context.Context, domain.Publication) error {
					saved = true
					return nil
				},
			}

			pub := validTestPublication()
			tt.mutate(&pub)

			uc := NewSavePublicationUseCase(storage)
			if err := uc.Execute(context.Background(), pub); err == nil {
				t.Fatal("expected validation error")
			}
			if saved {
				t.Fatal("invalid publication must not reach storage")
			}
		})
	}
}

func TestSavePublicationInvalidStatusIsSentinel(t *testing.T) {
	storage := &stubPublicationStorage{}
	pub := validTestPublication()
	pub.Status = "typo"

	uc := NewSavePublicationUseCase(storage)
	if err := uc.Execute(context.Background(), pub); !errors.Is(err, ErrInvalidPublicationStatus) {
		t.Fatalf("err = %v, want ErrInvalidPublicationStatus", err)
	}
}

func TestSavePublicationPassesValidToStorage(t *testing.T) {
	var got domain.Publication
	storage := &stubPublicationStorage{
		save: func(_ context.Context, publication domain.Publication) error {
			got = publication
			return nil
		},
	}

	pub := validTestPublication()
	uc := NewSavePublicationUseCase(storage)
	if err := uc.Execute(context.Background(), pub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TxHash != pub.TxHash || got.Price != pub.Price {
		t.Fatalf("storage received %+v, want %+v", got, pub)
	}
}

func TestSavePublicationStorageError(t *testing.T) {
	wantErr := errors.New("deadlock detected")
	storage := &stubPublicationStorage{
		save: func(context.Context, domain.Publication) error { return wantErr },
	}

	uc := NewSavePublicationUseCase(storage)
	if err := uc.Execute(context.Background(), validTestPublication()); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
