package usecase

import (
	"context"
	"errors"
	"testing"

	"marketplace-service/internal/core/domain"
)

func TestGetAddressAssetsWithoutStatus(t *testing.T) {
	byOwnerCalled := false
	storage := &stubAssetStorage[domain.Parcel]{
		findByOwner: func(_ context.Context, owner string) ([]domain.Parcel, error) {
			byOwnerCalled = true
			if owner != "0xowner" {
				t.Fatalf("owner = %q", owner)
			}
			return []domain.Parcel{{ID: "1,1"}}, nil
		},
	}

	uc := NewGetAddressAssetsUseCase[domain.Parcel](storage)
	got, err := uc.Execute(context.Background(), "0xowner", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !byOwnerCalled {
		t.Fatal("empty status must use the unfiltered lookup")
	}
	if len(got) != 1 {
		t.Fatalf("result = %v", got)
	}
}

func TestGetAddressAssetsWithStatus(t *testing.T) {
	var gotStatus domain.PublicationStatus
	storage := &stubAssetStorage[domain.Parcel]{
		findByOwnerAndStatus: func(_ context.Context, owner string, status domain.PublicationStatus) ([]domain.Parcel, error) {
			gotStatus = status
			return nil, nil
		},
	}

	uc := NewGetAddressAssetsUseCase[domain.Parcel](storage)
	if _, err := uc.Execute(context.Background(), "0xowner", "sold"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != domain.PublicationSold {
		t.Fatalf("status = %q, want sold", gotStatus)
	}
}

func TestGetAddressAssetsInvalidStatus(t *testing.T) {
	// хранилище не должно вызываться вовсе, поэтому заглушка без методов
	storage := &stubAssetStorage[domain.Parcel]{}

	uc := NewGetAddressAssetsUseCase[domain.Parcel](storage)
	_, err := uc.Execute(context.Background(), "0xowner", "for-sale")
	if !errors.Is(err, ErrInvalidPublicationStatus) {
		t.Fatalf("err = %v, want ErrInvalidPublicationStatus", err)
	}
}

func TestGetAddressAssetsStorageError(t *testing.T) {
	wantErr := errors.New("no connection")
	storage := &stubAssetStorage[domain.Parcel]{
		findByOwner: func(context.Context, string) ([]domain.Parcel, error) {
			return nil, wantErr
		},
	}

	uc := NewGetAddressAssetsUseCase[domain.Parcel](storage)
	if _, err := uc.Execute(context.Background(), "0xowner", ""); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
