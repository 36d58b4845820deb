package usecase

import (
	"context"
	"errors"
	"testing"

	"marketplace-service/internal/core/domain"
)

// stubAssetStorage - заглушка обобщенного порта ассетов.
type stubAssetStorage[T any] struct {
	findByID             func(ctx context.Context, id string) (*T, error)
	findByTokenID        func(ctx context.Context, tokenID string) (*T, error)
	findByIDs            func(ctx context.Context, ids []string) ([]T, error)
	findByTokenIDs       func(ctx context.Context, tokenIDs []string) ([]T, error)
	findByOwner          func(ctx context.Context, owner string) ([]T, error)
	findByOwnerAndStatus func(ctx context.Context, owner string, status domain.PublicationStatus) ([]T, error)
	filter               func(ctx context.Context, filters domain.SanitizedFilters) (*domain.FilteredAssets[T], error)
}

func (s *stubAssetStorage[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return s.findByID(ctx, id)
}

func (s *stubAssetStorage[T]) FindByTokenID(ctx context.Context, tokenID string) (*T, error) {
	return s.findByTokenID(ctx, tokenID)
}

func (s *stubAssetStorage[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	return s.findByIDs(ctx, ids)
}

func (s *stubAssetStorage[T]) FindByTokenIDs(ctx context.Context, tokenIDs []string) ([]T, error) {
	return s.findByTokenIDs(ctx, tokenIDs)
}

func (s *stubAssetStorage[T]) FindByOwner(ctx context.Context, owner string) ([]T, error) {
	return s.findByOwner(ctx, owner)
}

func (s *stubAssetStorage[T]) FindByOwnerAndStatus(ctx context.Context, owner string, status domain.PublicationStatus) ([]T, error) {
	return s.findByOwnerAndStatus(ctx, owner, status)
}

func (s *stubAssetStorage[T]) Filter(ctx context.Context, filters domain.SanitizedFilters) (*domain.FilteredAssets[T], error) {
	return s.filter(ctx, filters)
}

func TestFilterAssetsSanitizesBeforeStorage(t *testing.T) {
	var got domain.SanitizedFilters
	storage := &stubAssetStorage[domain.Parcel]{
		filter: func(_ context.Context, filters domain.SanitizedFilters) (*domain.FilteredAssets[domain.Parcel], error) {
			got = filters
			return &domain.FilteredAssets[domain.Parcel]{}, nil
		},
	}

	uc := NewFilterAssetsUseCase[domain.Parcel](storage)
	_, err := uc.Execute(context.Background(), domain.PublicationFilters{
		SortBy:    "owner; DROP TABLE publications",
		SortOrder: "sideways",
		Limit:     100000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// до хранилища доходит только безопасная спецификация
	if got.Sort.By != domain.SortByPrice || got.Sort.Order != domain.OrderAsc {
		t.Fatalf("sort = %q %q, want defaults", got.Sort.By, got.Sort.Order)
	}
	if got.Pagination.Limit != domain.DefaultLimit {
		t.Fatalf("limit = %d, want %d", got.Pagination.Limit, domain.DefaultLimit)
	}
	if got.AssetType != domain.AssetParcel {
		t.Fatalf("asset type = %q, want parcel", got.AssetType)
	}
}

func TestFilterAssetsPassesResultThrough(t *testing.T) {
	want := &domain.FilteredAssets[domain.Parcel]{
		Assets: []domain.Parcel{{ID: "1,1"}},
		Total:  7,
	}
	storage := &stubAssetStorage[domain.Parcel]{
		filter: func(context.Context, domain.SanitizedFilters) (*domain.FilteredAssets[domain.Parcel], error) {
			return want, nil
		},
	}

	uc := NewFilterAssetsUseCase[domain.Parcel](storage)
	got, err := uc.Execute(context.Background(), domain.PublicationFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("result = %+v, want %+v", got, want)
	}
}

func TestFilterAssetsStorageError(t *testing.T) {
	wantErr := errors.New("query timeout")
	storage := &stubAssetStorage[domain.Parcel]{
		filter: func(context.Context, domain.SanitizedFilters) (*domain.FilteredAssets[domain.Parcel], error) {
			return nil, wantErr
		},
	}

	uc := NewFilterAssetsUseCase[domain.Parcel](storage)
	if _, err := uc.Execute(context.Background(), domain.PublicationFilters{}); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
