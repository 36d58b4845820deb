package usecases_port

import "context"

type GetAssetUseCase[T any] interface {
	ByID(ctx context.Context, id string) (*T, error)
	ByTokenID(ctx context.Context, tokenID string) (*T, error)
}
