package usecases_port

import "context"

type ParcelTokenIDUseCase interface {
	Encode(ctx context.Context, x, y int) (*string, error)
	Decode(ctx context.Context, tokenID string) (*string, error)
}
