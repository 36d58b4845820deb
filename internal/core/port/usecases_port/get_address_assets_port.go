package usecases_port

import "context"

type GetAddressAssetsUseCase[T any] interface {
	// Execute возвращает ассеты владельца; непустой status сужает выдачу
	// до ассетов с публикацией в этом статусе.
	Execute(ctx context.Context, owner string, status string) ([]T, error)
}
