package usecases_port

import (
	"context"

	"marketplace-service/internal/core/domain"
)

type SavePublicationPort interface {
	Execute(ctx context.Context, publication domain.Publication) error
}

type ChangePublicationStatusPort interface {
	Execute(ctx context.Context, update domain.PublicationStatusUpdate) error
}
