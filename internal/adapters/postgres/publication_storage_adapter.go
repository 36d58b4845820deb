package postgres

import (
	"context"
	"fmt"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PublicationStorageAdapter - единственный писатель в таблицу публикаций.
// Вся запись идет через него, чтобы инвариант "не больше одной is_latest
// на ассет" держался транзакционно.
type PublicationStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewPublicationStorageAdapter(pool *pgxpool.Pool) (*PublicationStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PublicationStorageAdapter{pool: pool}, nil
}

// Save записывает публикацию и делает ее последней по своему ассету.
// Сброс старого флага и вставка идут в одной транзакции: между ними не
// существует момента, когда у ассета ноль или две is_latest-записи.
// Повторная доставка того же события (тот же tx_hash) безопасна.
func (a *PublicationStorageAdapter) Save(ctx context.Context, pub domain.Publication) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PublicationStorageAdapter",
		"tx_hash":   pub.TxHash,
		"asset_id":  pub.AssetID,
	})

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	clearQuery := fmt.Sprintf(
		"UPDATE %s SET is_latest = FALSE, updated_at = NOW() WHERE asset_id = $1 AND is_latest = TRUE AND tx_hash != $2",
		publicationsTable,
	)
	if _, err := tx.Exec(ctx, clearQuery, pub.AssetID, pub.TxHash); err != nil {
		return fmt.Errorf("failed to clear previous latest publication: %w", err)
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (
			tx_hash, tx_status, asset_id, asset_type, owner, price, expires_at,
			status, block_number, block_time_created_at, block_time_updated_at,
			contract_id, marketplace_address, is_latest, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE, NOW(), NOW())
		ON CONFLICT (tx_hash) DO UPDATE SET
			tx_status = EXCLUDED.tx_status,
			status = EXCLUDED.status,
			block_number = EXCLUDED.block_number,
			block_time_updated_at = EXCLUDED.block_time_updated_at,
			is_latest = TRUE,
			updated_at = NOW()`,
		publicationsTable,
	)
	_, err = tx.Exec(ctx, insertQuery,
		pub.TxHash, pub.TxStatus, pub.AssetID, pub.AssetType, pub.Owner,
		pub.Price, pub.ExpiresAt, pub.Status, pub.BlockNumber,
		pub.BlockTimeCreatedAt, pub.BlockTimeUpdatedAt,
		pub.ContractID, pub.MarketplaceAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to insert publication: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit publication transaction: %w", err)
	}

	logger.Debug("Publication saved as latest", nil)
	return nil
}

// UpdateStatus меняет состояние уже записанной публикации по ее tx_hash.
// Флаг is_latest не трогается: продажа или отмена не делают запись
// "более свежей", чем она была.
func (a *PublicationStorageAdapter) UpdateStatus(ctx context.Context, update domain.PublicationStatusUpdate) error {
	query := fmt.Sprintf(
		`UPDATE %s SET status = $1, tx_status = $2, block_time_updated_at = $3, updated_at = NOW() WHERE tx_hash = $4`,
		publicationsTable,
	)

	tag, err := a.pool.Exec(ctx, query, update.Status, update.TxStatus, update.BlockTimeUpdatedAt, update.TxHash)
	if err != nil {
		return fmt.Errorf("failed to update publication status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("publication with tx_hash %s not found", update.TxHash)
	}
	return nil
}
