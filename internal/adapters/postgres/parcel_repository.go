package postgres

import (
	"context"
	"fmt"
	"time"

	"marketplace-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ParcelRepository реализует специфичные для участков выборки, которые не
// ложатся в обобщенный репозиторий ассетов: карта, диапазоны координат,
// преобразования token_id, залоги.
type ParcelRepository struct {
	pool *pgxpool.Pool
}

func NewParcelRepository(pool *pgxpool.Pool) (*ParcelRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ParcelRepository{pool: pool}, nil
}

// InRange - участки прямоугольника карты вместе с последней публикацией
// каждого. LEFT JOIN по is_latest вместо row_to_json: карта читает тысячи
// строк за раз, и плоская выборка здесь дешевле. Истекшие публикации тут
// не отсеиваются, этим занимается usecase со своими часами.
func (r *ParcelRepository) InRange(ctx context.Context, min, max domain.Coordinate) ([]domain.Parcel, error) {
	parcelCols := prefixColumns("a", domain.SanitizedParcelColumns())
	pubCols := prefixColumns("pub", domain.SanitizedPublicationColumns())

	query := fmt.Sprintf(
		`SELECT %s, %s
		FROM %s AS a
		LEFT JOIN %s AS pub ON pub.asset_id = a.id AND pub.is_latest = TRUE
		WHERE a.x BETWEEN $1 AND $2 AND a.y BETWEEN $3 AND $4
		ORDER BY a.x ASC, a.y DESC`,
		parcelCols, pubCols, parcelsTable, publicationsTable,
	)

	rows, err := r.pool.Query(ctx, query, min.X, max.X, min.Y, max.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to query parcels in range: %w", err)
	}
	defer rows.Close()

	parcels := make([]domain.Parcel, 0)
	for rows.Next() {
		parcel, err := scanParcelWithJoinedPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parcel row: %w", err)
		}
		parcels = append(parcels, parcel)
	}
	return parcels, rows.Err()
}

// EncodeTokenID - token_id участка по координатам, nil если участка нет.
func (r *ParcelRepository) EncodeTokenID(ctx context.Context, x, y int) (*string, error) {
	query := fmt.Sprintf("SELECT token_id FROM %s WHERE x = $1 AND y = $2 LIMIT 1", parcelsTable)
	return r.queryNullableString(ctx, query, x, y)
}

// DecodeTokenID - id участка по token_id, nil если участка нет.
func (r *ParcelRepository) DecodeTokenID(ctx context.Context, tokenID string) (*string, error) {
	query := fmt.Sprintf("SELECT id FROM %s WHERE token_id = $1 LIMIT 1", parcelsTable)
	return r.queryNullableString(ctx, query, tokenID)
}

// FindOwneable - обычная земля: участки, не закрепленные за районами.
func (r *ParcelRepository) FindOwneable(ctx context.Context) ([]domain.Parcel, error) {
	return r.findByDistrictPresence(ctx, "a.district_id IS NULL")
}

// FindLandmarks - участки районов (дороги, плазы и прочие общественные зоны).
func (r *ParcelRepository) FindLandmarks(ctx context.Context) ([]domain.Parcel, error) {
	return r.findByDistrictPresence(ctx, "a.district_id IS NOT NULL")
}

// FindWithActiveMortgageByBorrower - участки, под которые у заемщика
// есть залог в статусе pending или ongoing.
func (r *ParcelRepository) FindWithActiveMortgageByBorrower(ctx context.Context, borrower string) ([]domain.Parcel, error) {
	query := fmt.Sprintf(
		"SELECT %s, (%s) AS publication FROM %s AS a WHERE EXISTS (%s)",
		prefixColumns("a", domain.SanitizedParcelColumns()),
		latestPublicationJSON("a"),
		parcelsTable,
		existsActiveMortgageOf("a", 1),
	)

	rows, err := r.pool.Query(ctx, query, borrower)
	if err != nil {
		return nil, fmt.Errorf("failed to query mortgaged parcels: %w", err)
	}
	defer rows.Close()

	parcels := make([]domain.Parcel, 0)
	for rows.Next() {
		parcel, err := scanDecoratedParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parcel row: %w", err)
		}
		parcels = append(parcels, parcel)
	}
	return parcels, rows.Err()
}

func (r *ParcelRepository) findByDistrictPresence(ctx context.Context, condition string) ([]domain.Parcel, error) {
	query := fmt.Sprintf(
		"SELECT %s, (%s) AS publication FROM %s AS a WHERE %s",
		prefixColumns("a", domain.SanitizedParcelColumns()),
		latestPublicationJSON("a"),
		parcelsTable,
		condition,
	)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query map parcels: %w", err)
	}
	defer rows.Close()

	parcels := make([]domain.Parcel, 0)
	for rows.Next() {
		parcel, err := scanDecoratedParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parcel row: %w", err)
		}
		parcels = append(parcels, parcel)
	}
	return parcels, rows.Err()
}

// scanParcelWithJoinedPublication читает строку плоской выборки: колонки
// участка, за ними колонки публикации из LEFT JOIN. Все поля публикации
// сканируются в указатели, потому что JOIN мог не сработать; признак
// наличия публикации - ненулевой tx_hash.
func scanParcelWithJoinedPublication(rows pgx.Rows) (domain.Parcel, error) {
	var p domain.Parcel
	var (
		txHash             *string
		txStatus           *string
		assetID            *string
		assetType          *string
		pubOwner           *string
		price              *float64
		expiresAt          *time.Time
		status             *string
		blockNumber        *int64
		blockTimeCreatedAt *time.Time
		blockTimeUpdatedAt *time.Time
		contractID         *string
		marketplaceAddress *string
	)

	err := rows.Scan(
		&p.ID, &p.X, &p.Y, &p.TokenID, &p.Owner, &p.UpdateOperator, &p.Data,
		&p.DistrictID, &p.EstateID, &p.Tags, &p.AuctionPrice, &p.AuctionOwner,
		&p.LastTransferredAt,
		&txHash, &txStatus, &assetID, &assetType, &pubOwner, &price,
		&expiresAt, &status, &blockNumber, &blockTimeCreatedAt,
		&blockTimeUpdatedAt, &contractID, &marketplaceAddress,
	)
	if err != nil {
		return domain.Parcel{}, err
	}

	if txHash != nil {
		p.Publication = &domain.Publication{
			TxHash:             *txHash,
			TxStatus:           domain.TxStatus(*txStatus),
			AssetID:            *assetID,
			AssetType:          domain.AssetType(*assetType),
			Owner:              *pubOwner,
			Price:              *price,
			ExpiresAt:          *expiresAt,
			Status:             domain.PublicationStatus(*status),
			BlockNumber:        *blockNumber,
			BlockTimeCreatedAt: blockTimeCreatedAt,
			BlockTimeUpdatedAt: blockTimeUpdatedAt,
			ContractID:         *contractID,
			MarketplaceAddress: *marketplaceAddress,
			// Выборка карты соединяется только по is_latest = TRUE.
			IsLatest: true,
		}
	}
	return p, nil
}

func (r *ParcelRepository) queryNullableString(ctx context.Context, query string, args ...interface{}) (*string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parcels: %w", err)
	}
	defer rows.Close()

	return scanNullableString(rows)
}

// scanNullableString читает первую строку с единственной nullable-колонкой.
// Отсутствие строки и NULL для вызывающего неразличимы: участок без
// назначенного токена существует, но значения у него нет.
func scanNullableString(rows pgx.Rows) (*string, error) {
	if !rows.Next() {
		return nil, rows.Err()
	}
	var value *string
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("failed to scan parcel row: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return value, nil
}
