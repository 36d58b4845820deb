package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const (
	parcelsTable = "parcels"
	estatesTable = "estates"
)

// AssetTableConfig - идентичность конкретного типа ассета: имя таблицы,
// тип и разрешенная проекция колонок. Конфигурации объявлены ниже
// константно; из запросов пользователей сюда ничего не попадает.
type AssetTableConfig struct {
	Name      string
	AssetType domain.AssetType
	Columns   []string
}

type rowScanFunc[T any] func(rows pgx.Rows) (T, error)

// AssetRepository - обобщенный фасад чтения ассетов одного типа.
// Композиция вместо наследования: конкретный тип приносит свою
// конфигурацию таблицы и функцию сканирования строки.
type AssetRepository[T any] struct {
	pool *pgxpool.Pool
	cfg  AssetTableConfig
	scan rowScanFunc[T]
}

func NewAssetRepository[T any](pool *pgxpool.Pool, cfg AssetTableConfig, scan rowScanFunc[T]) (*AssetRepository[T], error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	if cfg.Name == "" || len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("asset table config is incomplete")
	}
	return &AssetRepository[T]{pool: pool, cfg: cfg, scan: scan}, nil
}

// NewParcelAssetRepository - репозиторий ассетов-участков.
func NewParcelAssetRepository(pool *pgxpool.Pool) (*AssetRepository[domain.Parcel], error) {
	return NewAssetRepository(pool, AssetTableConfig{
		Name:      parcelsTable,
		AssetType: domain.AssetParcel,
		Columns:   domain.SanitizedParcelColumns(),
	}, scanDecoratedParcel)
}

// NewEstateAssetRepository - репозиторий ассетов-эстейтов.
func NewEstateAssetRepository(pool *pgxpool.Pool) (*AssetRepository[domain.Estate], error) {
	return NewAssetRepository(pool, AssetTableConfig{
		Name:      estatesTable,
		AssetType: domain.AssetEstate,
		Columns:   domain.SanitizedEstateColumns(),
	}, scanDecoratedEstate)
}

// FindByID возвращает один ассет, декорированный последней публикацией,
// либо nil, если записи нет.
func (r *AssetRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf(
		"SELECT %s, (%s) AS publication FROM %s AS a WHERE a.id = $1 LIMIT 1",
		prefixColumns("a", r.cfg.Columns), latestPublicationJSON("a"), r.cfg.Name,
	)
	return r.queryOne(ctx, query, id)
}

// FindByTokenID - то же, но по ончейн-идентификатору.
func (r *AssetRepository[T]) FindByTokenID(ctx context.Context, tokenID string) (*T, error) {
	query := fmt.Sprintf(
		"SELECT %s, (%s) AS publication FROM %s AS a WHERE a.token_id = $1 LIMIT 1",
		prefixColumns("a", r.cfg.Columns), latestPublicationJSON("a"), r.cfg.Name,
	)
	return r.queryOne(ctx, query, tokenID)
}

// FindByIDs - пакетная выборка. Пустой вход дает пустой выход без
// похода в базу: "IN ()" в разных движках значит разное, и ни один
// вариант нам не нужен.
func (r *AssetRepository[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	query := fmt.Sprintf(
		"SELECT %s, (%s) AS publication FROM %s AS a WHERE a.id = ANY($1)",
		prefixColumns("a", r.cfg.Columns), latestPublicationJSON("a"), r.cfg.Name,
	)
	return r.queryMany(ctx, query, ids)
}

// FindByTokenIDs - пакетная выборка по ончейн-идентификаторам.
func (r *AssetRepository[T]) FindByTokenIDs(ctx context.Context, tokenIDs []string) ([]T, error) {
	if len(tokenIDs) == 0 {
		return []T{}, nil
	}
	query := fmt.Sprintf(
		"SELECT %s, (%s) AS publication FROM %s AS a WHERE a.token_id = ANY($1)",
		prefixColumns("a", r.cfg.Columns), latestPublicationJSON("a"), r.cfg.Name,
	)
	return r.queryMany(ctx, query, tokenIDs)
}

// FindByOwner - все ассеты владельца с декорацией последней публикацией.
func (r *AssetRepository[T]) FindByOwner(ctx context.Context, owner string) ([]T, error) {
	query := fmt.Sprintf(
		"SELECT %s, (%s) AS publication FROM %s AS a WHERE a.owner = $1",
		prefixColumns("a", r.cfg.Columns), latestPublicationJSON("a"), r.cfg.Name,
	)
	return r.queryMany(ctx, query, owner)
}

// FindByOwnerAndStatus - ассеты владельца, у которых есть публикация в
// заданном статусе и с ненулевым tx_hash (объявления, так и не попавшие
// в блокчейн, отсекаются). DISTINCT ON схлопывает дубли по паре
// (ассет, статус), свежая публикация выигрывает.
func (r *AssetRepository[T]) FindByOwnerAndStatus(ctx context.Context, owner string, status domain.PublicationStatus) ([]T, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT ON (a.id, pub.status) %s, row_to_json(pub.*) AS publication
		FROM %s AS a
		LEFT JOIN (%s) AS pub ON a.id = pub.asset_id
		WHERE a.owner = $1 AND pub.tx_hash IS NOT NULL
		ORDER BY a.id, pub.status, pub.created_at DESC`,
		prefixColumns("a", r.cfg.Columns), r.cfg.Name, publicationsByStatus(2),
	)
	return r.queryMany(ctx, query, owner, string(status))
}

// buildFilterQuery собирает страницу выдачи и счетчик под ОДНИМ предикатом.
// Разъедутся предикаты - разъедется пагинация, поэтому WHERE строится один
// раз. Чистая функция, выполняет ее Filter.
func buildFilterQuery(cfg AssetTableConfig, f domain.SanitizedFilters) (pageQuery, countQuery string, pageArgs, countArgs []interface{}) {
	qb := newQueryBuilder()
	qb.bind("pub.asset_type = $%d", string(cfg.AssetType))
	qb.whereIsActive("pub")
	qb.whereHasStatus("pub", f.Status)

	base := fmt.Sprintf(
		"FROM %s AS pub JOIN %s AS a ON a.id = pub.asset_id %s",
		publicationsTable, cfg.Name, qb.where(),
	)

	countQuery = "SELECT COUNT(*) " + base
	countArgs = qb.args

	// Колонка и направление сортировки - значения закрытых перечислений
	// из санитайзера, поэтому их можно встраивать в текст.
	pageQuery = fmt.Sprintf(
		"SELECT %s, row_to_json(pub.*) AS publication %s ORDER BY pub.%s %s LIMIT $%d OFFSET $%d",
		prefixColumns("a", cfg.Columns), base, f.Sort.By, f.Sort.Order,
		qb.nextArgID(), qb.nextArgID()+1,
	)
	pageArgs = append(append([]interface{}{}, qb.args...), f.Pagination.Limit, f.Pagination.Offset)

	return pageQuery, countQuery, pageArgs, countArgs
}

// Filter - пагинированная выдача маркетплейса: страница активных публикаций
// данного типа ассета плюс общий счетчик. Оба запроса летят параллельно и
// читают без снапшота: под конкурентной записью total может разойтись со
// страницей на единицы, это принятый компромисс.
func (r *AssetRepository[T]) Filter(ctx context.Context, filters domain.SanitizedFilters) (*domain.FilteredAssets[T], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "AssetRepository",
		"method":     "Filter",
		"asset_type": r.cfg.AssetType,
	})

	pageQuery, countQuery, pageArgs, countArgs := buildFilterQuery(r.cfg, filters)

	var (
		assets []T
		total  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = r.queryMany(gctx, pageQuery, pageArgs...)
		return err
	})
	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, countQuery, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count publications: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		repoLogger.Error("Filter query failed", err, nil)
		return nil, err
	}

	repoLogger.Debug("Filter query finished", port.Fields{"total": total, "page_size": len(assets)})
	return &domain.FilteredAssets[T]{Assets: assets, Total: total}, nil
}

func (r *AssetRepository[T]) queryOne(ctx context.Context, query string, args ...interface{}) (*T, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.cfg.Name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		// Отсутствие записи - не ошибка, решает вызывающий код.
		return nil, rows.Err()
	}
	asset, err := r.scan(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s row: %w", r.cfg.Name, err)
	}
	return &asset, rows.Err()
}

func (r *AssetRepository[T]) queryMany(ctx context.Context, query string, args ...interface{}) ([]T, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.cfg.Name, err)
	}
	defer rows.Close()

	assets := make([]T, 0)
	for rows.Next() {
		asset, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.cfg.Name, err)
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// unmarshalPublication разбирает row_to_json-декорацию; NULL дает nil.
func unmarshalPublication(data []byte) (*domain.Publication, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var pub domain.Publication
	if err := json.Unmarshal(data, &pub); err != nil {
		return nil, fmt.Errorf("failed to unmarshal publication json: %w", err)
	}
	return &pub, nil
}

func scanDecoratedParcel(rows pgx.Rows) (domain.Parcel, error) {
	var p domain.Parcel
	var pubJSON []byte

	err := rows.Scan(
		&p.ID, &p.X, &p.Y, &p.TokenID, &p.Owner, &p.UpdateOperator, &p.Data,
		&p.DistrictID, &p.EstateID, &p.Tags, &p.AuctionPrice, &p.AuctionOwner,
		&p.LastTransferredAt, &pubJSON,
	)
	if err != nil {
		return domain.Parcel{}, err
	}

	p.Publication, err = unmarshalPublication(pubJSON)
	return p, err
}

func scanDecoratedEstate(rows pgx.Rows) (domain.Estate, error) {
	var e domain.Estate
	var pubJSON []byte

	err := rows.Scan(&e.ID, &e.TokenID, &e.Owner, &e.Data, &e.LastTransferredAt, &pubJSON)
	if err != nil {
		return domain.Estate{}, err
	}

	e.Publication, err = unmarshalPublication(pubJSON)
	return e, err
}
