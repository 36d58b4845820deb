package postgres

import (
	"context"
	"fmt"
	"strings"

	"marketplace-service/internal/core/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const districtsTable = "districts"

// DistrictRepository читает справочник районов.
type DistrictRepository struct {
	pool *pgxpool.Pool
}

func NewDistrictRepository(pool *pgxpool.Pool) (*DistrictRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &DistrictRepository{pool: pool}, nil
}

// FindEnabled - все видимые районы. Проекция урезана тем же черным
// списком, что и наружный API: служебные колонки наружу не выходят.
func (r *DistrictRepository) FindEnabled(ctx context.Context) ([]domain.District, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE disabled = FALSE ORDER BY priority ASC",
		strings.Join(domain.SanitizedDistrictColumns(), ", "), districtsTable,
	)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %w", err)
	}
	defer rows.Close()

	districts := make([]domain.District, 0)
	for rows.Next() {
		var d domain.District
		err := rows.Scan(
			&d.ID, &d.Name, &d.Description, &d.Link, &d.Public,
			&d.ParcelCount, &d.Priority, &d.Center,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan district row: %w", err)
		}
		districts = append(districts, d)
	}
	return districts, rows.Err()
}
