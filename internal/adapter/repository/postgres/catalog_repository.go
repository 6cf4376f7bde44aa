package postgres

import (
	"context"
	"database/sql"

	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/ports"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetBundleType(ctx context.Context, id string) (*domain.BundleType, error) {
	query := `
	SELECT id, name, price, quota, validity_days
	FROM bundle_types
	WHERE id = $1
	`

	var bt domain.BundleType
	err := r.db.QueryRowContext(ctx, query, id).Scan(&bt.ID, &bt.Name, &bt.Price, &bt.Quota, &bt.ValidityDays)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ports.ErrPackageNotFound
		}

		return nil, err
	}

	return &bt, nil
}

func (r *CatalogRepository) ListBundleTypes(ctx context.Context) ([]domain.BundleType, error) {
	query := `
	SELECT id, name, price, quota, validity_days
	FROM bundle_types
	ORDER BY price
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var types []domain.BundleType
	for rows.Next() {
		var bt domain.BundleType
		if err := rows.Scan(&bt.ID, &bt.Name, &bt.Price, &bt.Quota, &bt.ValidityDays); err != nil {
			return nil, err
		}

		types = append(types, bt)
	}

	return types, rows.Err()
}
