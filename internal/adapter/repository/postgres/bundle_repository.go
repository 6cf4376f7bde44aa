package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/ports"
)

type BundleRepository struct {
	db *sql.DB
}

func NewBundleRepository(db *sql.DB) *BundleRepository {
	return &BundleRepository{db: db}
}

func (r *BundleRepository) Create(ctx context.Context, bundle *domain.Bundle) error {
	query := `
	INSERT INTO bundles (id, consumer_id, status, remaining_uses, type_id, type_name, price_at_purchase, quota, idempotency_key, version, created_at, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var expiresAt sql.NullTime
	if !bundle.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: bundle.ExpiresAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		bundle.ID,
		bundle.ConsumerID,
		bundle.Status,
		bundle.RemainingUses,
		bundle.TypeID,
		bundle.TypeName,
		bundle.PriceAtPurchase,
		bundle.Quota,
		bundle.IdempotencyKey,
		bundle.Version,
		bundle.CreatedAt,
		expiresAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ports.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to insert bundle: %w", err)
	}

	return nil
}

func (r *BundleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bundle, error) {
	query := `
	SELECT id, consumer_id, status, remaining_uses, type_id, type_name, price_at_purchase, quota, idempotency_key, version, created_at, expires_at
	FROM bundles
	WHERE id = $1
	`

	return r.scanBundle(r.db.QueryRowContext(ctx, query, id))
}

func (r *BundleRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Bundle, error) {
	query := `
	SELECT id, consumer_id, status, remaining_uses, type_id, type_name, price_at_purchase, quota, idempotency_key, version, created_at, expires_at
	FROM bundles
	WHERE idempotency_key = $1
	`

	return r.scanBundle(r.db.QueryRowContext(ctx, query, key))
}

func (r *BundleRepository) ApplyTransition(ctx context.Context, id uuid.UUID, status domain.BundleStatus, remainingUses int, currentVersion int, eventType domain.EventType, eventDate time.Time) (*domain.UsageEvent, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	query := `
	UPDATE bundles
	SET status = $1,
		remaining_uses = $2,
		version = version + 1
	WHERE id = $3 AND version = $4
	`

	result, err := tx.ExecContext(ctx, query, status, remainingUses, id, currentVersion)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		return nil, ports.ErrVersionConflict
	}

	event, err := insertUsageEvent(ctx, tx, id, eventType, eventDate)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	return event, nil
}

func (r *BundleRepository) GetExpired(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	query := `
	SELECT id FROM bundles
	WHERE status = 'ACTIVE' AND expires_at IS NOT NULL AND expires_at < $1
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *BundleRepository) scanBundle(row *sql.Row) (*domain.Bundle, error) {
	var bundle domain.Bundle
	var expiresAt sql.NullTime

	err := row.Scan(
		&bundle.ID,
		&bundle.ConsumerID,
		&bundle.Status,
		&bundle.RemainingUses,
		&bundle.TypeID,
		&bundle.TypeName,
		&bundle.PriceAtPurchase,
		&bundle.Quota,
		&bundle.IdempotencyKey,
		&bundle.Version,
		&bundle.CreatedAt,
		&expiresAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ports.ErrBundleNotFound
		}

		return nil, err
	}

	if expiresAt.Valid {
		bundle.ExpiresAt = expiresAt.Time
	}

	return &bundle, nil
}
