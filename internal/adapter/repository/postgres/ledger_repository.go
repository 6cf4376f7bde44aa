package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kioskpos/bundle_service/internal/core/domain"
)

// LedgerRepository is the append-only store of bundle usage events.
// There is deliberately no update or delete: the ledger is the audit
// history and replay source for every bundle.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// insertUsageEvent is the only write path into the ledger. It runs inside
// the bundle state transaction so an event row and its state change commit
// or fail together.
func insertUsageEvent(ctx context.Context, tx *sql.Tx, bundleID uuid.UUID, eventType domain.EventType, eventDate time.Time) (*domain.UsageEvent, error) {
	query := `
	INSERT INTO bundle_usage_events (id, bundle_id, event_type, event_date)
	VALUES ($1, $2, $3, $4)
	RETURNING seq
	`

	event := domain.UsageEvent{
		ID:        uuid.New(),
		BundleID:  bundleID,
		EventType: eventType,
		EventDate: eventDate,
	}

	err := tx.QueryRowContext(ctx, query, event.ID, event.BundleID, event.EventType, event.EventDate).Scan(&event.Seq)
	if err != nil {
		return nil, fmt.Errorf("failed to append usage event: %w", err)
	}

	return &event, nil
}

// History returns all events for a bundle ordered by seq, which is the
// insertion order and breaks event_date ties under clock skew.
func (r *LedgerRepository) History(ctx context.Context, bundleID uuid.UUID) ([]domain.UsageEvent, error) {
	query := `
	SELECT id, bundle_id, seq, event_type, event_date
	FROM bundle_usage_events
	WHERE bundle_id = $1
	ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query, bundleID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var events []domain.UsageEvent
	for rows.Next() {
		var ev domain.UsageEvent
		if err := rows.Scan(&ev.ID, &ev.BundleID, &ev.Seq, &ev.EventType, &ev.EventDate); err != nil {
			return nil, err
		}

		events = append(events, ev)
	}

	return events, rows.Err()
}
