package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/ports"
)

type ConsumerRepository struct {
	db *sql.DB
}

func NewConsumerRepository(db *sql.DB) *ConsumerRepository {
	return &ConsumerRepository{db: db}
}

func (r *ConsumerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Consumer, error) {
	query := `
	SELECT id, first_name, last_name, email, phone, status, payment_status
	FROM consumers
	WHERE id = $1
	`

	return r.scanConsumer(r.db.QueryRowContext(ctx, query, id))
}

func (r *ConsumerRepository) FindByEmail(ctx context.Context, email string) (*domain.Consumer, error) {
	query := `
	SELECT id, first_name, last_name, email, phone, status, payment_status
	FROM consumers
	WHERE email = $1
	`

	return r.scanConsumer(r.db.QueryRowContext(ctx, query, email))
}

func (r *ConsumerRepository) Create(ctx context.Context, consumer *domain.Consumer) error {
	query := `
	INSERT INTO consumers (id, first_name, last_name, email, phone, status, payment_status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var phone sql.NullString
	if consumer.Phone != "" {
		phone = sql.NullString{String: consumer.Phone, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		consumer.ID,
		consumer.FirstName,
		consumer.LastName,
		consumer.Email,
		phone,
		consumer.Status,
		consumer.PaymentStatus,
	)

	if err != nil {
		return fmt.Errorf("failed to insert consumer: %w", err)
	}

	return nil
}

func (r *ConsumerRepository) scanConsumer(row *sql.Row) (*domain.Consumer, error) {
	var consumer domain.Consumer
	var phone sql.NullString

	err := row.Scan(
		&consumer.ID,
		&consumer.FirstName,
		&consumer.LastName,
		&consumer.Email,
		&phone,
		&consumer.Status,
		&consumer.PaymentStatus,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ports.ErrConsumerNotFound
		}

		return nil, err
	}

	if phone.Valid {
		consumer.Phone = phone.String
	}

	return &consumer, nil
}
