package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kioskpos/bundle_service/internal/core/domain"
)

var (
	ErrPackageNotFound  = errors.New("package not found")
	ErrBundleNotFound   = errors.New("bundle not found")
	ErrConsumerNotFound = errors.New("consumer not found")

	// ErrDuplicateIdempotencyKey is returned by Create when another bundle
	// already holds the same idempotency key.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// ErrVersionConflict is returned by ApplyTransition when the optimistic lock
	// fails because the bundle changed since it was read.
	ErrVersionConflict = errors.New("version conflict: bundle was modified by another transaction")
)

type CatalogRepository interface {
	GetBundleType(ctx context.Context, id string) (*domain.BundleType, error)
	ListBundleTypes(ctx context.Context) ([]domain.BundleType, error)
}

type BundleRepository interface {
	Create(ctx context.Context, bundle *domain.Bundle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bundle, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Bundle, error)
	// ApplyTransition commits a state change and its ledger entry in one
	// transaction, so an accepted event can never mutate the bundle without
	// leaving its ledger row. The version check serializes concurrent events
	// on the same bundle.
	ApplyTransition(ctx context.Context, id uuid.UUID, status domain.BundleStatus, remainingUses int, currentVersion int, eventType domain.EventType, eventDate time.Time) (*domain.UsageEvent, error)
	GetExpired(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

// LedgerRepository is the read side of the usage ledger. Writes happen only
// through BundleRepository.ApplyTransition, which appends the event in the
// same transaction as the state change.
type LedgerRepository interface {
	History(ctx context.Context, bundleID uuid.UUID) ([]domain.UsageEvent, error)
}

type ConsumerDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Consumer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Consumer, error)
	Create(ctx context.Context, consumer *domain.Consumer) error
}

type PaymentAuthorizer interface {
	Authorize(ctx context.Context, amount int64, method domain.PaymentMethod, reference string) (*domain.Authorization, error)
}

type CompensationPublisher interface {
	PublishCompensation(ctx context.Context, event domain.CompensationEvent) error
}
