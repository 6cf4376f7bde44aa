package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/ports"
)

const (
	idempotencyLockTTL = 30 * time.Second
	catalogCacheTTL    = 5 * time.Minute
)

var (
	ErrUnknownPackage  = errors.New("unknown package")
	ErrInvalidConsumer = errors.New("invalid consumer")
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrPersistenceFailure means the charge went through but the bundle
	// could not be saved. A compensation event has been queued; the caller
	// must not retry blindly with a new idempotency key.
	ErrPersistenceFailure = errors.New("bundle persistence failed after payment, compensation queued")

	// ErrPurchaseInProgress is returned when another call holds the
	// idempotency lock and has not produced a bundle yet.
	ErrPurchaseInProgress = errors.New("purchase with this idempotency key is in progress")
)

type PurchaseRequest struct {
	PackageID      string
	Consumer       ConsumerRef
	PaymentMethod  domain.PaymentMethod
	IdempotencyKey string
}

type PurchaseService struct {
	catalog       ports.CatalogRepository
	bundles       ports.BundleRepository
	resolver      *ConsumerResolver
	payments      ports.PaymentAuthorizer
	compensations ports.CompensationPublisher
	redisClient   *redis.Client
}

func NewPurchaseService(
	catalog ports.CatalogRepository,
	bundles ports.BundleRepository,
	resolver *ConsumerResolver,
	payments ports.PaymentAuthorizer,
	compensations ports.CompensationPublisher,
	redisClient *redis.Client,
) *PurchaseService {
	return &PurchaseService{
		catalog:       catalog,
		bundles:       bundles,
		resolver:      resolver,
		payments:      payments,
		compensations: compensations,
		redisClient:   redisClient,
	}
}

// Purchase runs the full kiosk purchase pipeline: catalog lookup, consumer
// resolution, idempotency check, payment authorization, bundle creation.
// A retried request with the same idempotency key returns the bundle the
// first request produced, without charging again.
func (s *PurchaseService) Purchase(ctx context.Context, req PurchaseRequest) (*domain.Bundle, error) {
	if req.IdempotencyKey == "" {
		return nil, errors.New("idempotency key is required")
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("unsupported payment method %q", req.PaymentMethod)
	}

	bundleType, err := s.lookupBundleType(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, ports.ErrPackageNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, req.PackageID)
		}
		return nil, err
	}
	if bundleType.Quota <= 0 {
		return nil, fmt.Errorf("package %s has no session quota", bundleType.ID)
	}

	consumer, err := s.resolver.Resolve(ctx, req.Consumer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConsumer, err)
	}

	lockKey := "purchase:lock:" + req.IdempotencyKey
	acquired, err := s.redisClient.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire purchase lock: %w", err)
	}
	if !acquired {
		// A concurrent call with the same key got here first. If it already
		// produced a bundle, that bundle is the answer; otherwise the kiosk
		// retries once the lock expires.
		existing, ferr := s.bundles.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if ferr == nil {
			return existing, nil
		}
		if errors.Is(ferr, ports.ErrBundleNotFound) {
			return nil, ErrPurchaseInProgress
		}
		return nil, ferr
	}
	defer s.redisClient.Del(context.WithoutCancel(ctx), lockKey)

	existing, err := s.bundles.FindByIdempotencyKey(ctx, req.IdempotencyKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrBundleNotFound) {
		return nil, err
	}

	// From here on the caller must not be able to abort the pipeline:
	// once authorization is requested, the call resolves through the
	// success, decline or compensation path, never a stranded charge.
	pctx := context.WithoutCancel(ctx)

	auth, err := s.payments.Authorize(pctx, bundleType.Price, req.PaymentMethod, req.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}
	if !auth.Approved {
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, auth.DeclineReason)
	}

	now := time.Now()
	bundle := &domain.Bundle{
		ID:              uuid.New(),
		ConsumerID:      consumer.ID,
		Status:          domain.BundleActive,
		RemainingUses:   bundleType.Quota,
		TypeID:          bundleType.ID,
		TypeName:        bundleType.Name,
		PriceAtPurchase: bundleType.Price,
		Quota:           bundleType.Quota,
		IdempotencyKey:  req.IdempotencyKey,
		Version:         1,
		CreatedAt:       now,
	}
	if bundleType.ValidityDays > 0 {
		bundle.ExpiresAt = now.AddDate(0, 0, bundleType.ValidityDays)
	}

	if err := s.bundles.Create(pctx, bundle); err != nil {
		if errors.Is(err, ports.ErrDuplicateIdempotencyKey) {
			// Backstop for a lock that expired mid-flight: another call
			// already issued the bundle, so this call's charge is the
			// duplicate and must be compensated.
			s.queueCompensation(pctx, req, consumer.ID, bundleType.Price, auth.TransactionID, "duplicate idempotency key")
			if dup, ferr := s.bundles.FindByIdempotencyKey(pctx, req.IdempotencyKey); ferr == nil {
				return dup, nil
			}
			return nil, ErrPersistenceFailure
		}

		log.Printf("CRITICAL: bundle persistence failed after payment (key=%s tx=%s): %v", req.IdempotencyKey, auth.TransactionID, err)
		s.queueCompensation(pctx, req, consumer.ID, bundleType.Price, auth.TransactionID, "bundle persistence failed")
		return nil, ErrPersistenceFailure
	}

	return bundle, nil
}

// ListPackages returns the purchasable catalog.
func (s *PurchaseService) ListPackages(ctx context.Context) ([]domain.BundleType, error) {
	return s.catalog.ListBundleTypes(ctx)
}

func (s *PurchaseService) lookupBundleType(ctx context.Context, packageID string) (*domain.BundleType, error) {
	cacheKey := "catalog:package:" + packageID

	if data, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var bt domain.BundleType
		if jerr := json.Unmarshal([]byte(data), &bt); jerr == nil {
			return &bt, nil
		}
	}

	bt, err := s.catalog.GetBundleType(ctx, packageID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(bt); err == nil {
		s.redisClient.Set(ctx, cacheKey, data, catalogCacheTTL)
	}

	return bt, nil
}

func (s *PurchaseService) queueCompensation(ctx context.Context, req PurchaseRequest, consumerID uuid.UUID, amount int64, transactionID, reason string) {
	event := domain.CompensationEvent{
		IdempotencyKey: req.IdempotencyKey,
		ConsumerID:     consumerID,
		PackageID:      req.PackageID,
		Amount:         amount,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  transactionID,
		Reason:         reason,
		OccurredAt:     time.Now(),
	}

	if err := s.compensations.PublishCompensation(ctx, event); err != nil {
		// Last line of defense: the charge reference must survive in the
		// logs for manual review.
		log.Printf("CRITICAL: failed to publish compensation event (key=%s tx=%s amount=%d): %v", event.IdempotencyKey, event.TransactionID, event.Amount, err)
	}
}
