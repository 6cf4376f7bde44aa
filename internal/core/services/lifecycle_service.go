package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/ports"
)

const (
	maxApplyRetries  = 3
	expirySweepLimit = 100
)

// LifecycleService applies usage events to bundles. The state transition
// itself is the pure domain.Apply function; this service serializes
// concurrent events on the same bundle with the repository's optimistic
// version check and records accepted events in the ledger.
type LifecycleService struct {
	bundles ports.BundleRepository
	ledger  ports.LedgerRepository
}

func NewLifecycleService(bundles ports.BundleRepository, ledger ports.LedgerRepository) *LifecycleService {
	return &LifecycleService{bundles: bundles, ledger: ledger}
}

// ApplyEvent applies one event to a bundle and returns the updated bundle.
// Rejections come back as *domain.RejectionError with no ledger entry
// written. Idempotent CANCEL/EXPIRE repeats return the current state and
// also write nothing.
func (s *LifecycleService) ApplyEvent(ctx context.Context, bundleID uuid.UUID, event domain.EventType, eventDate time.Time) (*domain.Bundle, error) {
	if eventDate.IsZero() {
		eventDate = time.Now()
	}

	for attempt := 0; attempt < maxApplyRetries; attempt++ {
		bundle, err := s.bundles.GetByID(ctx, bundleID)
		if err != nil {
			return nil, err
		}

		transition, err := domain.Apply(bundle.Status, bundle.RemainingUses, bundle.Quota, event)
		if err != nil {
			return nil, err
		}

		if transition.Noop {
			return bundle, nil
		}

		_, err = s.bundles.ApplyTransition(ctx, bundle.ID, transition.Status, transition.RemainingUses, bundle.Version, event, eventDate)
		if errors.Is(err, ports.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		bundle.Status = transition.Status
		bundle.RemainingUses = transition.RemainingUses
		bundle.Version++
		return bundle, nil
	}

	return nil, fmt.Errorf("gave up after %d attempts: %w", maxApplyRetries, ports.ErrVersionConflict)
}

func (s *LifecycleService) GetBundle(ctx context.Context, bundleID uuid.UUID) (*domain.Bundle, error) {
	return s.bundles.GetByID(ctx, bundleID)
}

// History returns the bundle's ledger in replay order.
func (s *LifecycleService) History(ctx context.Context, bundleID uuid.UUID) ([]domain.UsageEvent, error) {
	return s.ledger.History(ctx, bundleID)
}

// VerifyReplay replays the bundle's ledger from its creation state and
// reports any divergence from the stored status and remaining uses.
func (s *LifecycleService) VerifyReplay(ctx context.Context, bundleID uuid.UUID) error {
	bundle, err := s.bundles.GetByID(ctx, bundleID)
	if err != nil {
		return err
	}

	history, err := s.ledger.History(ctx, bundleID)
	if err != nil {
		return err
	}

	status, remaining, err := domain.Replay(bundle.Quota, history)
	if err != nil {
		return err
	}

	if status != bundle.Status || remaining != bundle.RemainingUses {
		return fmt.Errorf("replay mismatch for bundle %s: ledger says %s/%d, record says %s/%d",
			bundle.ID, status, remaining, bundle.Status, bundle.RemainingUses)
	}

	return nil
}

// RunExpirySweeper expires ACTIVE bundles past their validity window by
// pushing EXPIRE events through the normal lifecycle path.
func (s *LifecycleService) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Expiry sweeper started: checking every %s", interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Expiry sweeper stopped.")
			return
		case <-ticker.C:
			s.sweepExpired(ctx)
		}
	}
}

func (s *LifecycleService) sweepExpired(ctx context.Context) {
	ids, err := s.bundles.GetExpired(ctx, time.Now(), expirySweepLimit)
	if err != nil {
		log.Printf("Error fetching expired bundles: %v", err)
		return
	}

	if len(ids) == 0 {
		return
	}

	log.Printf("Found %d bundles past their validity window. Expiring...", len(ids))

	for _, id := range ids {
		if _, err := s.ApplyEvent(ctx, id, domain.EventExpire, time.Now()); err != nil {
			var rejection *domain.RejectionError
			if errors.As(err, &rejection) {
				// Already terminal; nothing to do.
				continue
			}
			log.Printf("Failed to expire bundle %s: %v", id, err)
		} else {
			log.Printf("Bundle %s expired.", id)
		}
	}
}
