package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kioskpos/bundle_service/internal/core/domain"
)

func TestApply_TransitionTable(t *testing.T) {
	tests := []struct {
		name          string
		status        domain.BundleStatus
		remaining     int
		quota         int
		event         domain.EventType
		wantStatus    domain.BundleStatus
		wantRemaining int
		wantNoop      bool
		wantRejected  bool
	}{
		{
			name:   "use with several remaining stays active",
			status: domain.BundleActive, remaining: 5, quota: 10, event: domain.EventUse,
			wantStatus: domain.BundleActive, wantRemaining: 4,
		},
		{
			name:   "use of last session terminates the bundle",
			status: domain.BundleActive, remaining: 1, quota: 10, event: domain.EventUse,
			wantStatus: domain.BundleUsed, wantRemaining: 0,
		},
		{
			name:   "refund restores a session",
			status: domain.BundleActive, remaining: 4, quota: 10, event: domain.EventRefund,
			wantStatus: domain.BundleActive, wantRemaining: 5,
		},
		{
			name:   "refund at full quota is rejected",
			status: domain.BundleActive, remaining: 10, quota: 10, event: domain.EventRefund,
			wantRejected: true,
		},
		{
			name:   "expire freezes remaining uses",
			status: domain.BundleActive, remaining: 3, quota: 10, event: domain.EventExpire,
			wantStatus: domain.BundleExpired, wantRemaining: 3,
		},
		{
			name:   "cancel freezes remaining uses",
			status: domain.BundleActive, remaining: 7, quota: 10, event: domain.EventCancel,
			wantStatus: domain.BundleCancelled, wantRemaining: 7,
		},
		{
			name:   "use on a used bundle is rejected",
			status: domain.BundleUsed, remaining: 0, quota: 10, event: domain.EventUse,
			wantRejected: true,
		},
		{
			name:   "refund on an expired bundle is rejected",
			status: domain.BundleExpired, remaining: 3, quota: 10, event: domain.EventRefund,
			wantRejected: true,
		},
		{
			name:   "use on a cancelled bundle is rejected",
			status: domain.BundleCancelled, remaining: 3, quota: 10, event: domain.EventUse,
			wantRejected: true,
		},
		{
			name:   "cancel on a cancelled bundle is an accepted no-op",
			status: domain.BundleCancelled, remaining: 3, quota: 10, event: domain.EventCancel,
			wantStatus: domain.BundleCancelled, wantRemaining: 3, wantNoop: true,
		},
		{
			name:   "expire on an expired bundle is an accepted no-op",
			status: domain.BundleExpired, remaining: 2, quota: 10, event: domain.EventExpire,
			wantStatus: domain.BundleExpired, wantRemaining: 2, wantNoop: true,
		},
		{
			name:   "cancel on a used bundle is rejected",
			status: domain.BundleUsed, remaining: 0, quota: 10, event: domain.EventCancel,
			wantRejected: true,
		},
		{
			name:   "expire on a cancelled bundle is rejected",
			status: domain.BundleCancelled, remaining: 3, quota: 10, event: domain.EventExpire,
			wantRejected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.Apply(tt.status, tt.remaining, tt.quota, tt.event)

			if tt.wantRejected {
				var rejection *domain.RejectionError
				assert.ErrorAs(t, err, &rejection)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantRemaining, got.RemainingUses)
			assert.Equal(t, tt.wantNoop, got.Noop)
		})
	}
}

func TestApply_UseNeverGoesNegative(t *testing.T) {
	_, err := domain.Apply(domain.BundleActive, 0, 10, domain.EventUse)

	var rejection *domain.RejectionError
	assert.ErrorAs(t, err, &rejection)
}

func TestApply_CancelIsIdempotent(t *testing.T) {
	first, err := domain.Apply(domain.BundleActive, 4, 10, domain.EventCancel)
	assert.NoError(t, err)
	assert.False(t, first.Noop)

	second, err := domain.Apply(first.Status, first.RemainingUses, 10, domain.EventCancel)
	assert.NoError(t, err)
	assert.True(t, second.Noop)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.RemainingUses, second.RemainingUses)
}

func event(seq int64, eventType domain.EventType) domain.UsageEvent {
	return domain.UsageEvent{
		ID:        uuid.New(),
		BundleID:  uuid.New(),
		Seq:       seq,
		EventType: eventType,
		EventDate: time.Now(),
	}
}

func TestReplay_ReproducesCurrentState(t *testing.T) {
	ledger := []domain.UsageEvent{
		event(1, domain.EventUse),
		event(2, domain.EventUse),
		event(3, domain.EventRefund),
		event(4, domain.EventUse),
		event(5, domain.EventCancel),
	}

	status, remaining, err := domain.Replay(3, ledger)

	assert.NoError(t, err)
	assert.Equal(t, domain.BundleCancelled, status)
	assert.Equal(t, 1, remaining)
}

func TestReplay_FullConsumption(t *testing.T) {
	quota := 10
	ledger := make([]domain.UsageEvent, 0, quota)
	for i := 0; i < quota; i++ {
		ledger = append(ledger, event(int64(i+1), domain.EventUse))
	}

	status, remaining, err := domain.Replay(quota, ledger)

	assert.NoError(t, err)
	assert.Equal(t, domain.BundleUsed, status)
	assert.Equal(t, 0, remaining)

	_, err = domain.Apply(status, remaining, quota, domain.EventUse)
	var rejection *domain.RejectionError
	assert.ErrorAs(t, err, &rejection)
}

func TestReplay_RejectsInconsistentLedger(t *testing.T) {
	ledger := []domain.UsageEvent{
		event(1, domain.EventUse),
		event(2, domain.EventUse),
	}

	_, _, err := domain.Replay(1, ledger)

	assert.Error(t, err)
}
