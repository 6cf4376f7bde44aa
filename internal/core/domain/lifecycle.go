package domain

import "fmt"

// Transition is the accepted outcome of applying an event to a bundle.
// Noop marks the idempotent CANCEL-on-CANCELLED / EXPIRE-on-EXPIRED cases:
// accepted, state unchanged, no ledger entry to be written.
type Transition struct {
	Status        BundleStatus
	RemainingUses int
	Noop          bool
}

// RejectionError is returned when the state machine refuses an event.
// It is a normal branch for callers, not a fault.
type RejectionError struct {
	Status BundleStatus
	Event  EventType
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("event %s rejected in status %s: %s", e.Event, e.Status, e.Reason)
}

func reject(status BundleStatus, event EventType, reason string) (Transition, error) {
	return Transition{}, &RejectionError{Status: status, Event: event, Reason: reason}
}

// Apply computes the next bundle state for an incoming event. It is a pure
// function of (status, remainingUses, quota, event); replaying a ledger
// through it must reproduce the bundle's current state exactly.
func Apply(status BundleStatus, remainingUses, quota int, event EventType) (Transition, error) {
	switch status {
	case BundleActive:
		switch event {
		case EventUse:
			if remainingUses <= 0 {
				return reject(status, event, "no remaining uses")
			}
			next := Transition{Status: BundleActive, RemainingUses: remainingUses - 1}
			if next.RemainingUses == 0 {
				next.Status = BundleUsed
			}
			return next, nil
		case EventRefund:
			if remainingUses >= quota {
				return reject(status, event, "refund exceeds purchase quota")
			}
			return Transition{Status: BundleActive, RemainingUses: remainingUses + 1}, nil
		case EventExpire:
			return Transition{Status: BundleExpired, RemainingUses: remainingUses}, nil
		case EventCancel:
			return Transition{Status: BundleCancelled, RemainingUses: remainingUses}, nil
		}

	case BundleUsed, BundleExpired, BundleCancelled:
		switch event {
		case EventUse, EventRefund:
			return reject(status, event, "terminal state, no further consumption")
		case EventCancel:
			if status == BundleCancelled {
				return Transition{Status: status, RemainingUses: remainingUses, Noop: true}, nil
			}
			return reject(status, event, "terminal state")
		case EventExpire:
			if status == BundleExpired {
				return Transition{Status: status, RemainingUses: remainingUses, Noop: true}, nil
			}
			return reject(status, event, "terminal state")
		}
	}

	return reject(status, event, "unknown status or event")
}

// Replay folds an ordered ledger over the creation state. A ledger only
// contains accepted, state-changing events, so any rejection or no-op during
// replay means the ledger is inconsistent with the state machine.
func Replay(quota int, events []UsageEvent) (BundleStatus, int, error) {
	status := BundleActive
	remaining := quota

	for _, ev := range events {
		tr, err := Apply(status, remaining, quota, ev.EventType)
		if err != nil {
			return status, remaining, fmt.Errorf("replay stopped at seq %d: %w", ev.Seq, err)
		}
		if tr.Noop {
			return status, remaining, fmt.Errorf("replay stopped at seq %d: ledger holds a no-op %s", ev.Seq, ev.EventType)
		}
		status = tr.Status
		remaining = tr.RemainingUses
	}

	return status, remaining, nil
}
