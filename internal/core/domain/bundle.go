package domain

import (
	"time"

	"github.com/google/uuid"
)

type BundleStatus string

const (
	BundleActive    BundleStatus = "ACTIVE"
	BundleUsed      BundleStatus = "USED"
	BundleExpired   BundleStatus = "EXPIRED"
	BundleCancelled BundleStatus = "CANCELLED"
)

type EventType string

const (
	EventUse    EventType = "USE"
	EventRefund EventType = "REFUND"
	EventExpire EventType = "EXPIRE"
	EventCancel EventType = "CANCEL"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "CARD"
	PaymentCash PaymentMethod = "CASH"
	PaymentQR   PaymentMethod = "QR"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentQR:
		return true
	}
	return false
}

// BundleType is a catalog entry. Price is in the smallest currency unit.
// A Bundle copies these fields at purchase time; later catalog edits never
// affect bundles already sold.
type BundleType struct {
	ID           string
	Name         string
	Price        int64
	Quota        int
	ValidityDays int
}

type Bundle struct {
	ID              uuid.UUID
	ConsumerID      uuid.UUID
	Status          BundleStatus
	RemainingUses   int
	TypeID          string
	TypeName        string
	PriceAtPurchase int64
	Quota           int
	IdempotencyKey  string
	Version         int
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

func (b *Bundle) IsTerminal() bool {
	return b.Status != BundleActive
}

// UsageEvent is one row of a bundle's append-only ledger. Seq is assigned
// on insert and is the replay order; EventDate ties are broken by Seq.
type UsageEvent struct {
	ID        uuid.UUID
	BundleID  uuid.UUID
	Seq       int64
	EventType EventType
	EventDate time.Time
}

// Authorization is the outcome of a payment authorization attempt.
type Authorization struct {
	TransactionID string
	Approved      bool
	DeclineReason string
}

// CompensationEvent is published when a charge succeeded but the bundle
// could not be persisted, so the charge can be refunded or reviewed.
type CompensationEvent struct {
	IdempotencyKey string        `json:"idempotency_key"`
	ConsumerID     uuid.UUID     `json:"consumer_id"`
	PackageID      string        `json:"package_id"`
	Amount         int64         `json:"amount"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	TransactionID  string        `json:"transaction_id"`
	Reason         string        `json:"reason"`
	OccurredAt     time.Time     `json:"occurred_at"`
}
