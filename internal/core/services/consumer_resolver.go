package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/ports"
)

// ConsumerRef identifies the consumer a purchase is for: either an existing
// profile picked by the operator, or a fresh registration payload.
type ConsumerRef struct {
	ConsumerID   *uuid.UUID           `json:"consumer_id,omitempty"`
	Registration *domain.Registration `json:"registration,omitempty"`
}

type ConsumerResolver struct {
	directory ports.ConsumerDirectory
}

func NewConsumerResolver(directory ports.ConsumerDirectory) *ConsumerResolver {
	return &ConsumerResolver{directory: directory}
}

// Resolve finds or creates the consumer for a ref. Lookup is read-only;
// registration is the only mutating path. Registrations that match an
// existing profile by email return that profile instead of creating a
// duplicate.
func (r *ConsumerResolver) Resolve(ctx context.Context, ref ConsumerRef) (*domain.Consumer, error) {
	if ref.ConsumerID != nil {
		return r.directory.GetByID(ctx, *ref.ConsumerID)
	}

	if ref.Registration == nil {
		return nil, errors.New("consumer reference is empty")
	}

	reg := *ref.Registration
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))

	if err := reg.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.directory.FindByEmail(ctx, reg.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrConsumerNotFound) {
		return nil, err
	}

	consumer := &domain.Consumer{
		ID:            uuid.New(),
		FirstName:     reg.FirstName,
		LastName:      reg.LastName,
		Email:         reg.Email,
		Phone:         reg.Phone,
		Status:        domain.ConsumerActive,
		PaymentStatus: "NONE",
	}

	if err := r.directory.Create(ctx, consumer); err != nil {
		return nil, err
	}

	return consumer, nil
}
