package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/ports"
	"github.com/kioskpos/bundle_service/internal/core/ports/mocks"
	"github.com/kioskpos/bundle_service/internal/core/services"
)

func TestResolve_LookupByID(t *testing.T) {
	mockDirectory := mocks.NewConsumerDirectory(t)
	resolver := services.NewConsumerResolver(mockDirectory)

	ctx := context.Background()
	consumer := activeConsumer()

	mockDirectory.On("GetByID", ctx, consumer.ID).Return(consumer, nil)

	resolved, err := resolver.Resolve(ctx, services.ConsumerRef{ConsumerID: &consumer.ID})

	assert.NoError(t, err)
	assert.Equal(t, consumer, resolved)
}

func TestResolve_LookupNotFound(t *testing.T) {
	mockDirectory := mocks.NewConsumerDirectory(t)
	resolver := services.NewConsumerResolver(mockDirectory)

	ctx := context.Background()
	unknown := uuid.New()

	mockDirectory.On("GetByID", ctx, unknown).Return(nil, ports.ErrConsumerNotFound)

	resolved, err := resolver.Resolve(ctx, services.ConsumerRef{ConsumerID: &unknown})

	assert.ErrorIs(t, err, ports.ErrConsumerNotFound)
	assert.Nil(t, resolved)
}

func TestResolve_RegistrationCreatesConsumer(t *testing.T) {
	mockDirectory := mocks.NewConsumerDirectory(t)
	resolver := services.NewConsumerResolver(mockDirectory)

	ctx := context.Background()

	mockDirectory.On("FindByEmail", ctx, "dana.smith@gmail.com").Return(nil, ports.ErrConsumerNotFound)
	mockDirectory.On("Create", ctx, mock.MatchedBy(func(c *domain.Consumer) bool {
		return c.FirstName == "Dana" &&
			c.LastName == "Smith" &&
			c.Email == "dana.smith@gmail.com" &&
			c.Status == domain.ConsumerActive
	})).Return(nil)

	resolved, err := resolver.Resolve(ctx, services.ConsumerRef{Registration: &domain.Registration{
		FirstName: "Dana",
		LastName:  "Smith",
		Email:     "Dana.Smith@Gmail.com",
	}})

	assert.NoError(t, err)
	if assert.NotNil(t, resolved) {
		assert.NotEqual(t, uuid.Nil, resolved.ID)
		assert.Equal(t, "dana.smith@gmail.com", resolved.Email)
	}
}

func TestResolve_RegistrationReturnsExistingProfile(t *testing.T) {
	mockDirectory := mocks.NewConsumerDirectory(t)
	resolver := services.NewConsumerResolver(mockDirectory)

	ctx := context.Background()
	existing := activeConsumer()

	mockDirectory.On("FindByEmail", ctx, existing.Email).Return(existing, nil)

	resolved, err := resolver.Resolve(ctx, services.ConsumerRef{Registration: &domain.Registration{
		FirstName: "Dana",
		LastName:  "Smith",
		Email:     existing.Email,
	}})

	assert.NoError(t, err)
	assert.Equal(t, existing, resolved)
	mockDirectory.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolve_InvalidRegistrationNeverHitsDirectory(t *testing.T) {
	mockDirectory := mocks.NewConsumerDirectory(t)
	resolver := services.NewConsumerResolver(mockDirectory)

	resolved, err := resolver.Resolve(context.Background(), services.ConsumerRef{Registration: &domain.Registration{
		FirstName: "Dana",
		LastName:  "Smith",
		Email:     "dana@example.com",
	}})

	var verrs domain.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Nil(t, resolved)
	mockDirectory.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestResolve_EmptyRef(t *testing.T) {
	mockDirectory := mocks.NewConsumerDirectory(t)
	resolver := services.NewConsumerResolver(mockDirectory)

	resolved, err := resolver.Resolve(context.Background(), services.ConsumerRef{})

	assert.Error(t, err)
	assert.Nil(t, resolved)
}
