package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kioskpos/bundle_service/internal/core/domain"
)

func TestBundle_IsTerminal(t *testing.T) {
	tests := []struct {
		status       domain.BundleStatus
		wantTerminal bool
	}{
		{domain.BundleActive, false},
		{domain.BundleUsed, true},
		{domain.BundleExpired, true},
		{domain.BundleCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			bundle := &domain.Bundle{Status: tt.status}
			assert.Equal(t, tt.wantTerminal, bundle.IsTerminal())
		})
	}
}
