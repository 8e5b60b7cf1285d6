package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/Frontenduno/TiendaNextv2-sub001/internal/payment"
)

// Provider is a mock payment provider that always succeeds. It is intended
// for development and testing.
type Provider struct{}

// NewProvider creates a new mock payment provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// Charge simulates a payment charge that always succeeds.
func (p *Provider) Charge(_ context.Context, _ *payment.ChargeInput) (*payment.ChargeResult, error) {
	return &payment.ChargeResult{
		Reference: "mock_pay_" + uuid.New().String(),
		Succeeded: true,
	}, nil
}
