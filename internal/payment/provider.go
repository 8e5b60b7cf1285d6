package payment

import "context"

// ChargeInput holds the parameters for charging a payment.
type ChargeInput struct {
	AmountCents int64
	Currency    string
	Method      string
	SessionID   string
	Description string
}

// ChargeResult holds the provider's answer to a charge attempt.
type ChargeResult struct {
	Reference     string
	Succeeded     bool
	FailureReason string
}

// Provider is the opaque payment-processing boundary. Charge failures are
// the single error class this service propagates to callers.
type Provider interface {
	// Name returns the provider name (e.g. "mock", "culqi").
	Name() string

	// Charge processes a payment through the provider.
	Charge(ctx context.Context, input *ChargeInput) (*ChargeResult, error)
}
