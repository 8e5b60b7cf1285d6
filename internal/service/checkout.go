package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Frontenduno/TiendaNextv2-sub001/internal/domain"
	"github.com/Frontenduno/TiendaNextv2-sub001/internal/event"
	"github.com/Frontenduno/TiendaNextv2-sub001/internal/payment"
	apperrors "github.com/Frontenduno/TiendaNextv2-sub001/pkg/errors"
)

// CartReader is the slice of the cart service the checkout flow needs.
type CartReader interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// PricingParams are the externally configured aggregate inputs: the subtotal
// at which shipping is waived and the flat home-delivery rate.
type PricingParams struct {
	FreeShippingThresholdCents int64
	ShippingRateCents          int64
}

// Receipt is returned to the caller after a successful checkout.
type Receipt struct {
	Reference     string `json:"reference"`
	AmountCents   int64  `json:"amount_cents"`
	AmountDisplay string `json:"amount_display"`
	Currency      string `json:"currency"`
}

// CheckoutService drives the checkout flow: summary aggregation, readiness
// evaluation, and payment confirmation. Sessions with an in-flight
// confirmation evaluate as disabled until the charge settles.
type CheckoutService struct {
	carts    CartReader
	provider payment.Provider
	producer *event.Producer
	logger   *slog.Logger
	pricing  PricingParams

	mu         sync.Mutex
	processing map[string]struct{}
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	carts CartReader,
	provider payment.Provider,
	producer *event.Producer,
	logger *slog.Logger,
	pricing PricingParams,
) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		provider:   provider,
		producer:   producer,
		logger:     logger,
		pricing:    pricing,
		processing: make(map[string]struct{}),
	}
}

// Summary returns the session's cart together with its aggregate totals for
// the chosen delivery method. The aggregate is recomputed from the lines on
// every call.
func (s *CheckoutService) Summary(ctx context.Context, sessionID string, method domain.DeliveryMethod) (*domain.Cart, domain.CartSummary, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, domain.CartSummary{}, err
	}

	summary := domain.ComputeSummary(cart.Lines, s.pricing.FreeShippingThresholdCents, s.pricing.ShippingRateCents, method)
	return cart, summary, nil
}

// Evaluate derives the checkout decision for the session from the supplied
// readiness flags and the live cart state.
func (s *CheckoutService) Evaluate(ctx context.Context, sessionID string, flags domain.ReadinessFlags) (domain.Decision, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Decision{}, err
	}

	return domain.EvaluateCheckout(flags, cart.IsEmpty(), s.isProcessing(sessionID)), nil
}

// Confirm runs the full checkout: re-evaluates readiness against the live
// cart, charges the total through the payment provider, clears the cart,
// and returns a receipt. A blocked checkout surfaces its blocking reason as
// an invalid-input error; a provider failure is the one propagated error.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID string, flags domain.ReadinessFlags, paymentMethod string) (*Receipt, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	if !s.markProcessing(sessionID) {
		return nil, apperrors.Conflict("checkout already in progress for this session")
	}
	defer s.unmarkProcessing(sessionID)

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	decision := domain.EvaluateCheckout(flags, cart.IsEmpty(), false)
	if decision.Disabled {
		if decision.BlockingReason == "" {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, apperrors.InvalidInput(decision.BlockingReason)
	}

	summary := domain.ComputeSummary(cart.Lines, s.pricing.FreeShippingThresholdCents, s.pricing.ShippingRateCents, flags.DeliveryMethod)

	result, err := s.provider.Charge(ctx, &payment.ChargeInput{
		AmountCents: summary.TotalCents,
		Currency:    cart.Currency,
		Method:      paymentMethod,
		SessionID:   sessionID,
		Description: fmt.Sprintf("storefront order, %d productos", summary.ItemsCount),
	})
	if err != nil {
		return nil, apperrors.PaymentFailed(err.Error())
	}
	if !result.Succeeded {
		return nil, apperrors.PaymentFailed(result.FailureReason)
	}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		// The charge went through; losing the cleanup must not fail the
		// checkout. The cart store TTL reaps the leftover state.
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishCheckoutCompleted(ctx, event.CheckoutCompletedData{
		SessionID:        sessionID,
		PaymentReference: result.Reference,
		AmountCents:      summary.TotalCents,
		Currency:         cart.Currency,
		DeliveryMethod:   string(flags.DeliveryMethod),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.completed event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("session_id", sessionID),
		slog.String("payment_reference", result.Reference),
		slog.Int64("amount_cents", summary.TotalCents),
	)

	return &Receipt{
		Reference:     result.Reference,
		AmountCents:   summary.TotalCents,
		AmountDisplay: domain.FormatPEN(summary.TotalCents),
		Currency:      cart.Currency,
	}, nil
}

// markProcessing flags the session as having an in-flight confirmation.
// Returns false when one is already running.
func (s *CheckoutService) markProcessing(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.processing[sessionID]; busy {
		return false
	}
	s.processing[sessionID] = struct{}{}
	return true
}

func (s *CheckoutService) unmarkProcessing(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.processing, sessionID)
}

func (s *CheckoutService) isProcessing(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.processing[sessionID]
	return busy
}
