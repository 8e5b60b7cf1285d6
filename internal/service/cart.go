package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Frontenduno/TiendaNextv2-sub001/internal/domain"
	"github.com/Frontenduno/TiendaNextv2-sub001/internal/event"
	"github.com/Frontenduno/TiendaNextv2-sub001/internal/repository"
	apperrors "github.com/Frontenduno/TiendaNextv2-sub001/pkg/errors"
)

// AddItemInput holds the parameters for adding an item to the cart.
// UnitPriceCents is the effective price the caller saw; the ledger enriches
// the line with brand and pre-discount price from the catalog.
type AddItemInput struct {
	ProductID        int64  `json:"product_id" validate:"required,gt=0"`
	Name             string `json:"name" validate:"required,min=1,max=500"`
	UnitPriceCents   int64  `json:"unit_price_cents" validate:"gte=0"`
	Quantity         int    `json:"quantity" validate:"required,gte=1"`
	StockCeiling     int    `json:"stock_ceiling" validate:"required,gte=1"`
	ImageURL         string `json:"image_url"`
	Color            string `json:"color"`
	AdditionalOption string `json:"additional_option"`
}

// AddOutcome reports what AddItem actually did: whether the candidate merged
// into an existing line and whether the quantity was capped at stock.
type AddOutcome struct {
	Merged  bool `json:"merged"`
	Clamped bool `json:"clamped"`
}

// UpdateOutcome reports what UpdateQuantity actually did. A missing line is
// a no-op, not an error; Found distinguishes the two.
type UpdateOutcome struct {
	Found   bool `json:"found"`
	Clamped bool `json:"clamped"`
}

// RemoveOutcome reports whether RemoveItem found a line to remove.
type RemoveOutcome struct {
	Found bool `json:"found"`
}

// CartService implements the cart line ledger: one line per distinct
// product, quantities clamped to the stock ceiling, write-through
// persistence on every mutation.
type CartService struct {
	repo     repository.CartRepository
	catalog  repository.CatalogRepository
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(
	repo repository.CartRepository,
	catalog repository.CatalogRepository,
	producer *event.Producer,
	logger *slog.Logger,
	cartTTL time.Duration,
) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  catalog,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// GetCart retrieves the cart for a session. If no cart exists, returns an
// empty cart without persisting it.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds a product to the session's cart. A line for the same product
// merges by increasing quantity; the result is silently capped at the
// line's stock ceiling rather than rejected. New lines are enriched with
// brand and pre-discount price from the catalog when the lookup succeeds;
// a failed lookup simply leaves those fields unset.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, AddOutcome, error) {
	var outcome AddOutcome

	if sessionID == "" {
		return nil, outcome, apperrors.InvalidInput("session id is required")
	}
	if input.ProductID <= 0 {
		return nil, outcome, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity < 1 {
		return nil, outcome, apperrors.InvalidInput("quantity must be at least 1")
	}
	if input.UnitPriceCents < 0 {
		return nil, outcome, apperrors.InvalidInput("unit price must not be negative")
	}
	if input.StockCeiling < 1 {
		return nil, outcome, apperrors.InvalidInput("product is out of stock")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, outcome, err
	}

	if i := cart.FindLineIndex(input.ProductID); i >= 0 {
		// Merge into the existing line, preserving its display fields.
		line := &cart.Lines[i]
		newQty := line.Quantity + input.Quantity
		if newQty > line.StockCeiling {
			newQty = line.StockCeiling
			outcome.Clamped = true
		}
		line.Quantity = newQty
		outcome.Merged = true
	} else {
		quantity := input.Quantity
		if quantity > input.StockCeiling {
			quantity = input.StockCeiling
			outcome.Clamped = true
		}

		line := domain.CartLine{
			ProductID:        input.ProductID,
			Name:             input.Name,
			UnitPriceCents:   input.UnitPriceCents,
			Quantity:         quantity,
			ImageURL:         input.ImageURL,
			Color:            input.Color,
			AdditionalOption: input.AdditionalOption,
			StockCeiling:     input.StockCeiling,
		}
		s.enrichLine(ctx, &line)
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.saveAndPublish(ctx, cart); err != nil {
		return nil, outcome, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
		slog.Bool("merged", outcome.Merged),
		slog.Bool("clamped", outcome.Clamped),
	)

	return cart, outcome, nil
}

// UpdateQuantity sets the quantity for a line, capped at its stock ceiling.
// A product not in the cart is a silent no-op. No floor is enforced at this
// layer; callers are expected to keep requests at 1 or above.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, requested int) (*domain.Cart, UpdateOutcome, error) {
	var outcome UpdateOutcome

	if sessionID == "" {
		return nil, outcome, apperrors.InvalidInput("session id is required")
	}
	if productID <= 0 {
		return nil, outcome, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, outcome, err
	}

	i := cart.FindLineIndex(productID)
	if i < 0 {
		return cart, outcome, nil
	}
	outcome.Found = true

	line := &cart.Lines[i]
	quantity := requested
	if quantity > line.StockCeiling {
		quantity = line.StockCeiling
		outcome.Clamped = true
	}
	line.Quantity = quantity

	if err := s.saveAndPublish(ctx, cart); err != nil {
		return nil, outcome, err
	}

	s.logger.InfoContext(ctx, "cart line quantity updated",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
		slog.Int("quantity", quantity),
		slog.Bool("clamped", outcome.Clamped),
	)

	return cart, outcome, nil
}

// RemoveItem removes a line from the cart. A product not in the cart is a
// silent no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, RemoveOutcome, error) {
	var outcome RemoveOutcome

	if sessionID == "" {
		return nil, outcome, apperrors.InvalidInput("session id is required")
	}
	if productID <= 0 {
		return nil, outcome, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, outcome, err
	}

	i := cart.FindLineIndex(productID)
	if i < 0 {
		return cart, outcome, nil
	}
	outcome.Found = true

	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)

	if err := s.saveAndPublish(ctx, cart); err != nil {
		return nil, outcome, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
	)

	return cart, outcome, nil
}

// ClearCart removes all lines for the session unconditionally.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

// enrichLine fills brand and pre-discount price from the catalog. Lookup
// failures leave the line as the caller supplied it.
func (s *CartService) enrichLine(ctx context.Context, line *domain.CartLine) {
	item, err := s.catalog.FindByID(ctx, line.ProductID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "catalog lookup failed, line not enriched",
				slog.Int64("product_id", line.ProductID),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	line.Brand = item.Brand
	if pricing := domain.ResolvePrice(*item); pricing.HasDiscount {
		line.OriginalUnitPriceCents = pricing.OriginalPriceCents
	}
}

// saveAndPublish writes the full cart state through to the store and emits
// the cart.updated event. Publish failures are logged, never surfaced.
func (s *CartService) saveAndPublish(ctx context.Context, cart *domain.Cart) error {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// getOrCreateCart retrieves the session's cart, creating an empty one if it
// does not exist yet.
func (s *CartService) getOrCreateCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// newEmptyCart creates a new empty cart for the given session.
func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Lines:     []domain.CartLine{},
		Currency:  domain.CurrencyPEN,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cartTTL),
	}
}
