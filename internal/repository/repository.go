package repository

import (
	"context"

	"github.com/Frontenduno/TiendaNextv2-sub001/internal/domain"
)

// CartRepository is the persistence port for the cart ledger. Every ledger
// mutation is followed by a full-state Save (write-through), never a batched
// sync, so a crash or refresh cannot lose cart edits.
type CartRepository interface {
	// Get retrieves the cart for a session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the full cart state, overwriting any existing cart for
	// the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for a session.
	Delete(ctx context.Context, sessionID string) error
}

// CatalogRepository is the read-only catalog collaborator used by the
// ledger for enrichment at add time.
type CatalogRepository interface {
	// FindByID retrieves a catalog item by product id.
	FindByID(ctx context.Context, productID int64) (*domain.CatalogItem, error)
}
