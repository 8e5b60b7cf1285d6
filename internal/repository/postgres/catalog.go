package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/Frontenduno/TiendaNextv2-sub001/internal/domain"
	"github.com/Frontenduno/TiendaNextv2-sub001/pkg/database"
	apperrors "github.com/Frontenduno/TiendaNextv2-sub001/pkg/errors"
)

// DB is the subset of pgxpool.Pool used by the catalog repository. pgxmock
// satisfies it, so tests can run against a mock pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CatalogRepository implements repository.CatalogRepository using PostgreSQL.
type CatalogRepository struct {
	db DB
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(db DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindByID retrieves a catalog item by product id.
func (r *CatalogRepository) FindByID(ctx context.Context, productID int64) (_ *domain.CatalogItem, err error) {
	query := `
		SELECT id, name, price_cents, tags, stock, brand, image_url, discount_percent
		FROM products
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "FindProductByID", query)
	defer func() { end(err) }()

	var item domain.CatalogItem
	err = r.db.QueryRow(ctx, query, productID).Scan(
		&item.ID,
		&item.Name,
		&item.PriceCents,
		&item.Tags,
		&item.Stock,
		&item.Brand,
		&item.ImageURL,
		&item.DiscountPercent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", strconv.FormatInt(productID, 10))
		}
		return nil, fmt.Errorf("select product: %w", err)
	}

	return &item, nil
}
