package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Frontenduno/TiendaNextv2-sub001/internal/domain"
	"github.com/Frontenduno/TiendaNextv2-sub001/internal/repository"
	apperrors "github.com/Frontenduno/TiendaNextv2-sub001/pkg/errors"
)

// ProductDetail is a catalog item together with its resolved pricing.
type ProductDetail struct {
	Item    domain.CatalogItem  `json:"item"`
	Pricing domain.DiscountInfo `json:"pricing"`
}

// CatalogService exposes catalog reads with pricing resolved on every query.
type CatalogService struct {
	repo   repository.CatalogRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.CatalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// GetProduct returns the catalog item with its effective price and discount
// percentage. Pricing is never cached; catalog data may change between
// calls.
func (s *CatalogService) GetProduct(ctx context.Context, productID int64) (*ProductDetail, error) {
	if productID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}

	item, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	return &ProductDetail{
		Item:    *item,
		Pricing: domain.ResolvePrice(*item),
	}, nil
}
