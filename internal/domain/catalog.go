package domain

// CatalogItem represents a sellable product as the catalog exposes it.
// Prices are PEN cents. Stock is the purchasable quantity at read time.
type CatalogItem struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	PriceCents      int64    `json:"price_cents"`
	Tags            []string `json:"tags,omitempty"`
	Stock           int      `json:"stock"`
	Brand           string   `json:"brand,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	DiscountPercent *int     `json:"discount_percent,omitempty"`
}

// DiscountInfo is the resolved pricing for an item or cart line. It is
// derived on every query and never stored; catalog data may change between
// calls.
type DiscountInfo struct {
	HasDiscount        bool  `json:"has_discount"`
	OriginalPriceCents int64 `json:"original_price_cents"`
	FinalPriceCents    int64 `json:"final_price_cents"`
	DiscountPercentage int   `json:"discount_percentage"`
}
