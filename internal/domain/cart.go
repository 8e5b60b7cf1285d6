package domain

import "time"

// Cart is the session-scoped shopping cart. One cart exists per client
// session; the ledger holds exactly one line per distinct product.
type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartLine is one distinct product entry in the cart. UnitPriceCents is the
// effective (discount-applied) price captured when the line was created;
// OriginalUnitPriceCents is the pre-discount catalog price at that moment,
// zero when the item carried no discount.
type CartLine struct {
	ProductID              int64  `json:"product_id"`
	Name                   string `json:"name"`
	UnitPriceCents         int64  `json:"unit_price_cents"`
	OriginalUnitPriceCents int64  `json:"original_unit_price_cents,omitempty"`
	Quantity               int    `json:"quantity"`
	ImageURL               string `json:"image_url,omitempty"`
	Color                  string `json:"color,omitempty"`
	AdditionalOption       string `json:"additional_option,omitempty"`
	StockCeiling           int    `json:"stock_ceiling"`
	Brand                  string `json:"brand,omitempty"`
}

// OriginalOrUnitPrice returns the pre-discount unit price, falling back to
// the effective price for lines that never had a discount.
func (l CartLine) OriginalOrUnitPrice() int64 {
	if l.OriginalUnitPriceCents > 0 {
		return l.OriginalUnitPriceCents
	}
	return l.UnitPriceCents
}

// TotalItems is the sum of quantities over all lines.
func (c *Cart) TotalItems() int {
	var total int
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPriceCents is the sum of effective price times quantity over all
// lines. Discounted prices, not originals.
func (c *Cart) TotalPriceCents() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPriceCents * int64(line.Quantity)
	}
	return total
}

// FindLineIndex returns the index of the line for the given product, or -1.
func (c *Cart) FindLineIndex(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
