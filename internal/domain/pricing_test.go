package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

// ============================================================================
// ResolvePrice Tests
// ============================================================================

func TestResolvePrice_NoDiscountTag(t *testing.T) {
	item := CatalogItem{ID: 1, Name: "Collar", PriceCents: 4990, Tags: []string{"perros", "nuevo"}}

	info := ResolvePrice(item)

	assert.False(t, info.HasDiscount)
	assert.Equal(t, int64(4990), info.OriginalPriceCents)
	assert.Equal(t, int64(4990), info.FinalPriceCents)
	assert.Equal(t, 0, info.DiscountPercentage)
}

func TestResolvePrice_TagWithPercentage(t *testing.T) {
	item := CatalogItem{ID: 1, PriceCents: 10000, Tags: []string{"Descuento 25%"}}

	info := ResolvePrice(item)

	assert.True(t, info.HasDiscount)
	assert.Equal(t, int64(10000), info.OriginalPriceCents)
	assert.Equal(t, int64(7500), info.FinalPriceCents)
	assert.Equal(t, 25, info.DiscountPercentage)
}

func TestResolvePrice_TagCaseInsensitive(t *testing.T) {
	item := CatalogItem{ID: 1, PriceCents: 10000, Tags: []string{"OFERTA 10"}}

	info := ResolvePrice(item)

	assert.True(t, info.HasDiscount)
	assert.Equal(t, 10, info.DiscountPercentage)
	assert.Equal(t, int64(9000), info.FinalPriceCents)
}

func TestResolvePrice_TagWithoutDigits_DefaultsTo20(t *testing.T) {
	item := CatalogItem{ID: 1, PriceCents: 10000, Tags: []string{"gran oferta"}}

	info := ResolvePrice(item)

	assert.True(t, info.HasDiscount)
	assert.Equal(t, 20, info.DiscountPercentage)
	assert.Equal(t, int64(8000), info.FinalPriceCents)
}

func TestResolvePrice_FirstMatchingTagWins(t *testing.T) {
	item := CatalogItem{ID: 1, PriceCents: 10000, Tags: []string{"gatos", "descuento 30", "oferta 50"}}

	info := ResolvePrice(item)

	assert.Equal(t, 30, info.DiscountPercentage)
	assert.Equal(t, int64(7000), info.FinalPriceCents)
}

func TestResolvePrice_TypedDiscountTakesPrecedence(t *testing.T) {
	item := CatalogItem{ID: 1, PriceCents: 10000, Tags: []string{"descuento 50"}, DiscountPercent: intPtr(15)}

	info := ResolvePrice(item)

	assert.True(t, info.HasDiscount)
	assert.Equal(t, 15, info.DiscountPercentage)
	assert.Equal(t, int64(8500), info.FinalPriceCents)
}

func TestResolvePrice_RoundsHalfUp(t *testing.T) {
	// 999 * 0.85 = 849.15 -> 849; 999 * 0.75 = 749.25 -> 749; 333 * 0.5 = 166.5 -> 167
	assert.Equal(t, int64(849), ResolvePrice(CatalogItem{PriceCents: 999, DiscountPercent: intPtr(15)}).FinalPriceCents)
	assert.Equal(t, int64(749), ResolvePrice(CatalogItem{PriceCents: 999, DiscountPercent: intPtr(25)}).FinalPriceCents)
	assert.Equal(t, int64(167), ResolvePrice(CatalogItem{PriceCents: 333, DiscountPercent: intPtr(50)}).FinalPriceCents)
}

func TestResolvePrice_NoUpperClamp(t *testing.T) {
	// Percentages above 100 are applied as-is; the resulting negative price
	// is surfaced rather than silently corrected.
	info := ResolvePrice(CatalogItem{PriceCents: 10000, Tags: []string{"descuento 120"}})

	assert.True(t, info.HasDiscount)
	assert.Equal(t, 120, info.DiscountPercentage)
	assert.Equal(t, int64(-2000), info.FinalPriceCents)
}

func TestResolvePrice_ZeroPrice(t *testing.T) {
	info := ResolvePrice(CatalogItem{PriceCents: 0, Tags: []string{"oferta 25"}})

	assert.True(t, info.HasDiscount)
	assert.Equal(t, int64(0), info.FinalPriceCents)
}

// ============================================================================
// ResolveLinePrice Tests
// ============================================================================

func TestResolveLinePrice_WithDiscount(t *testing.T) {
	line := CartLine{UnitPriceCents: 7500, OriginalUnitPriceCents: 10000, Quantity: 2}

	info := ResolveLinePrice(line)

	assert.True(t, info.HasDiscount)
	assert.Equal(t, int64(10000), info.OriginalPriceCents)
	assert.Equal(t, int64(7500), info.FinalPriceCents)
	assert.Equal(t, 25, info.DiscountPercentage)
}

func TestResolveLinePrice_NoOriginal(t *testing.T) {
	line := CartLine{UnitPriceCents: 4990, Quantity: 1}

	info := ResolveLinePrice(line)

	assert.False(t, info.HasDiscount)
	assert.Equal(t, int64(4990), info.OriginalPriceCents)
	assert.Equal(t, 0, info.DiscountPercentage)
}

func TestLineSubtotals(t *testing.T) {
	line := CartLine{UnitPriceCents: 7500, OriginalUnitPriceCents: 10000, Quantity: 3}

	assert.Equal(t, int64(22500), LineSubtotalCents(line))
	assert.Equal(t, int64(30000), LineOriginalSubtotalCents(line))
}

func TestLineSubtotals_NoDiscount(t *testing.T) {
	line := CartLine{UnitPriceCents: 2000, Quantity: 4}

	assert.Equal(t, int64(8000), LineSubtotalCents(line))
	assert.Equal(t, int64(8000), LineOriginalSubtotalCents(line))
}
