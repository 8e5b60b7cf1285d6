package domain

import (
	"strings"
	"unicode"
)

// defaultDiscountPercent applies when a discount tag carries no digits.
const defaultDiscountPercent = 20

// Tag markers that flag an item as discounted. Matching is a
// case-insensitive substring check over the raw catalog tags.
var discountMarkers = []string{"descuento", "oferta"}

// ResolvePrice computes the effective pricing for a catalog item.
//
// A typed DiscountPercent on the item takes precedence. Otherwise the item's
// tags are scanned for a discount marker and the percentage is parsed from
// the tag text; this keeps fidelity with catalogs that still encode
// discounts as free text ("Descuento 25%", "Oferta").
//
// The parsed percentage is applied as-is, without an upper clamp.
func ResolvePrice(item CatalogItem) DiscountInfo {
	if item.DiscountPercent != nil {
		return applyDiscount(item.PriceCents, *item.DiscountPercent)
	}

	for _, tag := range item.Tags {
		lower := strings.ToLower(tag)
		for _, marker := range discountMarkers {
			if strings.Contains(lower, marker) {
				return applyDiscount(item.PriceCents, percentFromTag(tag))
			}
		}
	}

	return DiscountInfo{
		HasDiscount:        false,
		OriginalPriceCents: item.PriceCents,
		FinalPriceCents:    item.PriceCents,
		DiscountPercentage: 0,
	}
}

// ResolveLinePrice computes the same pricing view for a cart line, whose
// stored original price reflects the catalog snapshot taken at add time.
func ResolveLinePrice(line CartLine) DiscountInfo {
	original := line.OriginalOrUnitPrice()
	return DiscountInfo{
		HasDiscount:        original > line.UnitPriceCents,
		OriginalPriceCents: original,
		FinalPriceCents:    line.UnitPriceCents,
		DiscountPercentage: percentOff(original, line.UnitPriceCents),
	}
}

// LineSubtotalCents is the discounted subtotal for a line.
func LineSubtotalCents(line CartLine) int64 {
	return line.UnitPriceCents * int64(line.Quantity)
}

// LineOriginalSubtotalCents is the pre-discount subtotal for a line.
func LineOriginalSubtotalCents(line CartLine) int64 {
	return line.OriginalOrUnitPrice() * int64(line.Quantity)
}

// applyDiscount computes the final price for a percentage off, rounding the
// result half-up to the cent.
func applyDiscount(priceCents int64, percent int) DiscountInfo {
	final := roundHalfUpDiv(priceCents*int64(100-percent), 100)
	return DiscountInfo{
		HasDiscount:        true,
		OriginalPriceCents: priceCents,
		FinalPriceCents:    final,
		DiscountPercentage: percent,
	}
}

// percentFromTag extracts the first integer substring from the tag text.
// Tags without digits fall back to the default percentage.
func percentFromTag(tag string) int {
	value := 0
	inNumber := false
	for _, r := range tag {
		if unicode.IsDigit(r) {
			value = value*10 + int(r-'0')
			inNumber = true
			continue
		}
		if inNumber {
			break
		}
	}
	if !inNumber {
		return defaultDiscountPercent
	}
	return value
}

// percentOff returns the whole-percent discount between an original and a
// final price, rounded half-up. Zero when there is no reduction.
func percentOff(original, final int64) int {
	if original <= 0 || final >= original {
		return 0
	}
	return int(roundHalfUpDiv((original-final)*100, original))
}

// roundHalfUpDiv divides n by d rounding half away from zero. d must be
// positive; n may be negative when a percentage above 100 is applied.
func roundHalfUpDiv(n, d int64) int64 {
	if n >= 0 {
		return (n + d/2) / d
	}
	return -((-n + d/2) / d)
}
