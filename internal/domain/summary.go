package domain

// DeliveryMethod selects how an order is fulfilled.
type DeliveryMethod string

const (
	DeliveryHome  DeliveryMethod = "home"
	DeliveryStore DeliveryMethod = "store"
)

// IsValidDeliveryMethod checks whether the given string is a known method.
func IsValidDeliveryMethod(method string) bool {
	return method == string(DeliveryHome) || method == string(DeliveryStore)
}

// CartSummary is the aggregate view over all cart lines. It is recomputed
// from the lines on every read and never persisted, so it cannot drift from
// the ledger.
type CartSummary struct {
	ItemsCount      int   `json:"items_count"`
	SubtotalCents   int64 `json:"subtotal_cents"`
	DiscountCents   int64 `json:"discount_cents"`
	ShippingCents   int64 `json:"shipping_cents"`
	HasFreeShipping bool  `json:"has_free_shipping"`
	TotalCents      int64 `json:"total_cents"`
}

// ComputeSummary reduces the cart lines into a summary.
//
// ItemsCount is the number of distinct lines, not the quantity sum; it backs
// the "(N productos)" label. Subtotal is over original (pre-discount)
// prices. Free shipping applies at or above the threshold; a threshold of
// zero or less means shipping is always free. Store pickup carries no
// shipping line at all, so its total excludes shipping by construction.
// Any method other than store pickup is treated as home delivery, matching
// the readiness gate's fallback, so an unset method still carries shipping.
func ComputeSummary(lines []CartLine, freeShippingThresholdCents, shippingRateCents int64, method DeliveryMethod) CartSummary {
	if method != DeliveryStore {
		method = DeliveryHome
	}

	var subtotal, discount int64
	for _, line := range lines {
		original := LineOriginalSubtotalCents(line)
		subtotal += original
		if d := original - LineSubtotalCents(line); d > 0 {
			discount += d
		}
	}

	free := subtotal >= freeShippingThresholdCents

	var shipping int64
	if method == DeliveryHome && !free {
		shipping = shippingRateCents
	}

	total := subtotal - discount
	if method == DeliveryHome {
		total += shipping
	}

	return CartSummary{
		ItemsCount:      len(lines),
		SubtotalCents:   subtotal,
		DiscountCents:   discount,
		ShippingCents:   shipping,
		HasFreeShipping: free,
		TotalCents:      total,
	}
}
