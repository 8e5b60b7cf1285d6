package domain

// VoucherType selects the receipt document requested at checkout.
type VoucherType string

const (
	VoucherBoleta  VoucherType = "boleta"
	VoucherFactura VoucherType = "factura"
)

// ReadinessFlags are the externally supplied preconditions for checkout.
// They are owned by the surrounding checkout flow and passed in by value on
// every evaluation.
type ReadinessFlags struct {
	DeliveryMethod       DeliveryMethod `json:"delivery_method"`
	LocationSelected     bool           `json:"location_selected"`
	StoreSelected        bool           `json:"store_selected"`
	PaymentSelected      bool           `json:"payment_selected"`
	RegistrationComplete bool           `json:"registration_complete"`
	VoucherType          VoucherType    `json:"voucher_type"`
	InvoiceValid         bool           `json:"invoice_valid"`
	TermsAccepted        bool           `json:"terms_accepted"`
}

// Decision is the result of one readiness evaluation: whether checkout is
// disabled, the highest-priority blocking reason, and the full list of
// unmet conditions for the checklist view. Both views come from the same
// pass so they cannot diverge.
type Decision struct {
	Disabled       bool     `json:"disabled"`
	BlockingReason string   `json:"blocking_reason,omitempty"`
	Unmet          []string `json:"unmet,omitempty"`
}

// User-facing blocking messages, in evaluation priority order.
const (
	MsgRegistrationIncomplete = "Completa tus datos personales para continuar"
	MsgLocationMissing        = "Selecciona una ubicación de entrega para continuar"
	MsgStoreMissing           = "Selecciona una tienda para recoger tu pedido"
	MsgPaymentMissing         = "Selecciona un método de pago para continuar"
	MsgInvoiceInvalid         = "Completa los datos de facturación para continuar"
	MsgTermsNotAccepted       = "Acepta los términos y condiciones para continuar"
)

// EvaluateCheckout derives the checkout decision from the current flags.
//
// An empty cart or an in-flight confirmation disables checkout with no
// user-facing reason; the surrounding UI communicates those states itself.
// Otherwise the preconditions are checked in fixed priority order:
// registration, delivery target, payment method, invoice data (only when a
// factura is requested), purchase terms. The first failing condition gives
// the blocking reason; every failing condition lands in Unmet.
func EvaluateCheckout(flags ReadinessFlags, cartEmpty, isProcessing bool) Decision {
	if cartEmpty || isProcessing {
		return Decision{Disabled: true}
	}

	var unmet []string

	if !flags.RegistrationComplete {
		unmet = append(unmet, MsgRegistrationIncomplete)
	}

	if !deliveryTargetSelected(flags) {
		if flags.DeliveryMethod == DeliveryStore {
			unmet = append(unmet, MsgStoreMissing)
		} else {
			unmet = append(unmet, MsgLocationMissing)
		}
	}

	if !flags.PaymentSelected {
		unmet = append(unmet, MsgPaymentMissing)
	}

	if flags.VoucherType == VoucherFactura && !flags.InvoiceValid {
		unmet = append(unmet, MsgInvoiceInvalid)
	}

	if !flags.TermsAccepted {
		unmet = append(unmet, MsgTermsNotAccepted)
	}

	if len(unmet) == 0 {
		return Decision{}
	}

	return Decision{
		Disabled:       true,
		BlockingReason: unmet[0],
		Unmet:          unmet,
	}
}

// deliveryTargetSelected reports whether a concrete delivery target exists
// for the chosen method: a location for home delivery, a store for pickup.
func deliveryTargetSelected(flags ReadinessFlags) bool {
	if flags.DeliveryMethod == DeliveryStore {
		return flags.StoreSelected
	}
	return flags.LocationSelected
}
