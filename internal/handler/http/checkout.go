package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Frontenduno/TiendaNextv2-sub001/internal/domain"
	"github.com/Frontenduno/TiendaNextv2-sub001/internal/service"
	"github.com/Frontenduno/TiendaNextv2-sub001/pkg/validator"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(checkout *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, logger: logger}
}

// ReadinessRequest carries the client-side checkout state the gate evaluates.
// The flags describe what the shopper has completed so far; the cart state is
// read server-side.
type ReadinessRequest struct {
	DeliveryMethod       string `json:"delivery_method" validate:"omitempty,oneof=home store"`
	LocationSelected     bool   `json:"location_selected"`
	StoreSelected        bool   `json:"store_selected"`
	PaymentSelected      bool   `json:"payment_selected"`
	RegistrationComplete bool   `json:"registration_complete"`
	VoucherType          string `json:"voucher_type" validate:"omitempty,oneof=boleta factura"`
	InvoiceValid         bool   `json:"invoice_valid"`
	TermsAccepted        bool   `json:"terms_accepted"`
}

func (r ReadinessRequest) flags() domain.ReadinessFlags {
	method := r.DeliveryMethod
	if method == "" {
		method = string(domain.DeliveryHome)
	}
	return domain.ReadinessFlags{
		DeliveryMethod:       domain.DeliveryMethod(method),
		LocationSelected:     r.LocationSelected,
		StoreSelected:        r.StoreSelected,
		PaymentSelected:      r.PaymentSelected,
		RegistrationComplete: r.RegistrationComplete,
		VoucherType:          domain.VoucherType(r.VoucherType),
		InvoiceValid:         r.InvoiceValid,
		TermsAccepted:        r.TermsAccepted,
	}
}

// ConfirmRequest is the JSON request body for confirming a checkout.
type ConfirmRequest struct {
	ReadinessRequest
	PaymentMethod string `json:"payment_method" validate:"required,min=1,max=100"`
}

// Evaluate handles POST /api/v1/checkout/readiness
func (h *CheckoutHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	var req ReadinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	decision, err := h.checkout.Evaluate(r.Context(), sid, req.flags())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: decision})
}

// Confirm handles POST /api/v1/checkout/confirm
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	receipt, err := h.checkout.Confirm(r.Context(), sid, req.flags(), req.PaymentMethod)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: receipt})
}

func (h *CheckoutHandler) writeValidationError(w http.ResponseWriter, err error) {
	writeValidationFailure(w, err)
}
