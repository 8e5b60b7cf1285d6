package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Frontenduno/TiendaNextv2-sub001/internal/domain"
	"github.com/Frontenduno/TiendaNextv2-sub001/internal/service"
	apperrors "github.com/Frontenduno/TiendaNextv2-sub001/pkg/errors"
	"github.com/Frontenduno/TiendaNextv2-sub001/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	carts    *service.CartService
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(carts *service.CartService, checkout *service.CheckoutService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		checkout: checkout,
		logger:   logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	ProductID        int64  `json:"product_id" validate:"required,gt=0"`
	Name             string `json:"name" validate:"required,min=1,max=500"`
	UnitPriceCents   int64  `json:"unit_price_cents" validate:"gte=0"`
	Quantity         int    `json:"quantity" validate:"required,gte=1"`
	StockCeiling     int    `json:"stock_ceiling" validate:"required,gte=1"`
	ImageURL         string `json:"image_url"`
	Color            string `json:"color"`
	AdditionalOption string `json:"additional_option"`
}

// UpdateQuantityRequest is the JSON request body for updating a line's
// quantity. The floor is enforced here, not in the ledger.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// --- Response DTOs ---

// cartResponse pairs the cart with the outcome of the mutation that
// produced it, so clients can tell a clamped or no-op request apart from a
// plain success.
type cartResponse struct {
	Cart    *domain.Cart `json:"cart"`
	Outcome any          `json:"outcome,omitempty"`
}

// summaryResponse is the aggregate view for the cart summary panel.
type summaryResponse struct {
	Cart         *domain.Cart       `json:"cart"`
	Summary      domain.CartSummary `json:"summary"`
	TotalDisplay string             `json:"total_display"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cartResponse{Cart: cart}})
}

// GetSummary handles GET /api/v1/cart/summary?delivery_method=home
func (h *CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	method := r.URL.Query().Get("delivery_method")
	if method == "" {
		method = string(domain.DeliveryHome)
	}
	if !domain.IsValidDeliveryMethod(method) {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "delivery_method must be home or store"},
		})
		return
	}

	cart, summary, err := h.checkout.Summary(r.Context(), sid, domain.DeliveryMethod(method))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: summaryResponse{
		Cart:         cart,
		Summary:      summary,
		TotalDisplay: domain.FormatPEN(summary.TotalCents),
	}})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	var req AddItemRequest
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

	cart, outcome, err := h.carts.AddItem(r.Context(), sid, service.AddItemInput{
		ProductID:        req.ProductID,
		Name:             req.Name,
		UnitPriceCents:   req.UnitPriceCents,
		Quantity:         req.Quantity,
		StockCeiling:     req.StockCeiling,
		ImageURL:         req.ImageURL,
		Color:            req.Color,
		AdditionalOption: req.AdditionalOption,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cartResponse{Cart: cart, Outcome: outcome}})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{productID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "productID must be a positive integer"},
		})
		return
	}

	var req UpdateQuantityRequest
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

	cart, outcome, err := h.carts.UpdateQuantity(r.Context(), sid, productID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cartResponse{Cart: cart, Outcome: outcome}})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "productID must be a positive integer"},
		})
		return
	}

	cart, outcome, err := h.carts.RemoveItem(r.Context(), sid, productID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cartResponse{Cart: cart, Outcome: outcome}})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	if err := h.carts.ClearCart(r.Context(), sid); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "cleared"}})
}

// --- Helpers ---

func (h *CartHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeServiceError(w, r, err, h.logger)
}

func (h *CartHandler) writeValidationError(w http.ResponseWriter, err error) {
	writeValidationFailure(w, err)
}

func writeValidationFailure(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}

func writeSessionRequired(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: "X-Session-ID header is required"},
	})
}

// --- Shared response plumbing ---

type response struct {
	Data  any            `json:"data,omitempty"`
	Error *errorResponse `json:"error,omitempty"`
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, response{
			Error: &errorResponse{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		writeJSON(w, status, response{
			Error: &errorResponse{Code: "INTERNAL_ERROR", Message: "an internal error occurred"},
		})
		return
	}

	writeJSON(w, status, response{
		Error: &errorResponse{Code: "ERROR", Message: err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}
