package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Frontenduno/TiendaNextv2-sub001/internal/config"
	"github.com/Frontenduno/TiendaNextv2-sub001/internal/service"
	"github.com/Frontenduno/TiendaNextv2-sub001/pkg/health"
	"github.com/Frontenduno/TiendaNextv2-sub001/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cfg *config.Config,
	cartService *service.CartService,
	checkoutService *service.CheckoutService,
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		ExposedHeaders: []string{"X-Correlation-ID", "X-Session-ID"},
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	cartHandler := NewCartHandler(cartService, checkoutService, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Get("/summary", cartHandler.GetSummary)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productID}", cartHandler.UpdateQuantity)
		r.Delete("/items/{productID}", cartHandler.RemoveItem)
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Post("/readiness", checkoutHandler.Evaluate)
		r.Post("/confirm", checkoutHandler.Confirm)
	})

	// Product data is immutable per deploy, safe to cache briefly.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(middleware.CacheControl(cfg.CatalogCacheMaxAge))

		r.Get("/products/{productID}", catalogHandler.GetProduct)
	})

	return r
}
