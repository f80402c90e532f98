package router

import (
	"net/http"

	"shop-catalog/internal/handler"
	"shop-catalog/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the endpoint handlers served by the router.
type Handlers struct {
	Category      *handler.CategoryHandler
	Product       *handler.ProductHandler
	AdminCategory *handler.AdminCategoryHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, verifier middleware.TokenVerifier, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", handler.Health)

	// Original API
	handle(mux, "/api/category", h.Category.List, h.Category.Get)
	handle(mux, "/api/product", h.Product.List, h.Product.Get)

	// v2 API: paginated lists, category descriptions, product ecoscore
	handle(mux, "/api/v2/category", h.Category.ListV2, h.Category.GetV2)
	handle(mux, "/api/v2/product", h.Product.ListV2, h.Product.GetV2)

	// Staff-only category management
	handle(mux, "/api/admin/category", h.AdminCategory.Collection, h.AdminCategory.Item)

	mux.HandleFunc("/", handler.NotFound(logger))

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS -> Authenticate
	var handler http.Handler = mux
	handler = middleware.Authenticate(verifier, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// handle registers a collection and its items under prefix, each with and
// without a trailing slash.
func handle(mux *http.ServeMux, prefix string, collection, item http.HandlerFunc) {
	mux.HandleFunc(prefix, collection)
	mux.HandleFunc(prefix+"/{$}", collection)
	mux.HandleFunc(prefix+"/{id}", item)
	mux.HandleFunc(prefix+"/{id}/{$}", item)
}
