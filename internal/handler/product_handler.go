package handler

import (
	"net/http"

	"shop-catalog/internal/config"
	"shop-catalog/internal/model"
	"shop-catalog/internal/serializer"
	"shop-catalog/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler serves the public, read-only product endpoints.
type ProductHandler struct {
	service    service.ProductService
	pagination config.PaginationConfig
	logger     zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, pagination config.PaginationConfig, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:    service,
		pagination: pagination,
		logger:     logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/product/ requests, optionally filtered by category_id.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, h.logger, readMethods...) {
		return
	}

	categoryID, err := categoryFilter(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	products, err := h.service.List(r.Context(), categoryID)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serializer.Many(products, serializer.NewProductV1))
}

// Get handles GET /api/product/{id}/ requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, h.logger, readMethods...) {
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeDomainError(w, r, model.ErrProductNotFound, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serializer.NewProductV1(*product))
}

// ListV2 handles GET /api/v2/product/ requests.
func (h *ProductHandler) ListV2(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, h.logger, readMethods...) {
		return
	}

	categoryID, err := categoryFilter(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	req, err := pageRequest(r, h.pagination)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	page, err := h.service.Page(r.Context(), categoryID, req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serializer.NewPage(requestURL(r), req, page, serializer.NewProductV2))
}

// GetV2 handles GET /api/v2/product/{id}/ requests.
func (h *ProductHandler) GetV2(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, h.logger, readMethods...) {
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeDomainError(w, r, model.ErrProductNotFound, h.logger)
		return
	}

	product, err := h.service.GetRatedByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serializer.NewProductV2(*product))
}
