package handler

import (
	"net/http"

	"shop-catalog/internal/config"
	"shop-catalog/internal/model"
	"shop-catalog/internal/serializer"
	"shop-catalog/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler serves the public, read-only category endpoints.
type CategoryHandler struct {
	service    service.CategoryService
	pagination config.PaginationConfig
	logger     zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, pagination config.PaginationConfig, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:    service,
		pagination: pagination,
		logger:     logger.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/category/ requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, h.logger, readMethods...) {
		return
	}

	categories, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serializer.Many(categories, serializer.NewCategoryV1))
}

// Get handles GET /api/category/{id}/ requests.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, ok := h.get(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, serializer.NewCategoryV1(*category))
}

// ListV2 handles GET /api/v2/category/ requests.
func (h *CategoryHandler) ListV2(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, h.logger, readMethods...) {
		return
	}

	req, err := pageRequest(r, h.pagination)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	page, err := h.service.Page(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serializer.NewPage(requestURL(r), req, page, serializer.NewCategoryV2))
}

// GetV2 handles GET /api/v2/category/{id}/ requests.
func (h *CategoryHandler) GetV2(w http.ResponseWriter, r *http.Request) {
	category, ok := h.get(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, serializer.NewCategoryV2(*category))
}

func (h *CategoryHandler) get(w http.ResponseWriter, r *http.Request) (*model.Category, bool) {
	if !allowMethod(w, r, h.logger, readMethods...) {
		return nil, false
	}

	id, ok := pathID(r)
	if !ok {
		writeDomainError(w, r, model.ErrCategoryNotFound, h.logger)
		return nil, false
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return nil, false
	}
	return category, true
}
