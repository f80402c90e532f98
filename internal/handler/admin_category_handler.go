package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"shop-catalog/internal/auth"
	"shop-catalog/internal/model"
	"shop-catalog/internal/serializer"
	"shop-catalog/internal/service"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// AdminCategoryHandler serves the staff-only category endpoints.
type AdminCategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewAdminCategoryHandler creates a new admin category handler.
func NewAdminCategoryHandler(service service.CategoryService, logger zerolog.Logger) *AdminCategoryHandler {
	return &AdminCategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin_category").Logger(),
	}
}

// Collection handles /api/admin/category/: GET lists, POST creates.
func (h *AdminCategoryHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.CanReadAdminCategories) {
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.list(w, r)
	case http.MethodPost:
		if !h.authorize(w, r, auth.CanCreateCategory) {
			return
		}
		h.create(w, r)
	default:
		allowMethod(w, r, h.logger, http.MethodGet, http.MethodHead, http.MethodPost)
	}
}

// Item handles /api/admin/category/{id}/: GET reads, PUT updates.
func (h *AdminCategoryHandler) Item(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.CanReadAdminCategories) {
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.get(w, r)
	case http.MethodPut:
		if !h.authorize(w, r, auth.CanUpdateCategory) {
			return
		}
		h.update(w, r)
	default:
		allowMethod(w, r, h.logger, http.MethodGet, http.MethodHead, http.MethodPut)
	}
}

func (h *AdminCategoryHandler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serializer.Many(categories, serializer.NewAdminCategory))
}

func (h *AdminCategoryHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDomainError(w, r, model.ErrCategoryNotFound, h.logger)
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serializer.NewAdminCategory(*category))
}

func (h *AdminCategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	input, err := decodeCategoryInput(w, r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	category, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Int64("category_id", category.ID).
		Str("subject", auth.FromContext(r.Context()).Subject).
		Msg("category created via admin")

	writeJSON(w, http.StatusCreated, serializer.NewAdminCategory(*category))
}

func (h *AdminCategoryHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDomainError(w, r, model.ErrCategoryNotFound, h.logger)
		return
	}

	input, err := decodeCategoryInput(w, r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	category, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Int64("category_id", category.ID).
		Str("subject", auth.FromContext(r.Context()).Subject).
		Msg("category updated via admin")

	writeJSON(w, http.StatusOK, serializer.NewAdminCategory(*category))
}

func (h *AdminCategoryHandler) authorize(w http.ResponseWriter, r *http.Request, policy auth.Policy) bool {
	if err := policy(auth.FromContext(r.Context())); err != nil {
		writeDomainError(w, r, err, h.logger)
		return false
	}
	return true
}

// categoryPayload mirrors model.CategoryInput with presence tracking.
type categoryPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// decodeCategoryInput strictly decodes a category write payload. Unknown keys
// and a missing name are reported as field errors.
func decodeCategoryInput(w http.ResponseWriter, r *http.Request) (model.CategoryInput, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var payload categoryPayload
	if err := dec.Decode(&payload); err != nil {
		if field, ok := unknownField(err); ok {
			verr := model.NewValidationError()
			verr.Add(field, "This field is not allowed.")
			return model.CategoryInput{}, verr
		}
		return model.CategoryInput{}, model.ErrInvalidJSON
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return model.CategoryInput{}, model.ErrInvalidJSON
	}

	if payload.Name == nil {
		verr := model.NewValidationError()
		verr.Add("name", "This field is required.")
		return model.CategoryInput{}, verr
	}

	return model.CategoryInput{
		Name:        *payload.Name,
		Description: payload.Description,
		Active:      payload.Active,
	}, nil
}

// unknownField extracts the key named by encoding/json's unknown field error.
func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}
