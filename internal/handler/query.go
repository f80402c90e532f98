package handler

import (
	"net/http"
	"strconv"

	"shop-catalog/internal/config"
	"shop-catalog/internal/model"
	"shop-catalog/internal/serializer"
)

const (
	pageSizeParam   = "page_size"
	categoryIDParam = "category_id"

	msgInvalidInteger = "A valid integer is required."
)

// pageRequest reads page and page_size from the query string. Sizes above the
// configured maximum are capped.
func pageRequest(r *http.Request, cfg config.PaginationConfig) (model.PageRequest, error) {
	q := r.URL.Query()
	req := model.PageRequest{Number: 1, Size: cfg.PageSize}
	verr := model.NewValidationError()

	if raw := q.Get(serializer.PageParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			verr.Add(serializer.PageParam, "A valid positive integer is required.")
		} else {
			req.Number = n
		}
	}

	if raw := q.Get(pageSizeParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			verr.Add(pageSizeParam, "A valid positive integer is required.")
		} else {
			req.Size = min(n, cfg.MaxPageSize)
		}
	}

	if !verr.Empty() {
		return model.PageRequest{}, verr
	}
	return req, nil
}

// categoryFilter reads the optional category_id filter. An empty value means
// no filter.
func categoryFilter(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get(categoryIDParam)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		verr := model.NewValidationError()
		verr.Add(categoryIDParam, msgInvalidInteger)
		return nil, verr
	}
	return &id, nil
}
