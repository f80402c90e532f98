// Package serializer converts catalog models into the JSON shapes exposed by
// each API version.
package serializer

import (
	"shop-catalog/internal/model"
)

// CategoryV1 is the category representation of the original API.
type CategoryV1 struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	DateCreated model.Timestamp `json:"date_created"`
	DateUpdated model.Timestamp `json:"date_updated"`
}

// CategoryV2 adds the description to CategoryV1.
type CategoryV2 struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DateCreated model.Timestamp `json:"date_created"`
	DateUpdated model.Timestamp `json:"date_updated"`
}

// AdminCategory exposes every stored category field to staff.
type AdminCategory struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Active      bool            `json:"active"`
	DateCreated model.Timestamp `json:"date_created"`
	DateUpdated model.Timestamp `json:"date_updated"`
}

// ProductV1 is the product representation of the original API.
// Category holds the owning category's id.
type ProductV1 struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	DateCreated model.Timestamp `json:"date_created"`
	DateUpdated model.Timestamp `json:"date_updated"`
	Category    int64           `json:"category"`
}

// ProductV2 adds the ecoscore grade to ProductV1. Ecoscore is null when unknown.
type ProductV2 struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	DateCreated model.Timestamp `json:"date_created"`
	DateUpdated model.Timestamp `json:"date_updated"`
	Category    int64           `json:"category"`
	Ecoscore    *string         `json:"ecoscore"`
}

// NewCategoryV1 converts a category to its v1 representation.
func NewCategoryV1(c model.Category) CategoryV1 {
	return CategoryV1{
		ID:          c.ID,
		Name:        c.Name,
		DateCreated: model.NewTimestamp(c.DateCreated),
		DateUpdated: model.NewTimestamp(c.DateUpdated),
	}
}

// NewCategoryV2 converts a category to its v2 representation, adding the description.
func NewCategoryV2(c model.Category) CategoryV2 {
	return CategoryV2{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		DateCreated: model.NewTimestamp(c.DateCreated),
		DateUpdated: model.NewTimestamp(c.DateUpdated),
	}
}

// NewAdminCategory converts a category to its admin representation.
func NewAdminCategory(c model.Category) AdminCategory {
	return AdminCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		DateCreated: model.NewTimestamp(c.DateCreated),
		DateUpdated: model.NewTimestamp(c.DateUpdated),
	}
}

// NewProductV1 converts a product to its v1 representation.
func NewProductV1(p model.Product) ProductV1 {
	return ProductV1{
		ID:          p.ID,
		Name:        p.Name,
		DateCreated: model.NewTimestamp(p.DateCreated),
		DateUpdated: model.NewTimestamp(p.DateUpdated),
		Category:    p.CategoryID,
	}
}

// NewProductV2 converts a rated product to its v2 representation.
func NewProductV2(p model.RatedProduct) ProductV2 {
	return ProductV2{
		ID:          p.ID,
		Name:        p.Name,
		DateCreated: model.NewTimestamp(p.DateCreated),
		DateUpdated: model.NewTimestamp(p.DateUpdated),
		Category:    p.CategoryID,
		Ecoscore:    p.Ecoscore,
	}
}

// Many applies convert to every item, always returning a non-nil slice so
// empty listings encode as [] rather than null.
func Many[M, R any](items []M, convert func(M) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}
