// Package fixture loads catalog seed data from fixture documents kept on the
// local file system or in S3, and writes it to the database.
//
// A fixture document is a JSON array of records:
//
//	[{"model": "shop.category", "pk": 1, "fields": {"name": "Fruits", "active": true}}]
//
// Files whose name ends in .gz are gunzipped first.
package fixture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"shop-catalog/internal/model"
)

// Model labels recognised in fixture records.
const (
	ModelCategory = "shop.category"
	ModelProduct  = "shop.product"
)

// ErrUnknownModel is returned for records whose model label is not recognised.
var ErrUnknownModel = errors.New("fixture: unknown model")

// Loader defines the interface for loading fixture documents.
type Loader interface {
	// Load reads the fixture document at path.
	Load(ctx context.Context, path string) (*Set, error)
}

// Set is the decoded content of one or more fixture documents.
type Set struct {
	Categories []model.Category
	Products   []model.Product
}

// Size returns the number of records in the set.
func (s *Set) Size() int {
	return len(s.Categories) + len(s.Products)
}

// Merge appends the records of other to s.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	s.Categories = append(s.Categories, other.Categories...)
	s.Products = append(s.Products, other.Products...)
}

type record struct {
	Model  string          `json:"model"`
	PK     int64           `json:"pk"`
	Fields json.RawMessage `json:"fields"`
}

type categoryFields struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Active      bool            `json:"active"`
	DateCreated model.Timestamp `json:"date_created"`
	DateUpdated model.Timestamp `json:"date_updated"`
}

type productFields struct {
	Name        string          `json:"name"`
	Active      bool            `json:"active"`
	Category    int64           `json:"category"`
	DateCreated model.Timestamp `json:"date_created"`
	DateUpdated model.Timestamp `json:"date_updated"`
}

// Decode parses a fixture document. Missing timestamps are set to now.
func Decode(r io.Reader, now time.Time) (*Set, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode fixture document: %w", err)
	}

	set := &Set{}
	for i, rec := range records {
		if rec.PK < 1 {
			return nil, fmt.Errorf("record %d: pk must be a positive integer", i)
		}

		switch strings.ToLower(rec.Model) {
		case ModelCategory:
			var f categoryFields
			if err := json.Unmarshal(rec.Fields, &f); err != nil {
				return nil, fmt.Errorf("record %d (%s %d): %w", i, rec.Model, rec.PK, err)
			}
			if f.Name == "" {
				return nil, fmt.Errorf("record %d (%s %d): name is required", i, rec.Model, rec.PK)
			}
			created, updated := timestamps(f.DateCreated, f.DateUpdated, now)
			set.Categories = append(set.Categories, model.Category{
				ID:          rec.PK,
				Name:        f.Name,
				Description: f.Description,
				Active:      f.Active,
				DateCreated: created,
				DateUpdated: updated,
			})

		case ModelProduct:
			var f productFields
			if err := json.Unmarshal(rec.Fields, &f); err != nil {
				return nil, fmt.Errorf("record %d (%s %d): %w", i, rec.Model, rec.PK, err)
			}
			if f.Name == "" {
				return nil, fmt.Errorf("record %d (%s %d): name is required", i, rec.Model, rec.PK)
			}
			if f.Category < 1 {
				return nil, fmt.Errorf("record %d (%s %d): category is required", i, rec.Model, rec.PK)
			}
			created, updated := timestamps(f.DateCreated, f.DateUpdated, now)
			set.Products = append(set.Products, model.Product{
				ID:          rec.PK,
				Name:        f.Name,
				Active:      f.Active,
				CategoryID:  f.Category,
				DateCreated: created,
				DateUpdated: updated,
			})

		default:
			return nil, fmt.Errorf("record %d: %w %q", i, ErrUnknownModel, rec.Model)
		}
	}

	return set, nil
}

// timestamps fills missing values and keeps date_updated at or after date_created.
func timestamps(created, updated model.Timestamp, now time.Time) (time.Time, time.Time) {
	c, u := created.Time, updated.Time
	if c.IsZero() {
		c = now
	}
	if u.IsZero() || u.Before(c) {
		u = c
	}
	return c, u
}
