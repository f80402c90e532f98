package model

import "time"

// Category is a named grouping that owns zero or more products.
type Category struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Active      bool      `db:"active"`
	DateCreated time.Time `db:"date_created"`
	DateUpdated time.Time `db:"date_updated"`
}

// CategoryInput is the writable subset of a category accepted by the admin endpoint.
// Nil Description and Active keep the stored values on update.
type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// MaxNameLength bounds category and product names.
const MaxNameLength = 255
