package model

import "time"

// Product is a catalog item belonging to exactly one category.
type Product struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Active      bool      `db:"active"`
	CategoryID  int64     `db:"category_id"`
	DateCreated time.Time `db:"date_created"`
	DateUpdated time.Time `db:"date_updated"`
}

// ProductFilter narrows a product listing.
// A nil CategoryID means no category restriction.
type ProductFilter struct {
	CategoryID *int64
	Limit      int
	Offset     int
}

// RatedProduct is a product together with its externally sourced ecoscore grade.
// Ecoscore is nil when the grade could not be resolved.
type RatedProduct struct {
	Product
	Ecoscore *string
}
