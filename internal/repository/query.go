package repository

import (
	"fmt"
	"strings"

	"shop-catalog/internal/model"
)

const productColumns = "p.id, p.name, p.active, p.category_id, p.date_created, p.date_updated"

// ProductQuery builds the parameterised SQL for public product listings.
// It is the only place the active-only predicate is expressed.
type ProductQuery struct {
	filter model.ProductFilter
}

// NewProductQuery returns a query builder for filter.
func NewProductQuery(filter model.ProductFilter) ProductQuery {
	return ProductQuery{filter: filter}
}

// where returns the WHERE clause and its arguments, numbering placeholders from 1.
func (q ProductQuery) where() (string, []any) {
	conditions := []string{"p.active = TRUE"}
	var args []any

	if q.filter.CategoryID != nil {
		args = append(args, *q.filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// Select returns the listing query and its arguments.
// A non-positive limit means no LIMIT/OFFSET clause.
func (q ProductQuery) Select() (string, []any) {
	where, args := q.where()

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(productColumns)
	b.WriteString(" FROM products p ")
	b.WriteString(where)
	b.WriteString(" ORDER BY p.date_created, p.id")

	if q.filter.Limit > 0 {
		args = append(args, q.filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))

		offset := q.filter.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}

	return b.String(), args
}

// Count returns the query counting every row the listing would match, ignoring pagination.
func (q ProductQuery) Count() (string, []any) {
	where, args := q.where()
	return "SELECT COUNT(*) FROM products p " + where, args
}
