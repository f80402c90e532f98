package serializer

import (
	"net/url"
	"strconv"

	"shop-catalog/internal/model"
)

// PageParam is the query parameter carrying the 1-based page number.
const PageParam = "page"

// Page is the paginated list envelope.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage converts a model page into its envelope. self is the absolute URL of
// the current request and is used to build the next and previous links.
func NewPage[M, R any](self *url.URL, req model.PageRequest, page model.Page[M], convert func(M) R) Page[R] {
	out := Page[R]{
		Count:   page.Count,
		Results: Many(page.Items, convert),
	}

	if page.HasNext(req) {
		out.Next = pageLink(self, req.Number+1)
	}
	if req.Number > 1 {
		out.Previous = pageLink(self, req.Number-1)
	}
	return out
}

// pageLink rewrites the page parameter of self. The first page is addressed
// without a page parameter.
func pageLink(self *url.URL, number int) *string {
	u := *self
	q := u.Query()
	if number <= 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()

	link := u.String()
	return &link
}
