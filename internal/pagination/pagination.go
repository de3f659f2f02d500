// Package pagination turns a 1-based page number and a page size into an
// offset (skip/limit) window, and derives the previous/next page links
// shown under a listing.
//
// OFFSET PAGINATION:
//
//	skip  = (page - 1) * perPage
//	limit = perPage
//
// Page 3 with 9 items per page → skip 18, return up to 9 items.
// There is no total count: "next" is offered whenever a full page came
// back, since a full page means there MIGHT be more. When the collection
// size is an exact multiple of perPage, the last page still shows a next
// link that leads to an empty page.
package pagination

import (
	"errors"
	"math"
	"net/url"
	"strconv"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/validate"
)

// MaxPerPage caps the page size a caller can ask for.
const MaxPerPage = 100

// Query is the validated input of a paginated, optionally filtered listing.
type Query struct {
	Page    int    `form:"page"    validate:"min=1"`
	PerPage int    `form:"perPage" validate:"min=1,max=100"`
	Borough string `form:"borough"`
}

// ParseQuery reads page, perPage, and borough from URL query values.
//
// Both integer fields are required. Every problem is collected before
// returning, so a request with two bad fields gets two FieldErrors back.
// The returned error, when non-nil, is an apperror.ValidationErrors.
func ParseQuery(values url.Values) (Query, error) {
	var (
		q         Query
		parseErrs apperror.ValidationErrors
	)

	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"page", &q.Page},
		{"perPage", &q.PerPage},
	} {
		n, err := strconv.Atoi(values.Get(f.name))
		if err != nil {
			parseErrs = append(parseErrs, apperror.FieldError{Field: f.name, Reason: "must be an integer"})
			continue
		}
		*f.dst = n
	}
	q.Borough = values.Get("borough")

	err := q.Validate()
	if err == nil && len(parseErrs) == 0 {
		return q, nil
	}

	var ruleErrs apperror.ValidationErrors
	if err != nil && !errors.As(err, &ruleErrs) {
		return Query{}, err
	}

	// A field that failed to parse is zero and would also fail min=1;
	// report it once, as the parse failure.
	out := parseErrs
	for _, fe := range ruleErrs {
		if !hasField(parseErrs, fe.Field) {
			out = append(out, fe)
		}
	}
	return Query{}, out
}

// Validate checks the bounds of Page and PerPage, and that the skip
// (page-1)*perPage fits in an int.
func (q Query) Validate() error {
	if err := validate.Struct(q, nil); err != nil {
		return err
	}
	if q.Page-1 > math.MaxInt/q.PerPage {
		return apperror.ValidationErrors{{Field: "page", Reason: "is too large"}}
	}
	return nil
}

// Skip is the number of items to discard before the page starts.
func (q Query) Skip() int {
	return (q.Page - 1) * q.PerPage
}

// Page is one window of a listing plus its navigation links.
// PrevPage and NextPage are nil when there is no such page.
type Page[T any] struct {
	Items    []T
	Page     int
	PerPage  int
	Borough  string
	PrevPage *int
	NextPage *int
}

// NewPage builds the Page for items fetched with q.
func NewPage[T any](q Query, items []T) *Page[T] {
	p := &Page[T]{
		Items:   items,
		Page:    q.Page,
		PerPage: q.PerPage,
		Borough: q.Borough,
	}
	if q.Page > 1 {
		prev := q.Page - 1
		p.PrevPage = &prev
	}
	if len(items) == q.PerPage {
		next := q.Page + 1
		p.NextPage = &next
	}
	return p
}

func hasField(list apperror.ValidationErrors, field string) bool {
	for _, fe := range list {
		if fe.Field == field {
			return true
		}
	}
	return false
}
