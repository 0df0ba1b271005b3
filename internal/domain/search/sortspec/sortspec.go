// Package sortspec parses and validates sort tokens of the form
// "<field>_<direction>". Tokens are validated against a closed set of
// sortable fields before any query is built; unknown fields or directions
// are rejected rather than forwarded to the backend.
package sortspec

import (
	"fmt"
	"strings"

	"github.com/bizradar/planfinder/internal/domain"
)

// Field is a sortable plan attribute, named by its stored column/field name.
type Field string

const (
	// FieldCreatedAt sorts by record creation time.
	FieldCreatedAt Field = "created_at"
	// FieldTotalUps sorts by upvote count.
	FieldTotalUps Field = "total_ups"
	// FieldMarketSize sorts by estimated market size.
	FieldMarketSize Field = "market_size"
	// FieldRequiredCapital sorts by required starting capital.
	FieldRequiredCapital Field = "required_capital"
	// FieldTimeToMarket sorts by estimated time to market.
	FieldTimeToMarket Field = "time_to_market"
	// FieldTitle sorts lexicographically by title.
	FieldTitle Field = "title"
)

// Direction is a sort direction.
type Direction string

const (
	// Asc sorts ascending.
	Asc Direction = "asc"
	// Desc sorts descending.
	Desc Direction = "desc"
)

// Caller-facing aliases resolved before field validation.
var aliases = map[string]Field{
	"date":       FieldCreatedAt,
	"popularity": FieldTotalUps,
}

var validFields = map[Field]struct{}{
	FieldCreatedAt:       {},
	FieldTotalUps:        {},
	FieldMarketSize:      {},
	FieldRequiredCapital: {},
	FieldTimeToMarket:    {},
	FieldTitle:           {},
}

// Sort is a validated field and direction pair.
type Sort struct {
	field     Field
	direction Direction
}

// New validates and creates a Sort.
func New(field Field, direction Direction) (Sort, error) {
	if _, ok := validFields[field]; !ok {
		return Sort{}, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidSortToken, field)
	}
	if direction != Asc && direction != Desc {
		return Sort{}, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidSortToken, direction)
	}
	return Sort{field: field, direction: direction}, nil
}

// MustNew is New that panics on invalid input. For statically known sorts.
func MustNew(field Field, direction Direction) Sort {
	s, err := New(field, direction)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse splits a compound token such as "date_desc" or "popularity_asc"
// into a validated Sort. The direction is the part after the last
// underscore, so multi-word field names like "market_size" parse cleanly.
func Parse(token string) (Sort, error) {
	idx := strings.LastIndex(token, "_")
	if idx <= 0 || idx == len(token)-1 {
		return Sort{}, fmt.Errorf("%w: %q", domain.ErrInvalidSortToken, token)
	}

	name := token[:idx]
	dir := Direction(token[idx+1:])

	field, ok := aliases[name]
	if !ok {
		field = Field(name)
	}

	s, err := New(field, dir)
	if err != nil {
		return Sort{}, fmt.Errorf("%w: %q", domain.ErrInvalidSortToken, token)
	}
	return s, nil
}

// Field returns the resolved sortable field.
func (s Sort) Field() Field { return s.field }

// Direction returns the sort direction.
func (s Sort) Direction() Direction { return s.direction }

// Ascending reports whether the sort is ascending.
func (s Sort) Ascending() bool { return s.direction == Asc }

// IsZero reports whether the sort is unset (backend-native order).
func (s Sort) IsZero() bool { return s.field == "" }

// Toggle returns the sort resulting from the caller clicking field:
// clicking the active field flips the direction, clicking a different
// field switches to it ascending.
func (s Sort) Toggle(field Field) Sort {
	if s.field == field {
		dir := Asc
		if s.direction == Asc {
			dir = Desc
		}
		return Sort{field: field, direction: dir}
	}
	return Sort{field: field, direction: Asc}
}

// Token returns the compound string form, e.g. "created_at_desc".
func (s Sort) Token() string {
	return string(s.field) + "_" + string(s.direction)
}
