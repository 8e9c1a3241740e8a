package student

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"academy-service/internal/apperrors"
	"academy-service/internal/store"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

const DefaultSearchSize = store.DefaultPageSize

// Field is a student column that search requests may filter or sort on.
type Field string

const (
	FieldID    Field = "id"
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldAge   Field = "age"
)

var searchableFields = map[Field]struct{}{
	FieldID:    {},
	FieldName:  {},
	FieldEmail: {},
	FieldAge:   {},
}

func ParseField(name string) (Field, bool) {
	f := Field(name)
	_, ok := searchableFields[f]
	return f, ok
}

func (f Field) numeric() bool {
	return f == FieldID || f == FieldAge
}

type Order struct {
	Field Field
	Desc  bool
}

// Filter is an equality predicate with a value already coerced to the
// column type.
type Filter struct {
	Field Field
	Value interface{}
}

// Criteria is a validated search request.
type Criteria struct {
	Term    string
	Filters []Filter
	Orders  []Order
}

var defaultOrder = []Order{{Field: FieldID}}

// ParseSort resolves sort directives. Unknown fields are dropped; the
// direction is descending only for a case-insensitive "desc". With nothing
// left the order is id ascending.
func ParseSort(directives []SortField) []Order {
	orders := make([]Order, 0, len(directives))
	for _, d := range directives {
		f, ok := ParseField(d.Field)
		if !ok {
			continue
		}
		orders = append(orders, Order{
			Field: f,
			Desc:  strings.EqualFold(d.Direction, "desc"),
		})
	}

	if len(orders) == 0 {
		return defaultOrder
	}
	return orders
}

// ParseFilters checks every key against the searchable fields and coerces
// its value to the column type. Filters come back sorted by field so the
// generated SQL is stable.
func ParseFilters(raw map[string]interface{}) ([]Filter, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	filters := make([]Filter, 0, len(keys))
	for _, key := range keys {
		f, ok := ParseField(key)
		if !ok {
			return nil, apperrors.Validation(fmt.Sprintf("unsupported filter field: %s", key))
		}

		value, err := coerce(f, raw[key])
		if err != nil {
			return nil, err
		}
		filters = append(filters, Filter{Field: f, Value: value})
	}
	return filters, nil
}

func coerce(f Field, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, apperrors.Validation(fmt.Sprintf("filter %s must not be null", f))
	}

	if !f.numeric() {
		s, ok := v.(string)
		if !ok {
			return nil, apperrors.Validation(fmt.Sprintf("filter %s must be a string", f))
		}
		return s, nil
	}

	invalid := apperrors.Validation(fmt.Sprintf("filter %s must be an integer", f))
	switch n := v.(type) {
	case float64:
		return exactInt(n, invalid)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		// Exponent or fraction forms such as 2e1 or 20.0.
		f, err := n.Float64()
		if err != nil {
			return nil, invalid
		}
		return exactInt(f, invalid)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return nil, invalid
		}
		return i, nil
	default:
		return nil, invalid
	}
}

// maxExactFloat is the largest magnitude below which every integer has an
// exact float64 representation.
const maxExactFloat = 1 << 53

func exactInt(f float64, invalid error) (interface{}, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > maxExactFloat {
		return nil, invalid
	}
	return int64(f), nil
}

// NewCriteria validates req and resolves its filters and sort directives.
func NewCriteria(req SearchRequest) (Criteria, error) {
	filters, err := ParseFilters(req.Filters)
	if err != nil {
		return Criteria{}, err
	}

	return Criteria{
		Term:    strings.TrimSpace(req.Search),
		Filters: filters,
		Orders:  ParseSort(req.Sorting),
	}, nil
}

// PageRequest applies the default size to req.
func (req SearchRequest) PageRequest() store.PageRequest {
	size := req.Size
	if size == 0 {
		size = DefaultSearchSize
	}
	return store.PageRequest{Page: req.Page, Size: size}
}

// Where adds the conjunction of the free-text match and every filter.
func (c Criteria) Where(q *bun.SelectQuery) *bun.SelectQuery {
	if c.Term != "" {
		pattern := "%" + foldTerm(q, c.Term) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("lower(?TableAlias.?) LIKE ?", bun.Ident(FieldName), pattern).
				WhereOr("lower(?TableAlias.?) LIKE ?", bun.Ident(FieldEmail), pattern)
		})
	}

	for _, f := range c.Filters {
		q = q.Where("?TableAlias.? = ?", bun.Ident(f.Field), f.Value)
	}
	return q
}

// foldTerm lower-cases term the same way the database's lower() folds the
// column. SQLite only folds ASCII letters.
func foldTerm(q *bun.SelectQuery, term string) string {
	if q.Dialect().Name() != dialect.SQLite {
		return strings.ToLower(term)
	}
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, term)
}

func (c Criteria) OrderBy(q *bun.SelectQuery) *bun.SelectQuery {
	orders := c.Orders
	if len(orders) == 0 {
		orders = defaultOrder
	}

	for _, o := range orders {
		if o.Desc {
			q = q.OrderExpr("?TableAlias.? DESC", bun.Ident(o.Field))
		} else {
			q = q.OrderExpr("?TableAlias.? ASC", bun.Ident(o.Field))
		}
	}
	return q
}
