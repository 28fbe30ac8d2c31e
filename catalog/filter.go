// Package catalog filters and sorts the product list for the storefront.
package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// Query is the parsed set of catalog filters. Zero values mean "no filter".
type Query struct {
	Category string
	Featured bool
	IsNew    bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sizes    []string
	Colors   []string
	Search   string
	Sort     SortOrder
	Limit    int
}

// ParseQuery reads filters from URL query values.
func ParseQuery(values url.Values) (Query, error) {
	q := Query{
		Category: strings.TrimSpace(values.Get("category")),
		Featured: values.Get("featured") == "true",
		IsNew:    values.Get("is_new") == "true",
		Sizes:    splitList(values["sizes"]),
		Colors:   splitList(values["colors"]),
		Search:   strings.TrimSpace(values.Get("search")),
		Sort:     SortNewest,
	}

	var err error
	if q.MinPrice, err = parsePrice(values.Get("min_price")); err != nil {
		return Query{}, fmt.Errorf("invalid min_price: %w", err)
	}
	if q.MaxPrice, err = parsePrice(values.Get("max_price")); err != nil {
		return Query{}, fmt.Errorf("invalid max_price: %w", err)
	}

	switch s := SortOrder(values.Get("sort")); s {
	case "", SortNewest:
	case SortPriceAsc, SortPriceDesc:
		q.Sort = s
	default:
		return Query{}, fmt.Errorf("invalid sort %q", s)
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Query{}, fmt.Errorf("invalid limit %q", raw)
		}
		q.Limit = n
	}
	return q, nil
}

func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// splitList accepts both repeated params and comma separated values.
func splitList(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Apply filters products (expected newest first) and sorts the result.
// The input slice is not modified.
func Apply(products []models.Product, q Query) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, q) {
			out = append(out, p)
		}
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func matches(p models.Product, q Query) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Featured && !p.Featured {
		return false
	}
	if q.IsNew && !p.IsNew {
		return false
	}
	if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}
	if len(q.Sizes) > 0 && !anyOf(p.Sizes, q.Sizes) {
		return false
	}
	if len(q.Colors) > 0 && !anyOf(p.Colors, q.Colors) {
		return false
	}
	if q.Search != "" && !containsFold(q.Search, p.Name, p.Description, p.Brand) {
		return false
	}
	return true
}

func anyOf(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
