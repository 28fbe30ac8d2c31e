package catalog

import (
	"net/url"
	"testing"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newest first, as the store returns them
func fixtures() []models.Product {
	return []models.Product{
		{ID: "robe", Name: "Robe Satin", Description: "Robe longue", Category: "fashion", Price: decimal.NewFromInt(7500),
			Sizes: pq.StringArray{"S", "M"}, Colors: pq.StringArray{"Noir"}, IsNew: true},
		{ID: "parfum", Name: "Oud Royal", Description: "Eau de parfum", Brand: "Maison", Category: "perfume", Price: decimal.NewFromInt(4200),
			Featured: true},
		{ID: "rouge", Name: "Rouge Velours", Description: "Rouge a levres mat", Category: "cosmetics", Price: decimal.NewFromInt(1200),
			Colors: pq.StringArray{"Rouge", "Nude"}, Featured: true, IsNew: true},
		{ID: "veste", Name: "Veste Lin", Description: "Veste legere", Category: "fashion", Price: decimal.NewFromInt(9800),
			Sizes: pq.StringArray{"L", "XL"}, Colors: pq.StringArray{"Beige"}},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func mustParse(t *testing.T, raw string) Query {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	q, err := ParseQuery(values)
	require.NoError(t, err)
	return q
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filters keeps newest order", "", []string{"robe", "parfum", "rouge", "veste"}},
		{"category", "category=fashion", []string{"robe", "veste"}},
		{"featured", "featured=true", []string{"parfum", "rouge"}},
		{"featured false is not a filter", "featured=false", []string{"robe", "parfum", "rouge", "veste"}},
		{"is new", "is_new=true", []string{"robe", "rouge"}},
		{"price range inclusive", "min_price=1200&max_price=7500", []string{"robe", "parfum", "rouge"}},
		{"sizes any of", "sizes=M&sizes=XL", []string{"robe", "veste"}},
		{"sizes comma list", "sizes=M,XL", []string{"robe", "veste"}},
		{"colors any of", "colors=Nude,Beige", []string{"rouge", "veste"}},
		{"search is case insensitive", "search=OUD", []string{"parfum"}},
		{"search matches brand", "search=maison", []string{"parfum"}},
		{"price ascending", "sort=price_asc", []string{"rouge", "parfum", "robe", "veste"}},
		{"price descending", "sort=price_desc", []string{"veste", "robe", "parfum", "rouge"}},
		{"combined filters", "category=fashion&sort=price_desc&limit=1", []string{"veste"}},
		{"limit", "limit=2", []string{"robe", "parfum"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixtures(), mustParse(t, tt.query))
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyDoesNotReorderInput(t *testing.T) {
	products := fixtures()
	Apply(products, Query{Sort: SortPriceAsc})
	assert.Equal(t, []string{"robe", "parfum", "rouge", "veste"}, ids(products))
}

func TestParseQueryRejectsMalformedValues(t *testing.T) {
	for _, raw := range []string{"min_price=abc", "max_price=1e", "sort=popular", "limit=-1", "limit=ten"} {
		values, _ := url.ParseQuery(raw)
		_, err := ParseQuery(values)
		assert.Error(t, err, raw)
	}
}
