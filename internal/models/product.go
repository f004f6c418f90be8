package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

func init() {
	// prices go over the wire as JSON numbers, like the storefront expects
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID       string          `gorm:"primaryKey"                json:"id"`
	Name     string          `gorm:"not null"                  json:"name"`
	Category string          `gorm:"index;not null"            json:"category"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}

func (Product) TableName() string {
	return "products"
}

// SeedProducts is the catalog served in degraded mode and upserted into a
// configured backend at startup.
func SeedProducts() []Product {
	return []Product{
		{ID: "1", Name: "Headphones", Category: "Electronics", Price: decimal.RequireFromString("99.99")},
		{ID: "2", Name: "Shoes", Category: "Sports", Price: decimal.RequireFromString("59.99")},
		{ID: "3", Name: "Keyboard", Category: "Electronics", Price: decimal.RequireFromString("29.99")},
	}
}

// DistinctCategories returns the sorted set of categories of products.
func DistinctCategories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
