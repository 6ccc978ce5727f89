// Package catalog is the read-only product provider. Every query is a pure
// linear filter over the static dataset and returns a fresh slice in catalog
// order.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	// CategoryAll selects the whole catalog.
	CategoryAll = "all"
	// CategoryFrozen selects products flagged as frozen regardless of category.
	CategoryFrozen = "frozen"

	DefaultSimilarLimit = 6
)

type Catalog struct {
	products   []Product
	categories []Category
	byID       map[string]int
}

// New builds a catalog over the given dataset. Later entries with a duplicate
// id are ignored by ProductByID.
func New(products []Product, categories []Category) *Catalog {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if _, exists := byID[p.ID]; !exists {
			byID[p.ID] = i
		}
	}
	return &Catalog{products: products, categories: categories, byID: byID}
}

// Default returns the shop's built-in assortment.
func Default() *Catalog {
	return New(defaultProducts(), defaultCategories())
}

func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *Catalog) ProductByID(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// ProductsByCategory filters by category id, with CategoryAll and
// CategoryFrozen as pseudo categories.
func (c *Catalog) ProductsByCategory(categoryID string) []Product {
	switch categoryID {
	case CategoryAll:
		return c.Products()
	case CategoryFrozen:
		return c.filter(func(p Product) bool { return p.IsFrozen })
	default:
		return c.filter(func(p Product) bool { return p.CategoryID == categoryID })
	}
}

// Search matches query case-insensitively as a substring of the name, the
// description or any tag. Surrounding whitespace is ignored and a blank query
// returns the full catalog.
func (c *Catalog) Search(query string) []Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Products()
	}
	fold := cases.Fold()
	needle := fold.String(query)
	contains := func(s string) bool {
		return strings.Contains(fold.String(s), needle)
	}
	return c.filter(func(p Product) bool {
		if contains(p.Name) || contains(p.Description) {
			return true
		}
		for _, tag := range p.Tags {
			if contains(tag) {
				return true
			}
		}
		return false
	})
}

// Similar returns up to limit other products of the same category. A
// non-positive limit means DefaultSimilarLimit.
func (c *Catalog) Similar(product Product, limit int) []Product {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	out := make([]Product, 0, limit)
	for _, p := range c.products {
		if len(out) == limit {
			break
		}
		if p.ID != product.ID && p.CategoryID == product.CategoryID {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Discounted() []Product {
	return c.filter(Product.HasDiscount)
}

func (c *Catalog) filter(keep func(Product) bool) []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
