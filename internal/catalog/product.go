package catalog

// Product is an immutable catalog entry. Prices are whole rubles.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           int64     `json:"price"`
	OriginalPrice   *int64    `json:"original_price,omitempty"`
	DiscountPercent *int      `json:"discount_percent,omitempty"`
	CategoryID      string    `json:"category_id"`
	Images          []string  `json:"images"`
	Tags            []string  `json:"tags"`
	Weight          string    `json:"weight"`
	InStock         bool      `json:"in_stock"`
	IsFrozen        bool      `json:"is_frozen"`
	Variants        []Variant `json:"variants,omitempty"`
}

// Variant is a packaging option of a product with its own price.
type Variant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Weight string `json:"weight"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Slug string `json:"slug"`
}

// HasDiscount reports whether the product carries a discount badge.
func (p Product) HasDiscount() bool {
	return p.DiscountPercent != nil && *p.DiscountPercent > 0
}

// Variant returns the variant with the given id.
func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// UnitPrice resolves the price of one unit, preferring the named variant.
// An empty or unknown variant id falls back to the base price.
func (p Product) UnitPrice(variantID string) int64 {
	if variantID != "" {
		if v, ok := p.Variant(variantID); ok {
			return v.Price
		}
	}
	return p.Price
}
