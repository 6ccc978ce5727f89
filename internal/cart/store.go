// Package cart holds the shopper's in-progress selection. The cart lives only
// as long as the shopper's session and is never persisted.
package cart

import (
	"github.com/angelmondragon/lavka-miniapp/internal/catalog"
	"github.com/angelmondragon/lavka-miniapp/internal/notify"
)

const StoreName = "cart"

const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
	OpClear  = "clear"
)

// Item is one cart entry. There is at most one entry per product id.
type Item struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	VariantID string          `json:"variant_id,omitempty"`
}

// Line is an item priced at the current catalog price.
type Line struct {
	Item
	UnitPrice int64 `json:"unit_price"`
	LinePrice int64 `json:"line_price"`
}

// ProductLookup resolves the current version of a product. The cart prices
// entries through it so totals follow catalog price changes.
type ProductLookup interface {
	ProductByID(id string) (catalog.Product, bool)
}

// Store is not safe for concurrent use; the owning session serializes access.
type Store struct {
	items    []Item
	products ProductLookup
	notifier notify.Notifier
}

// New returns an empty cart. A nil lookup prices entries from the product
// captured when it was added.
func New(products ProductLookup) *Store {
	return &Store{products: products}
}

func (s *Store) Subscribe(fn notify.Listener) func() {
	return s.notifier.Subscribe(fn)
}

// AddItem increments the entry for product, inserting it with quantity 1 on
// first add.
func (s *Store) AddItem(product catalog.Product) {
	s.add(product, "")
}

// AddVariant behaves like AddItem and records variantID on a new entry. An
// existing entry keeps the variant it was created with.
func (s *Store) AddVariant(product catalog.Product, variantID string) {
	s.add(product, variantID)
}

func (s *Store) add(product catalog.Product, variantID string) {
	if idx := s.indexOf(product.ID); idx >= 0 {
		s.items[idx].Quantity++
	} else {
		s.items = append(s.items, Item{Product: product, Quantity: 1, VariantID: variantID})
	}
	s.emit(OpAdd)
}

// UpdateQuantity sets the quantity of an existing entry. A quantity of zero or
// less removes the entry. Unknown products are ignored.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	idx := s.indexOf(productID)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		s.removeAt(idx)
		s.emit(OpRemove)
		return
	}
	s.items[idx].Quantity = quantity
	s.emit(OpUpdate)
}

func (s *Store) RemoveItem(productID string) {
	idx := s.indexOf(productID)
	if idx < 0 {
		return
	}
	s.removeAt(idx)
	s.emit(OpRemove)
}

func (s *Store) Clear() {
	s.items = nil
	s.emit(OpClear)
}

// Items returns a copy of the entries in insertion order.
func (s *Store) Items() []Item {
	return append([]Item(nil), s.items...)
}

// Get returns the entry for productID.
func (s *Store) Get(productID string) (Item, bool) {
	idx := s.indexOf(productID)
	if idx < 0 {
		return Item{}, false
	}
	return s.items[idx], true
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// Lines prices every entry at the current catalog price.
func (s *Store) Lines() []Line {
	lines := make([]Line, 0, len(s.items))
	for _, item := range s.items {
		unit := s.unitPrice(item)
		lines = append(lines, Line{Item: item, UnitPrice: unit, LinePrice: unit * int64(item.Quantity)})
	}
	return lines
}

// Total is the sum of price times quantity, recomputed on every call.
func (s *Store) Total() int64 {
	var total int64
	for _, item := range s.items {
		total += s.unitPrice(item) * int64(item.Quantity)
	}
	return total
}

// ItemCount is the number of units, not the number of distinct products.
func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) unitPrice(item Item) int64 {
	product := item.Product
	if s.products != nil {
		if live, ok := s.products.ProductByID(product.ID); ok {
			product = live
		}
	}
	return product.UnitPrice(item.VariantID)
}

func (s *Store) indexOf(productID string) int {
	for i, item := range s.items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(idx int) {
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
}

func (s *Store) emit(op string) {
	s.notifier.Notify(notify.Event{Store: StoreName, Op: op})
}
