// Package favorites holds the products a shopper has liked, in the order they
// were liked.
package favorites

import (
	"context"

	"github.com/angelmondragon/lavka-miniapp/internal/catalog"
	"github.com/angelmondragon/lavka-miniapp/internal/notify"
	"github.com/angelmondragon/lavka-miniapp/internal/persist"
)

const (
	StoreName = "favorites"
	BlobKey   = "lavka-favorites"

	OpAdd    = "add"
	OpRemove = "remove"
)

type snapshot struct {
	Items []catalog.Product `json:"items"`
}

// Store is not safe for concurrent use; the owning session serializes access.
type Store struct {
	items    []catalog.Product
	mirror   *persist.Mirror
	notifier notify.Notifier
}

// Open restores the favorites snapshot. A missing or unreadable snapshot
// yields an empty list.
func Open(ctx context.Context, params persist.Params) *Store {
	s := &Store{mirror: persist.NewMirror(StoreName, BlobKey, params)}
	var snap snapshot
	if s.mirror.Load(ctx, &snap) == persist.StatusLoaded {
		s.items = dedupe(snap.Items)
	}
	return s
}

func (s *Store) Subscribe(fn notify.Listener) func() {
	return s.notifier.Subscribe(fn)
}

// Add appends product unless it is already a favorite.
func (s *Store) Add(ctx context.Context, product catalog.Product) {
	if s.indexOf(product.ID) >= 0 {
		return
	}
	s.items = append(s.items, product)
	s.commit(ctx, OpAdd)
}

func (s *Store) Remove(ctx context.Context, productID string) {
	idx := s.indexOf(productID)
	if idx < 0 {
		return
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.commit(ctx, OpRemove)
}

func (s *Store) IsFavorite(productID string) bool {
	return s.indexOf(productID) >= 0
}

// Toggle removes product if present and adds it otherwise. It reports whether
// the product is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, product catalog.Product) bool {
	if s.IsFavorite(product.ID) {
		s.Remove(ctx, product.ID)
		return false
	}
	s.Add(ctx, product)
	return true
}

func (s *Store) Items() []catalog.Product {
	return append([]catalog.Product(nil), s.items...)
}

func (s *Store) Count() int {
	return len(s.items)
}

func (s *Store) indexOf(productID string) int {
	for i, p := range s.items {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) commit(ctx context.Context, op string) {
	s.mirror.Save(ctx, snapshot{Items: s.items})
	s.notifier.Notify(notify.Event{Store: StoreName, Op: op})
}

func dedupe(items []catalog.Product) []catalog.Product {
	seen := make(map[string]struct{}, len(items))
	out := make([]catalog.Product, 0, len(items))
	for _, p := range items {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
