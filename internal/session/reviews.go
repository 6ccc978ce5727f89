package session

import (
	"context"
	"sync"

	"github.com/angelmondragon/lavka-miniapp/internal/notify"
	"github.com/angelmondragon/lavka-miniapp/internal/reviews"
)

// Reviews is the shop-wide review board shared by every shopper.
type Reviews struct {
	mu    sync.Mutex
	store *reviews.Store
}

// Summary is the rating badge shown next to a product.
type Summary struct {
	ProductID     string  `json:"product_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

func newReviews(store *reviews.Store) *Reviews {
	return &Reviews{store: store}
}

func (r *Reviews) Subscribe(fn notify.Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Subscribe(fn)
}

func (r *Reviews) ProductReviews(productID string) []reviews.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.ProductReviews(productID)
}

func (r *Reviews) Summary(productID string) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summary{
		ProductID:     productID,
		AverageRating: r.store.AverageRating(productID),
		ReviewCount:   r.store.ReviewCount(productID),
	}
}

func (r *Reviews) add(ctx context.Context, input reviews.Input) (reviews.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Add(ctx, input)
}
