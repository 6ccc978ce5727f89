// Package reviews stores product reviews most-recent-first and derives the
// per-product aggregates shown next to each product.
package reviews

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/lavka-miniapp/internal/notify"
	"github.com/angelmondragon/lavka-miniapp/internal/persist"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StoreName = "reviews"
	BlobKey   = "lavka-reviews"

	OpAdd = "add"
)

type snapshot struct {
	Reviews []Review `json:"reviews"`
}

// Params configures a reviews store. Clock and NewID default to wall time and
// random uuids.
type Params struct {
	persist.Params
	Clock func() time.Time
	NewID func() string
}

// Store is not safe for concurrent use; the owning session serializes access.
type Store struct {
	reviews  []Review
	mirror   *persist.Mirror
	clock    func() time.Time
	newID    func() string
	notifier notify.Notifier
}

// Open restores the reviews snapshot. When no snapshot was ever written the
// store starts with the seed reviews; an unreadable snapshot starts empty.
func Open(ctx context.Context, params Params) *Store {
	s := &Store{
		mirror: persist.NewMirror(StoreName, BlobKey, params.Params),
		clock:  params.Clock,
		newID:  params.NewID,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return "review-" + uuid.NewString() }
	}

	var snap snapshot
	switch s.mirror.Load(ctx, &snap) {
	case persist.StatusLoaded:
		s.reviews = snap.Reviews
	case persist.StatusMissing:
		s.reviews = seedReviews()
	}
	return s
}

func (s *Store) Subscribe(fn notify.Listener) func() {
	return s.notifier.Subscribe(fn)
}

// Add records a new review in front of the existing ones. The rating must be
// within MinRating..MaxRating; blank disadvantages and authors get defaults.
func (s *Store) Add(ctx context.Context, input Input) (Review, error) {
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return Review{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Rating < MinRating || input.Rating > MaxRating {
		return Review{}, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5").
			WithDetails(map[string]any{"rating": input.Rating})
	}

	review := Review{
		ID:            s.newID(),
		ProductID:     productID,
		UserID:        strings.TrimSpace(input.UserID),
		UserName:      strings.TrimSpace(input.UserName),
		Rating:        input.Rating,
		Advantages:    strings.TrimSpace(input.Advantages),
		Disadvantages: strings.TrimSpace(input.Disadvantages),
		Comment:       strings.TrimSpace(input.Comment),
		CreatedAt:     s.clock().UTC(),
	}
	if review.Disadvantages == "" {
		review.Disadvantages = NoDisadvantages
	}
	if review.UserID == "" {
		review.UserID = GuestAuthorID
	}
	if review.UserName == "" {
		review.UserName = GuestAuthorName
	}

	next := make([]Review, 0, len(s.reviews)+1)
	next = append(next, review)
	s.reviews = append(next, s.reviews...)

	s.mirror.Save(ctx, snapshot{Reviews: s.reviews})
	s.notifier.Notify(notify.Event{Store: StoreName, Op: OpAdd})
	return review, nil
}

// All returns every review, most recent first.
func (s *Store) All() []Review {
	return append([]Review(nil), s.reviews...)
}

// ProductReviews returns the reviews of one product in collection order.
func (s *Store) ProductReviews(productID string) []Review {
	out := []Review{}
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

// AverageRating is the mean rating of a product rounded half up to one
// decimal place, or 0 when the product has no reviews.
func (s *Store) AverageRating(productID string) float64 {
	var sum, count int64
	for _, r := range s.reviews {
		if r.ProductID == productID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)).Round(1)
	return avg.InexactFloat64()
}

func (s *Store) ReviewCount(productID string) int {
	count := 0
	for _, r := range s.reviews {
		if r.ProductID == productID {
			count++
		}
	}
	return count
}

// CanWriteReview reports whether productID is among orderedProductIDs. The
// caller derives that list from the shopper's order history.
func CanWriteReview(productID string, orderedProductIDs []string) bool {
	for _, id := range orderedProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// CanWriteReview is the method form of the package-level predicate.
func (s *Store) CanWriteReview(productID string, orderedProductIDs []string) bool {
	return CanWriteReview(productID, orderedProductIDs)
}
