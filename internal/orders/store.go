// Package orders keeps the shopper's append-only order history, most recent
// first.
package orders

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/lavka-miniapp/internal/notify"
	"github.com/angelmondragon/lavka-miniapp/internal/persist"
	"github.com/angelmondragon/lavka-miniapp/pkg/enums"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
)

const (
	StoreName = "orders"
	BlobKey   = "lavka-orders"

	OpAdd = "add"

	idPrefix = "order-"
)

type snapshot struct {
	Orders []Order `json:"orders"`
}

type Params struct {
	persist.Params
	Clock func() time.Time
}

// Store is not safe for concurrent use; the owning session serializes access.
type Store struct {
	orders    []Order
	mirror    *persist.Mirror
	clock     func() time.Time
	lastStamp int64
	notifier  notify.Notifier
}

// Open restores the order history. A missing or unreadable snapshot yields an
// empty history.
func Open(ctx context.Context, params Params) *Store {
	s := &Store{
		mirror: persist.NewMirror(StoreName, BlobKey, params.Params),
		clock:  params.Clock,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	s.absorb(ctx)
	return s
}

// absorb merges the persisted history into memory. Another session of the
// same shopper may have recorded orders since this store was opened.
func (s *Store) absorb(ctx context.Context) {
	var snap snapshot
	if s.mirror.Load(ctx, &snap) != persist.StatusLoaded {
		return
	}
	known := make(map[string]struct{}, len(s.orders))
	for _, o := range s.orders {
		known[o.ID] = struct{}{}
	}
	merged := len(s.orders) > 0
	for _, o := range snap.Orders {
		if _, ok := known[o.ID]; ok {
			continue
		}
		s.orders = append(s.orders, o)
	}
	if merged {
		sort.SliceStable(s.orders, func(i, j int) bool {
			return stampOf(s.orders[i].ID) > stampOf(s.orders[j].ID)
		})
	}
	for _, o := range s.orders {
		if stamp := stampOf(o.ID); stamp > s.lastStamp {
			s.lastStamp = stamp
		}
	}
}

func stampOf(id string) int64 {
	stamp, err := strconv.ParseInt(strings.TrimPrefix(id, idPrefix), 10, 64)
	if err != nil {
		return 0
	}
	return stamp
}

func (s *Store) Subscribe(fn notify.Listener) func() {
	return s.notifier.Subscribe(fn)
}

// Add records a confirmed order in front of the history. The total must equal
// the line prices plus the delivery fee.
func (s *Store) Add(ctx context.Context, input Input) (Order, error) {
	if err := validateInput(input); err != nil {
		return Order{}, err
	}
	s.absorb(ctx)

	now := s.clock().UTC()
	stamp := now.UnixMilli()
	if stamp <= s.lastStamp {
		stamp = s.lastStamp + 1
	}
	s.lastStamp = stamp

	order := Order{
		ID:           idPrefix + strconv.FormatInt(stamp, 10),
		Items:        append([]Item(nil), input.Items...),
		Total:        input.Total,
		DeliveryFee:  input.DeliveryFee,
		Status:       enums.OrderStatusConfirmed,
		CreatedAt:    now,
		CustomerName: input.CustomerName,
		Address:      input.Address,
		Phone:        input.Phone,
		Comment:      input.Comment,
	}

	next := make([]Order, 0, len(s.orders)+1)
	next = append(next, order)
	s.orders = append(next, s.orders...)

	s.mirror.Save(ctx, snapshot{Orders: s.orders})
	s.notifier.Notify(notify.Event{Store: StoreName, Op: OpAdd})
	return order, nil
}

// Orders returns the full history, most recent first.
func (s *Store) Orders() []Order {
	return append([]Order(nil), s.orders...)
}

func (s *Store) Order(id string) (Order, bool) {
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// OrderedProductIDs flattens every order into the distinct product ids the
// shopper has bought, in order of first appearance.
func (s *Store) OrderedProductIDs() []string {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, o := range s.orders {
		for _, item := range o.Items {
			if _, ok := seen[item.Product.ID]; ok {
				continue
			}
			seen[item.Product.ID] = struct{}{}
			ids = append(ids, item.Product.ID)
		}
	}
	return ids
}

func validateInput(input Input) error {
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Product.ID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item product is required")
		}
		if item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item quantity must be at least 1").
				WithDetails(map[string]any{"product_id": item.Product.ID, "quantity": item.Quantity})
		}
		if item.Price < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item price must be non-negative")
		}
	}
	if input.DeliveryFee < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery fee must be non-negative")
	}
	if want := sumLines(input.Items) + input.DeliveryFee; input.Total != want {
		return pkgerrors.New(pkgerrors.CodeValidation, "order total must equal items plus delivery fee").
			WithDetails(map[string]any{"total": input.Total, "expected": want})
	}
	return nil
}
