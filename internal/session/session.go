// Package session owns every store of one shopper. All operations of a
// shopper are serialized by the session lock, so each mutation commits before
// the next read.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/lavka-miniapp/internal/cart"
	"github.com/angelmondragon/lavka-miniapp/internal/catalog"
	"github.com/angelmondragon/lavka-miniapp/internal/checkout"
	"github.com/angelmondragon/lavka-miniapp/internal/favorites"
	"github.com/angelmondragon/lavka-miniapp/internal/identity"
	"github.com/angelmondragon/lavka-miniapp/internal/notify"
	"github.com/angelmondragon/lavka-miniapp/internal/orders"
	"github.com/angelmondragon/lavka-miniapp/internal/reviews"
	"github.com/angelmondragon/lavka-miniapp/pkg/enums"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
	"github.com/angelmondragon/lavka-miniapp/pkg/metrics"
)

type Session struct {
	key      string
	catalog  *catalog.Catalog
	reviews  *Reviews
	settings checkout.Settings
	logg     *logger.Logger
	metrics  *metrics.ShopMetrics
	sleep    func(time.Duration)

	mu        sync.Mutex
	cart      *cart.Store
	favorites *favorites.Store
	orders    *orders.Store
	checkout  *checkout.Workflow

	submitGuard checkout.Guard
}

// CartView is the cart page: priced lines plus the delivery summary.
type CartView struct {
	Items     []cart.Line    `json:"items"`
	ItemCount int            `json:"item_count"`
	Quote     checkout.Quote `json:"quote"`
}

func (s *Session) Key() string {
	return s.key
}

// Subscribe listens to the shopper's cart, favorites and orders. Listeners
// run under the session lock and must not call back into the session.
func (s *Session) Subscribe(fn notify.Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	unsubs := []func(){
		s.cart.Subscribe(fn),
		s.favorites.Subscribe(fn),
		s.orders.Subscribe(fn),
	}
	return func() {
		for _, unsubscribe := range unsubs {
			unsubscribe()
		}
	}
}

func (s *Session) product(productID string) (catalog.Product, error) {
	p, ok := s.catalog.ProductByID(productID)
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": productID})
	}
	return p, nil
}

// Cart returns the current cart view.
func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

func (s *Session) cartView() CartView {
	return CartView{
		Items:     s.cart.Lines(),
		ItemCount: s.cart.ItemCount(),
		Quote:     s.settings.Quote(s.cart.Total()),
	}
}

// AddToCart adds one unit of a catalog product, optionally as a variant.
func (s *Session) AddToCart(productID, variantID string) (CartView, error) {
	p, err := s.product(productID)
	if err != nil {
		return CartView{}, err
	}
	variantID = strings.TrimSpace(variantID)
	if variantID != "" {
		if _, ok := p.Variant(variantID); !ok {
			return CartView{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown product variant").
				WithDetails(map[string]any{"product_id": productID, "variant_id": variantID})
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if variantID != "" {
		s.cart.AddVariant(p, variantID)
	} else {
		s.cart.AddItem(p)
	}
	return s.cartView(), nil
}

func (s *Session) UpdateCartQuantity(productID string, quantity int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(productID, quantity)
	return s.cartView()
}

func (s *Session) RemoveFromCart(productID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(productID)
	return s.cartView()
}

func (s *Session) ClearCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.cartView()
}

func (s *Session) Favorites() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Items()
}

func (s *Session) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.IsFavorite(productID)
}

func (s *Session) AddFavorite(ctx context.Context, productID string) error {
	p, err := s.product(productID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites.Add(ctx, p)
	return nil
}

// RemoveFavorite accepts ids that are no longer in the catalog so stale
// favorites can still be dropped.
func (s *Session) RemoveFavorite(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites.Remove(ctx, productID)
}

func (s *Session) ToggleFavorite(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.favorites.IsFavorite(productID) {
		s.favorites.Remove(ctx, productID)
		return false, nil
	}
	p, err := s.product(productID)
	if err != nil {
		return false, err
	}
	s.favorites.Add(ctx, p)
	return true, nil
}

func (s *Session) Orders() []orders.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Orders()
}

func (s *Session) OrderedProductIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.OrderedProductIDs()
}

// CanWriteReview reports whether the shopper has ordered the product.
func (s *Session) CanWriteReview(productID string) bool {
	return reviews.CanWriteReview(productID, s.OrderedProductIDs())
}

// ReviewInput is what the shopper types into the review form.
type ReviewInput struct {
	Rating        int
	Advantages    string
	Disadvantages string
	Comment       string
}

// WriteReview publishes a review authored by principal. Only products the
// shopper has ordered can be reviewed.
func (s *Session) WriteReview(ctx context.Context, principal identity.Principal, productID string, input ReviewInput) (reviews.Review, error) {
	if _, err := s.product(productID); err != nil {
		return reviews.Review{}, err
	}
	if !s.CanWriteReview(productID) {
		return reviews.Review{}, pkgerrors.New(pkgerrors.CodeForbidden, "only ordered products can be reviewed")
	}
	return s.reviews.add(ctx, reviews.Input{
		ProductID:     productID,
		UserID:        principal.AuthorID(),
		UserName:      principal.Name,
		Rating:        input.Rating,
		Advantages:    input.Advantages,
		Disadvantages: input.Disadvantages,
		Comment:       input.Comment,
	})
}

// DirectPurchaseInput names a "buy now" product from the catalog.
type DirectPurchaseInput struct {
	ProductID string
	VariantID string
	Quantity  int
}

// CheckoutPreview is what the checkout page shows before the shopper submits.
type CheckoutPreview struct {
	Kind  string              `json:"kind"`
	State enums.CheckoutState `json:"state"`
	Quote checkout.Quote      `json:"quote"`
}

// PreviewCheckout prices a checkout without making it the current one.
func (s *Session) PreviewCheckout(direct *DirectPurchaseInput) (CheckoutPreview, error) {
	w, err := s.beginCheckout(direct)
	if err != nil {
		return CheckoutPreview{}, err
	}
	return CheckoutPreview{Kind: w.Kind(), State: w.State(), Quote: w.Quote()}, nil
}

// StartCheckout begins a new checkout and makes it the shopper's current
// one. A nil direct input checks out the cart.
// While any checkout of the shopper is submitting a new one is refused.
func (s *Session) StartCheckout(direct *DirectPurchaseInput) (*checkout.Workflow, error) {
	s.mu.Lock()
	err := s.checkoutBusy()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	w, err := s.beginCheckout(direct)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkoutBusy(); err != nil {
		return nil, err
	}
	s.checkout = w
	return w, nil
}

// Submitting reports whether one of the shopper's checkouts is processing.
func (s *Session) Submitting() bool {
	return s.submitGuard.Submitting()
}

func (s *Session) checkoutBusy() error {
	if s.submitGuard.Submitting() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "a checkout is already being submitted").
			WithDetails(map[string]any{"state": enums.CheckoutStateSubmitting})
	}
	return nil
}

func (s *Session) beginCheckout(direct *DirectPurchaseInput) (*checkout.Workflow, error) {
	params := checkout.Params{
		Settings: s.settings,
		Cart:     s.cart,
		Orders:   s.orders,
		Lock:     &s.mu,
		Guard:    &s.submitGuard,
		Logger:   s.logg,
		Metrics:  s.metrics,
		Sleep:    s.sleep,
	}
	if direct != nil {
		p, err := s.product(direct.ProductID)
		if err != nil {
			return nil, err
		}
		params.Direct = &checkout.DirectPurchase{
			Product:   p,
			Quantity:  direct.Quantity,
			VariantID: strings.TrimSpace(direct.VariantID),
		}
	}
	return checkout.Begin(params)
}

// Checkout returns the shopper's current checkout, if any.
func (s *Session) Checkout() (*checkout.Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout, s.checkout != nil
}
