// Package checkout runs one checkout attempt: Form, then Submitting, then
// Success, or Redirect when there is nothing to buy.
package checkout

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/angelmondragon/lavka-miniapp/internal/cart"
	"github.com/angelmondragon/lavka-miniapp/internal/orders"
	"github.com/angelmondragon/lavka-miniapp/pkg/enums"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

const (
	KindCart   = "cart"
	KindDirect = "direct"
)

// CartSource is the part of the cart a checkout reads and clears.
type CartSource interface {
	IsEmpty() bool
	Lines() []cart.Line
	Total() int64
	Clear()
}

type OrderRecorder interface {
	Add(ctx context.Context, input orders.Input) (orders.Order, error)
}

type OrderObserver interface {
	ObserveOrder(kind string, total int64)
}

// Guard admits one submission at a time across every workflow sharing it.
type Guard struct {
	submitting atomic.Bool
}

// Submitting reports whether a workflow holding the guard is between Form and
// its final state.
func (g *Guard) Submitting() bool {
	return g.submitting.Load()
}

func (g *Guard) claim() bool {
	return g.submitting.CompareAndSwap(false, true)
}

func (g *Guard) release() {
	g.submitting.Store(false)
}

// Params wires a workflow to the shopper's stores. Lock guards Cart and
// Orders; the workflow takes it itself, so callers must not hold it while
// calling Quote or Submit. Workflows of one shopper share Guard.
type Params struct {
	Settings Settings
	Cart     CartSource
	Orders   OrderRecorder
	Lock     sync.Locker
	Guard    *Guard
	Direct   *DirectPurchase
	Logger   *logger.Logger
	Metrics  OrderObserver
	// Sleep performs the processing delay; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Result is what a successful submission produces.
type Result struct {
	Order         orders.Order  `json:"order"`
	Kind          string        `json:"kind"`
	RedirectAfter time.Duration `json:"-"`
}

type Workflow struct {
	settings Settings
	cart     CartSource
	orders   OrderRecorder
	lock     sync.Locker
	guard    *Guard
	direct   *DirectPurchase
	logg     *logger.Logger
	metrics  OrderObserver
	sleep    func(time.Duration)

	mu    sync.Mutex
	state enums.CheckoutState
}

// Begin starts a checkout. It lands in Redirect when the cart is empty and no
// direct purchase was supplied, and in Form otherwise.
func Begin(params Params) (*Workflow, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout requires a cart")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout requires an orders store")
	}
	if params.Direct != nil {
		if err := params.Direct.validate(); err != nil {
			return nil, err
		}
	}
	w := &Workflow{
		settings: params.Settings,
		cart:     params.Cart,
		orders:   params.Orders,
		lock:     params.Lock,
		guard:    params.Guard,
		direct:   params.Direct,
		logg:     params.Logger,
		metrics:  params.Metrics,
		sleep:    params.Sleep,
	}
	if w.lock == nil {
		w.lock = &sync.Mutex{}
	}
	if w.guard == nil {
		w.guard = &Guard{}
	}
	if w.logg == nil {
		w.logg = logger.Nop()
	}
	if w.sleep == nil {
		w.sleep = time.Sleep
	}

	w.state = enums.CheckoutStateForm
	if w.direct == nil {
		w.lock.Lock()
		empty := w.cart.IsEmpty()
		w.lock.Unlock()
		if empty {
			w.state = enums.CheckoutStateRedirect
		}
	}
	return w, nil
}

func (w *Workflow) State() enums.CheckoutState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) IsDirect() bool {
	return w.direct != nil
}

func (w *Workflow) Kind() string {
	if w.direct != nil {
		return KindDirect
	}
	return KindCart
}

// Quote prices what would be ordered right now.
func (w *Workflow) Quote() Quote {
	if w.direct != nil {
		return w.settings.Quote(w.direct.LinePrice())
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.settings.Quote(w.cart.Total())
}

// Submit moves Form to Submitting, waits out the processing delay and then
// records the order atomically with clearing the cart. Only a workflow in Form
// accepts a submission, and only while no other workflow sharing the guard is
// submitting; an incomplete form leaves it in Form. The delay is not
// interrupted by ctx.
func (w *Workflow) Submit(ctx context.Context, form Form) (Result, error) {
	form = form.normalized()

	w.mu.Lock()
	if w.state != enums.CheckoutStateForm {
		state := w.state
		w.mu.Unlock()
		return Result{}, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is not accepting submissions").
			WithDetails(map[string]any{"state": state})
	}
	if err := form.Validate(); err != nil {
		w.mu.Unlock()
		return Result{}, err
	}
	if !w.guard.claim() {
		w.mu.Unlock()
		return Result{}, pkgerrors.New(pkgerrors.CodeStateConflict, "a checkout is already being submitted").
			WithDetails(map[string]any{"state": enums.CheckoutStateSubmitting})
	}
	w.state = enums.CheckoutStateSubmitting
	w.mu.Unlock()
	defer w.guard.release()

	ctx = w.logg.WithField(ctx, "checkout_kind", w.Kind())
	w.logg.Info(ctx, "checkout.submitted")

	w.sleep(w.settings.ProcessingDelay)

	order, err := w.commit(ctx, form)
	if err != nil {
		next := enums.CheckoutStateForm
		if pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
			next = enums.CheckoutStateRedirect
		}
		w.setState(next)
		w.logg.WarnErr(ctx, "checkout.aborted", err)
		return Result{}, err
	}
	w.setState(enums.CheckoutStateSuccess)

	if w.metrics != nil {
		w.metrics.ObserveOrder(w.Kind(), order.Total)
	}
	ctx = w.logg.WithFields(ctx, map[string]any{
		"order_id":     order.ID,
		"order_total":  order.Total,
		"delivery_fee": order.DeliveryFee,
	})
	w.logg.Info(ctx, "checkout.completed")

	return Result{Order: order, Kind: w.Kind(), RedirectAfter: w.settings.RedirectDelay}, nil
}

func (w *Workflow) commit(ctx context.Context, form Form) (orders.Order, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var items []orders.Item
	if w.direct != nil {
		items = []orders.Item{{
			Product:   w.direct.Product,
			Quantity:  w.direct.Quantity,
			Price:     w.direct.LinePrice(),
			VariantID: w.direct.VariantID,
		}}
	} else {
		if w.cart.IsEmpty() {
			return orders.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart was emptied before checkout completed")
		}
		for _, line := range w.cart.Lines() {
			items = append(items, orders.Item{
				Product:   line.Product,
				Quantity:  line.Quantity,
				Price:     line.LinePrice,
				VariantID: line.VariantID,
			})
		}
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.Price
	}
	fee := w.settings.DeliveryFeeFor(subtotal)

	order, err := w.orders.Add(ctx, orders.Input{
		Items:        items,
		Total:        subtotal + fee,
		DeliveryFee:  fee,
		CustomerName: form.Name,
		Address:      form.Address,
		Phone:        form.Phone,
		Comment:      form.Comment,
	})
	if err != nil {
		return orders.Order{}, err
	}
	if w.direct == nil {
		w.cart.Clear()
	}
	return order, nil
}

func (w *Workflow) setState(state enums.CheckoutState) {
	w.mu.Lock()
	w.state = state
	w.mu.Unlock()
}
