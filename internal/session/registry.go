package session

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/lavka-miniapp/internal/cart"
	"github.com/angelmondragon/lavka-miniapp/internal/catalog"
	"github.com/angelmondragon/lavka-miniapp/internal/checkout"
	"github.com/angelmondragon/lavka-miniapp/internal/favorites"
	"github.com/angelmondragon/lavka-miniapp/internal/notify"
	"github.com/angelmondragon/lavka-miniapp/internal/orders"
	"github.com/angelmondragon/lavka-miniapp/internal/persist"
	"github.com/angelmondragon/lavka-miniapp/internal/reviews"
	"github.com/angelmondragon/lavka-miniapp/pkg/blobstore"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
	"github.com/angelmondragon/lavka-miniapp/pkg/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultIdleTTL     = 24 * time.Hour
	defaultMaxSessions = 10000

	shopNamespace    = "shop"
	shopperNamespace = "shopper"
)

// Params configures the registry. Blobs may be nil to keep everything in
// memory.
type Params struct {
	Catalog     *catalog.Catalog
	Blobs       blobstore.Store
	Settings    checkout.Settings
	Logger      *logger.Logger
	Metrics     *metrics.ShopMetrics
	IdleTTL     time.Duration
	MaxSessions int
	// Clock and Sleep are passed to the stores and checkouts; tests override them.
	Clock func() time.Time
	Sleep func(time.Duration)
}

// Registry hands out one Session per shopper key. Idle sessions are evicted,
// which drops their cart; persisted stores are reloaded on the next visit. A
// session evicted while a checkout is submitting is kept aside and handed out
// again, so a shopper never has two live sessions.
type Registry struct {
	catalog  *catalog.Catalog
	blobs    blobstore.Store
	settings checkout.Settings
	logg     *logger.Logger
	metrics  *metrics.ShopMetrics
	clock    func() time.Time
	sleep    func(time.Duration)
	reviews  *Reviews

	mu       sync.Mutex
	sessions *expirable.LRU[string, *Session]

	// draining holds evicted sessions whose checkout was still submitting.
	drainMu  sync.Mutex
	draining map[string]*Session
}

func NewRegistry(ctx context.Context, params Params) *Registry {
	r := &Registry{
		catalog:  params.Catalog,
		blobs:    params.Blobs,
		settings: params.Settings,
		logg:     params.Logger,
		metrics:  params.Metrics,
		clock:    params.Clock,
		sleep:    params.Sleep,
		draining: map[string]*Session{},
	}
	if r.catalog == nil {
		r.catalog = catalog.Default()
	}
	if r.logg == nil {
		r.logg = logger.Nop()
	}
	ttl := params.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	size := params.MaxSessions
	if size <= 0 {
		size = defaultMaxSessions
	}

	r.sessions = expirable.NewLRU[string, *Session](size, r.evicted, ttl)

	r.reviews = newReviews(reviews.Open(ctx, reviews.Params{
		Params: r.persistParams(shopNamespace),
		Clock:  r.clock,
	}))
	return r
}

func (r *Registry) Catalog() *catalog.Catalog {
	return r.catalog
}

func (r *Registry) Reviews() *Reviews {
	return r.reviews
}

func (r *Registry) Settings() checkout.Settings {
	return r.settings
}

// Get returns the shopper's session, opening it on first use. Every hit
// restarts the idle timer.
func (r *Registry) Get(ctx context.Context, shopperKey string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions.Get(shopperKey)
	if !ok {
		s, ok = r.reclaim(shopperKey)
	}
	if !ok {
		s = r.open(ctx, shopperKey)
	}
	r.sessions.Add(shopperKey, s)
	r.metrics.SetLiveSessions(r.sessions.Len())
	return s
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Purge drops every live session.
func (r *Registry) Purge() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions.Purge()
	r.metrics.SetLiveSessions(0)
}

func (r *Registry) evicted(key string, s *Session) {
	ctx := r.logg.WithShopperID(context.Background(), key)
	if !s.Submitting() {
		r.logg.Debug(ctx, "session.evicted")
		return
	}
	r.drainMu.Lock()
	r.draining[key] = s
	r.drainMu.Unlock()
	r.logg.Debug(ctx, "session.evicted_while_submitting")
}

// reclaim returns a session evicted mid-checkout and forgets the ones whose
// checkout has since finished.
func (r *Registry) reclaim(key string) (*Session, bool) {
	r.drainMu.Lock()
	defer r.drainMu.Unlock()
	s, ok := r.draining[key]
	delete(r.draining, key)
	for k, other := range r.draining {
		if !other.Submitting() {
			delete(r.draining, k)
		}
	}
	return s, ok
}

func (r *Registry) open(ctx context.Context, shopperKey string) *Session {
	ctx = r.logg.WithShopperID(ctx, shopperKey)
	params := r.persistParams(shopperNamespace + ":" + shopperKey)

	s := &Session{
		key:       shopperKey,
		catalog:   r.catalog,
		reviews:   r.reviews,
		settings:  r.settings,
		logg:      r.logg,
		metrics:   r.metrics,
		sleep:     r.sleep,
		cart:      cart.New(r.catalog),
		favorites: favorites.Open(ctx, params),
		orders:    orders.Open(ctx, orders.Params{Params: params, Clock: r.clock}),
	}
	s.cart.Subscribe(func(ev notify.Event) {
		r.metrics.IncCartMutation(ev.Op)
	})
	r.logg.Debug(ctx, "session.opened")
	return s
}

func (r *Registry) persistParams(namespace string) persist.Params {
	var blobs blobstore.Store
	if r.blobs != nil {
		blobs = blobstore.Prefixed(r.blobs, namespace)
	}
	return persist.Params{Blobs: blobs, Logger: r.logg, Metrics: r.metrics}
}
