package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/lavka-miniapp/api/controllers"
	"github.com/angelmondragon/lavka-miniapp/api/middleware"
	"github.com/angelmondragon/lavka-miniapp/internal/identity"
	"github.com/angelmondragon/lavka-miniapp/internal/session"
	"github.com/angelmondragon/lavka-miniapp/pkg/config"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
	pkgredis "github.com/angelmondragon/lavka-miniapp/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *session.Registry,
	resolver *identity.Resolver,
	pinger controllers.Pinger,
	idempotency pkgredis.IdempotencyStore,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pinger))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Shopper(resolver, registry, logg))

		r.Get("/me", controllers.Me(logg))
		r.Get("/categories", controllers.CatalogCategories(registry))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.CatalogProducts(registry))
			r.Get("/discounted", controllers.CatalogDiscounted(registry))
			r.Get("/{productId}", controllers.CatalogProduct(registry, logg))
			r.Get("/{productId}/similar", controllers.CatalogSimilar(registry, logg))
			r.Get("/{productId}/reviews", controllers.ReviewsList(registry, logg))
			r.With(middleware.Idempotency(idempotency, middleware.DefaultIdempotencyTTL, logg)).
				Post("/{productId}/reviews", controllers.ReviewsCreate(logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(logg))
			r.Delete("/", controllers.CartClear(logg))
			r.Post("/items", controllers.CartAddItem(logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(logg))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(logg))
			r.Put("/{productId}", controllers.FavoritesAdd(logg))
			r.Delete("/{productId}", controllers.FavoritesRemove(logg))
			r.Post("/{productId}/toggle", controllers.FavoritesToggle(logg))
		})

		r.Get("/orders", controllers.OrdersList(logg))

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", controllers.CheckoutQuote(logg))
			r.With(middleware.Idempotency(idempotency, middleware.CriticalIdempotencyTTL, logg)).
				Post("/", controllers.CheckoutSubmit(logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/settings", controllers.AdminSettings(registry))
		})
	})

	return r
}
