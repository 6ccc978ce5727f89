package controllers

import (
	"net/http"

	"github.com/angelmondragon/lavka-miniapp/api/middleware"
	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/api/validators"
	"github.com/angelmondragon/lavka-miniapp/internal/catalog"
	"github.com/angelmondragon/lavka-miniapp/internal/session"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

const maxSimilarLimit = 50

// productCard is a catalog product decorated with the shopper's view of it.
type productCard struct {
	catalog.Product
	Rating     session.Summary `json:"rating"`
	IsFavorite bool            `json:"is_favorite"`
}

type productDetail struct {
	productCard
	CanWriteReview bool `json:"can_write_review"`
	InCart         int  `json:"in_cart"`
}

func cards(reg *session.Registry, s *session.Session, products []catalog.Product) []productCard {
	out := make([]productCard, 0, len(products))
	for _, p := range products {
		card := productCard{Product: p, Rating: reg.Reviews().Summary(p.ID)}
		if s != nil {
			card.IsFavorite = s.IsFavorite(p.ID)
		}
		out = append(out, card)
	}
	return out
}

func CatalogCategories(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, reg.Catalog().Categories())
	}
}

// CatalogProducts lists products, optionally narrowed by ?category= (including
// the "all" and "frozen" pseudo categories) and ?q= search text.
func CatalogProducts(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := reg.Catalog()
		category := validators.QueryID(r, "category")
		search := validators.QueryString(r, "q", 100)

		var products []catalog.Product
		switch {
		case search != "":
			products = c.Search(search)
			if category != "" && category != catalog.CategoryAll {
				inCategory := map[string]struct{}{}
				for _, p := range c.ProductsByCategory(category) {
					inCategory[p.ID] = struct{}{}
				}
				filtered := products[:0]
				for _, p := range products {
					if _, ok := inCategory[p.ID]; ok {
						filtered = append(filtered, p)
					}
				}
				products = filtered
			}
		case category != "":
			products = c.ProductsByCategory(category)
		default:
			products = c.Products()
		}

		responses.WriteSuccess(w, cards(reg, middleware.SessionFromContext(r.Context()), products))
	}
}

func CatalogDiscounted(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cards(reg, middleware.SessionFromContext(r.Context()), reg.Catalog().Discounted()))
	}
}

func CatalogProduct(reg *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID, ok := productIDFromRequest(w, r, logg)
		if !ok {
			return
		}
		p, found := reg.Catalog().ProductByID(productID)
		if !found {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		s := middleware.SessionFromContext(ctx)
		detail := productDetail{productCard: cards(reg, s, []catalog.Product{p})[0]}
		if s != nil {
			detail.CanWriteReview = s.CanWriteReview(p.ID)
			for _, line := range s.Cart().Items {
				if line.Product.ID == p.ID {
					detail.InCart = line.Quantity
				}
			}
		}
		responses.WriteSuccess(w, detail)
	}
}

func CatalogSimilar(reg *session.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID, ok := productIDFromRequest(w, r, logg)
		if !ok {
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", catalog.DefaultSimilarLimit, 1, maxSimilarLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		p, found := reg.Catalog().ProductByID(productID)
		if !found {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, cards(reg, middleware.SessionFromContext(ctx), reg.Catalog().Similar(p, limit)))
	}
}
