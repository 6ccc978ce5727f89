package controllers

import (
	"net/http"

	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

type favoriteState struct {
	ProductID  string `json:"product_id"`
	IsFavorite bool   `json:"is_favorite"`
}

func FavoritesList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopperSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, s.Favorites())
	}
}

// FavoritesAdd is idempotent; adding a favorite twice keeps one entry.
func FavoritesAdd(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := shopperSession(w, r, logg)
		if !ok {
			return
		}
		productID, ok := productIDFromRequest(w, r, logg)
		if !ok {
			return
		}
		if err := s.AddFavorite(ctx, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, favoriteState{ProductID: productID, IsFavorite: true})
	}
}

func FavoritesRemove(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopperSession(w, r, logg)
		if !ok {
			return
		}
		productID, ok := productIDFromRequest(w, r, logg)
		if !ok {
			return
		}
		s.RemoveFavorite(r.Context(), productID)
		responses.WriteSuccess(w, favoriteState{ProductID: productID, IsFavorite: false})
	}
}

func FavoritesToggle(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := shopperSession(w, r, logg)
		if !ok {
			return
		}
		productID, ok := productIDFromRequest(w, r, logg)
		if !ok {
			return
		}
		isFavorite, err := s.ToggleFavorite(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, favoriteState{ProductID: productID, IsFavorite: isFavorite})
	}
}
