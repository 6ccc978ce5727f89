package controllers

import (
	"net/http"
	"testing"

	"github.com/angelmondragon/lavka-miniapp/internal/catalog"
)

func TestFavoritesLifecycle(t *testing.T) {
	reg := newTestRegistry(t)
	params := map[string]string{"productId": "5"}

	resp := serve(FavoritesAdd(nil), shopperRequest(t, reg, http.MethodPut, "/api/favorites/5", nil, params))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	serve(FavoritesAdd(nil), shopperRequest(t, reg, http.MethodPut, "/api/favorites/5", nil, params))

	resp = serve(FavoritesList(nil), shopperRequest(t, reg, http.MethodGet, "/api/favorites", nil, nil))
	var items []catalog.Product
	decodeData(t, resp, &items)
	if len(items) != 1 || items[0].ID != "5" {
		t.Fatalf("expected a single favorite, got %+v", items)
	}

	resp = serve(FavoritesToggle(nil), shopperRequest(t, reg, http.MethodPost, "/api/favorites/5/toggle", nil, params))
	var state favoriteState
	decodeData(t, resp, &state)
	if state.IsFavorite {
		t.Fatal("expected toggle to remove the favorite")
	}

	resp = serve(FavoritesToggle(nil), shopperRequest(t, reg, http.MethodPost, "/api/favorites/5/toggle", nil, params))
	state = favoriteState{}
	decodeData(t, resp, &state)
	if !state.IsFavorite {
		t.Fatal("expected toggle to add the favorite back")
	}

	resp = serve(FavoritesRemove(nil), shopperRequest(t, reg, http.MethodDelete, "/api/favorites/5", nil, params))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	resp = serve(FavoritesList(nil), shopperRequest(t, reg, http.MethodGet, "/api/favorites", nil, nil))
	items = nil
	decodeData(t, resp, &items)
	if len(items) != 0 {
		t.Fatalf("expected no favorites, got %+v", items)
	}
}

func TestFavoritesAddUnknownProduct(t *testing.T) {
	reg := newTestRegistry(t)
	resp := serve(FavoritesAdd(nil), shopperRequest(t, reg, http.MethodPut, "/api/favorites/99", nil, map[string]string{"productId": "99"}))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
