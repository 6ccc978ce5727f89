package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/angelmondragon/lavka-miniapp/internal/catalog"
)

func TestCatalogCategories(t *testing.T) {
	reg := newTestRegistry(t)
	resp := serve(CatalogCategories(reg), shopperRequest(t, reg, http.MethodGet, "/api/categories", nil, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var categories []catalog.Category
	decodeData(t, resp, &categories)
	if len(categories) != 5 {
		t.Fatalf("expected 5 categories got %d", len(categories))
	}
}

func TestCatalogProductsFilters(t *testing.T) {
	reg := newTestRegistry(t)

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all", query: "", want: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}},
		{name: "category", query: "?category=1", want: []string{"3", "4", "8", "10"}},
		{name: "frozen", query: "?category=frozen", want: []string{"1", "2"}},
		{name: "search", query: "?q=%D0%BC%D0%B8%D0%BD%D0%B4%D0%B0%D0%BB%D1%8C", want: []string{"3", "7"}},
		{name: "search within category", query: "?q=%D0%BC%D0%B8%D0%BD%D0%B4%D0%B0%D0%BB%D1%8C&category=1", want: []string{"3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := serve(CatalogProducts(reg), shopperRequest(t, reg, http.MethodGet, "/api/products"+tc.query, nil, nil))
			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200 got %d", resp.Code)
			}
			var products []productCard
			decodeData(t, resp, &products)
			if len(products) != len(tc.want) {
				t.Fatalf("expected %v got %d products", tc.want, len(products))
			}
			for i, id := range tc.want {
				if products[i].ID != id {
					t.Fatalf("position %d: expected %s got %s", i, id, products[i].ID)
				}
			}
		})
	}
}

func TestCatalogProductDetail(t *testing.T) {
	reg := newTestRegistry(t)
	s := reg.Get(context.Background(), testShopper.ShopperKey)
	if _, err := s.AddToCart("3", ""); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if _, err := s.AddToCart("3", ""); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := s.AddFavorite(context.Background(), "3"); err != nil {
		t.Fatalf("add favorite: %v", err)
	}

	resp := serve(CatalogProduct(reg, nil), shopperRequest(t, reg, http.MethodGet, "/api/products/3", nil, map[string]string{"productId": "3"}))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var detail productDetail
	decodeData(t, resp, &detail)
	if detail.ID != "3" || !detail.IsFavorite || detail.InCart != 2 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if detail.CanWriteReview {
		t.Fatal("product was never ordered")
	}
	if detail.Rating.ReviewCount == 0 {
		t.Fatal("expected seeded reviews for product 3")
	}
}

func TestCatalogProductNotFound(t *testing.T) {
	reg := newTestRegistry(t)
	resp := serve(CatalogProduct(reg, nil), shopperRequest(t, reg, http.MethodGet, "/api/products/99", nil, map[string]string{"productId": "99"}))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCatalogSimilarLimit(t *testing.T) {
	reg := newTestRegistry(t)
	params := map[string]string{"productId": "3"}

	resp := serve(CatalogSimilar(reg, nil), shopperRequest(t, reg, http.MethodGet, "/api/products/3/similar?limit=2", nil, params))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var products []productCard
	decodeData(t, resp, &products)
	if len(products) != 2 || products[0].ID != "4" || products[1].ID != "8" {
		t.Fatalf("unexpected similar products %+v", products)
	}

	resp = serve(CatalogSimilar(reg, nil), shopperRequest(t, reg, http.MethodGet, "/api/products/3/similar?limit=0", nil, params))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCatalogDiscounted(t *testing.T) {
	reg := newTestRegistry(t)
	resp := serve(CatalogDiscounted(reg), shopperRequest(t, reg, http.MethodGet, "/api/products/discounted", nil, nil))
	var products []productCard
	decodeData(t, resp, &products)
	if len(products) != 4 {
		t.Fatalf("expected 4 discounted products got %d", len(products))
	}
}
