package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/angelmondragon/lavka-miniapp/internal/checkout"
	"github.com/angelmondragon/lavka-miniapp/internal/reviews"
)

func TestReviewsListIncludesSummary(t *testing.T) {
	reg := newTestRegistry(t)
	resp := serve(ReviewsList(reg, nil), shopperRequest(t, reg, http.MethodGet, "/api/products/1/reviews", nil, map[string]string{"productId": "1"}))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var payload productReviews
	decodeData(t, resp, &payload)
	if payload.Summary.ReviewCount != len(payload.Reviews) || payload.Summary.ReviewCount != 2 {
		t.Fatalf("unexpected reviews payload %+v", payload)
	}
	if payload.CanWriteReview {
		t.Fatal("shopper has no orders yet")
	}
}

func TestReviewsCreateRequiresOrder(t *testing.T) {
	reg := newTestRegistry(t)
	params := map[string]string{"productId": "6"}
	body := map[string]any{"rating": 5, "comment": "Сладкая"}

	resp := serve(ReviewsCreate(nil), shopperRequest(t, reg, http.MethodPost, "/api/products/6/reviews", body, params))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	s := reg.Get(context.Background(), testShopper.ShopperKey)
	if _, err := s.AddToCart("6", ""); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	wf, err := s.StartCheckout(nil)
	if err != nil {
		t.Fatalf("start checkout: %v", err)
	}
	if _, err := wf.Submit(context.Background(), checkout.Form{Name: "Анна", Phone: "+7 900", Address: "Москва"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	resp = serve(ReviewsCreate(nil), shopperRequest(t, reg, http.MethodPost, "/api/products/6/reviews", body, params))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var review reviews.Review
	decodeData(t, resp, &review)
	if review.UserID != "42" || review.UserName != "Анна" || review.Rating != 5 || review.Disadvantages != reviews.NoDisadvantages {
		t.Fatalf("unexpected review %+v", review)
	}
	if got := reg.Reviews().Summary("6"); got.ReviewCount != 1 || got.AverageRating != 5 {
		t.Fatalf("unexpected summary %+v", got)
	}
}

func TestReviewsCreateRejectsRating(t *testing.T) {
	reg := newTestRegistry(t)
	resp := serve(ReviewsCreate(nil), shopperRequest(t, reg, http.MethodPost, "/api/products/6/reviews", map[string]any{"rating": 6}, map[string]string{"productId": "6"}))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
