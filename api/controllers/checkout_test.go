package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/angelmondragon/lavka-miniapp/internal/checkout"
	"github.com/angelmondragon/lavka-miniapp/internal/session"
	"github.com/angelmondragon/lavka-miniapp/pkg/enums"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
)

var shippingBody = map[string]any{"name": "Анна", "phone": "+7 900 000-00-00", "address": "Москва, Тверская 1"}

func TestCheckoutSubmitFromCart(t *testing.T) {
	reg := newTestRegistry(t)
	s := reg.Get(context.Background(), testShopper.ShopperKey)
	for _, id := range []string{"1", "3"} {
		if _, err := s.AddToCart(id, ""); err != nil {
			t.Fatalf("add to cart: %v", err)
		}
	}

	resp := serve(CheckoutSubmit(nil), shopperRequest(t, reg, http.MethodPost, "/api/checkout", shippingBody, nil))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var result checkoutResult
	decodeData(t, resp, &result)
	if result.Order.Total != 899+450+199 || result.Order.DeliveryFee != 199 {
		t.Fatalf("unexpected order totals %+v", result.Order)
	}
	if result.State != enums.CheckoutStateSuccess || result.Kind != checkout.KindCart || result.RedirectAfterMS != 2000 {
		t.Fatalf("unexpected result %+v", result)
	}
	if s.Cart().ItemCount != 0 {
		t.Fatal("expected cart to be cleared after checkout")
	}
	if orders := s.Orders(); len(orders) != 1 || orders[0].ID != result.Order.ID {
		t.Fatalf("expected order to be recorded, got %+v", orders)
	}
}

func TestCheckoutSubmitDirectPurchase(t *testing.T) {
	reg := newTestRegistry(t)
	s := reg.Get(context.Background(), testShopper.ShopperKey)
	if _, err := s.AddToCart("5", ""); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	body := map[string]any{
		"name":    "Анна",
		"phone":   "+7 900",
		"address": "Москва",
		"direct":  map[string]any{"product_id": "1", "variant_id": "v2"},
	}
	resp := serve(CheckoutSubmit(nil), shopperRequest(t, reg, http.MethodPost, "/api/checkout", body, nil))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var result checkoutResult
	decodeData(t, resp, &result)
	if result.Kind != checkout.KindDirect || result.Order.Total != 1699 || result.Order.DeliveryFee != 0 {
		t.Fatalf("unexpected direct order %+v", result)
	}
	if got := s.Cart().ItemCount; got != 1 {
		t.Fatalf("direct purchase must leave the cart alone, got %d items", got)
	}
}

func TestCheckoutSubmitEmptyCartRedirects(t *testing.T) {
	reg := newTestRegistry(t)
	resp := serve(CheckoutSubmit(nil), shopperRequest(t, reg, http.MethodPost, "/api/checkout", shippingBody, nil))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	apiErr := decodeError(t, resp)
	if apiErr.Code != string(pkgerrors.CodeStateConflict) {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	details, _ := apiErr.Details.(map[string]any)
	if details["state"] != string(enums.CheckoutStateRedirect) {
		t.Fatalf("expected redirect state in details, got %+v", apiErr.Details)
	}
}

func TestCheckoutSubmitIncompleteForm(t *testing.T) {
	reg := newTestRegistry(t)
	s := reg.Get(context.Background(), testShopper.ShopperKey)
	if _, err := s.AddToCart("3", ""); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	resp := serve(CheckoutSubmit(nil), shopperRequest(t, reg, http.MethodPost, "/api/checkout", map[string]any{"name": "Анна"}, nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	apiErr := decodeError(t, resp)
	details, _ := apiErr.Details.(map[string]any)
	if details["phone"] == nil || details["address"] == nil {
		t.Fatalf("expected missing fields to be reported, got %+v", apiErr.Details)
	}
	if wf, ok := s.Checkout(); !ok || wf.State() != enums.CheckoutStateForm {
		t.Fatal("expected checkout to stay on the form")
	}
	if s.Cart().ItemCount != 1 {
		t.Fatal("cart must survive a rejected submission")
	}
}

func TestCheckoutQuote(t *testing.T) {
	reg := newTestRegistry(t)
	s := reg.Get(context.Background(), testShopper.ShopperKey)
	if _, err := s.AddToCart("2", ""); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	resp := serve(CheckoutQuote(nil), shopperRequest(t, reg, http.MethodGet, "/api/checkout/quote", nil, nil))
	var preview session.CheckoutPreview
	decodeData(t, resp, &preview)
	if preview.State != enums.CheckoutStateForm || preview.Quote.Total != 145+199 || preview.Quote.UntilFreeShipping != 1500-145 {
		t.Fatalf("unexpected cart quote %+v", preview)
	}

	resp = serve(CheckoutQuote(nil), shopperRequest(t, reg, http.MethodGet, "/api/checkout/quote?product_id=4&variant_id=v2&quantity=2", nil, nil))
	preview = session.CheckoutPreview{}
	decodeData(t, resp, &preview)
	if preview.Kind != checkout.KindDirect || preview.Quote.Subtotal != 2198 || preview.Quote.DeliveryFee != 0 {
		t.Fatalf("unexpected direct quote %+v", preview)
	}
	if _, ok := s.Checkout(); ok {
		t.Fatal("quote must not start a checkout")
	}
}

func TestCheckoutQuoteRejectsQuantity(t *testing.T) {
	reg := newTestRegistry(t)
	resp := serve(CheckoutQuote(nil), shopperRequest(t, reg, http.MethodGet, "/api/checkout/quote?product_id=4&quantity=0", nil, nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
