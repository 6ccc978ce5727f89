package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/api/validators"
	"github.com/angelmondragon/lavka-miniapp/internal/checkout"
	"github.com/angelmondragon/lavka-miniapp/internal/orders"
	"github.com/angelmondragon/lavka-miniapp/internal/session"
	"github.com/angelmondragon/lavka-miniapp/pkg/enums"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

const maxDirectQuantity = 99

type directPurchaseRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type submitCheckoutRequest struct {
	Name    string                 `json:"name"`
	Phone   string                 `json:"phone"`
	Address string                 `json:"address"`
	Comment string                 `json:"comment"`
	Direct  *directPurchaseRequest `json:"direct,omitempty"`
}

type checkoutResult struct {
	Order           orders.Order        `json:"order"`
	Kind            string              `json:"kind"`
	State           enums.CheckoutState `json:"state"`
	RedirectAfterMS int64               `json:"redirect_after_ms"`
}

func (d *directPurchaseRequest) input() *session.DirectPurchaseInput {
	if d == nil {
		return nil
	}
	quantity := d.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return &session.DirectPurchaseInput{
		ProductID: strings.TrimSpace(d.ProductID),
		VariantID: d.VariantID,
		Quantity:  quantity,
	}
}

// directFromQuery reads an optional "buy now" selection from the query string.
func directFromQuery(r *http.Request) (*directPurchaseRequest, error) {
	productID := validators.QueryID(r, "product_id")
	if productID == "" {
		return nil, nil
	}
	quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, maxDirectQuantity)
	if err != nil {
		return nil, err
	}
	return &directPurchaseRequest{
		ProductID: productID,
		VariantID: validators.QueryID(r, "variant_id"),
		Quantity:  quantity,
	}, nil
}

// CheckoutQuote prices the cart, or a direct purchase named in the query,
// without starting a checkout.
func CheckoutQuote(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := shopperSession(w, r, logg)
		if !ok {
			return
		}
		direct, err := directFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		preview, err := s.PreviewCheckout(direct.input())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, preview)
	}
}

// CheckoutSubmit places an order from the cart or from a direct purchase. The
// response is sent once the simulated processing delay has elapsed.
func CheckoutSubmit(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := shopperSession(w, r, logg)
		if !ok {
			return
		}
		var req submitCheckoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		wf, err := s.StartCheckout(req.Direct.input())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if wf.State() == enums.CheckoutStateRedirect {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty").
				WithDetails(map[string]any{"state": enums.CheckoutStateRedirect}))
			return
		}

		result, err := wf.Submit(ctx, checkout.Form{
			Name:    validators.SanitizeString(req.Name, 200),
			Phone:   validators.SanitizeString(req.Phone, 50),
			Address: validators.SanitizeString(req.Address, 500),
			Comment: validators.SanitizeString(req.Comment, 1000),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResult{
			Order:           result.Order,
			Kind:            result.Kind,
			State:           wf.State(),
			RedirectAfterMS: result.RedirectAfter.Milliseconds(),
		})
	}
}
