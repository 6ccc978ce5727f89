package controllers

import (
	"net/http"

	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/api/validators"
	"github.com/angelmondragon/lavka-miniapp/internal/orders"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
	"github.com/angelmondragon/lavka-miniapp/pkg/pagination"
)

type ordersPage struct {
	Orders     []orders.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

func orderCursor(o orders.Order) pagination.Cursor {
	return pagination.Cursor{CreatedAt: o.CreatedAt, ID: o.ID}
}

// OrdersList returns the shopper's order history, newest first, one page at a
// time.
func OrdersList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := shopperSession(w, r, logg)
		if !ok {
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, next, err := pagination.PageNewestFirst(s.Orders(), pagination.Params{
			Limit:  limit,
			Cursor: validators.QueryID(r, "cursor"),
		}, orderCursor)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}
		responses.WriteSuccess(w, ordersPage{Orders: page, NextCursor: next})
	}
}
