package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/lavka-miniapp/api/middleware"
	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/internal/session"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

const productIDParam = "productId"

// shopperSession writes an error and reports false when the shopper
// middleware did not run.
func shopperSession(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (*session.Session, bool) {
	s := middleware.SessionFromContext(r.Context())
	if s == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopper session missing"))
		return nil, false
	}
	return s, true
}

func productIDFromRequest(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, productIDParam))
	if id == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
		return "", false
	}
	return id, true
}
