package controllers

import (
	"net/http"

	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/internal/identity"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

// Me returns the current shopper as resolved from the launch data.
func Me(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := identity.FromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shopper not resolved"))
			return
		}
		responses.WriteSuccess(w, principal)
	}
}
