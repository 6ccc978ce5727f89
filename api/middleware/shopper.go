package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/internal/identity"
	"github.com/angelmondragon/lavka-miniapp/internal/session"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
	"github.com/google/uuid"
)

const (
	initDataHeader  = "X-Telegram-Init-Data"
	shopperIDHeader = "X-Shopper-Id"

	initDataAuthScheme = "tma "
)

// Shopper resolves who is calling from the mini-app launch data and attaches
// the principal and the shopper's session to the request context. Requests
// without launch data are served as a guest of their device; a guest that
// sent no device id gets a fresh one back in X-Shopper-Id.
func Shopper(resolver *identity.Resolver, registry *session.Registry, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			deviceID := strings.TrimSpace(r.Header.Get(shopperIDHeader))
			issued := deviceID == ""
			if issued {
				deviceID = uuid.NewString()
			}

			principal, err := resolver.Resolve(initDataFromRequest(r), deviceID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if principal.IsGuest && issued {
				w.Header().Set(shopperIDHeader, deviceID)
			}

			if logg != nil {
				ctx = logg.WithShopperID(ctx, principal.ShopperKey)
			}
			ctx = identity.WithPrincipal(ctx, principal)
			ctx = WithSession(ctx, registry.Get(ctx, principal.ShopperKey))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func initDataFromRequest(r *http.Request) string {
	if raw := strings.TrimSpace(r.Header.Get(initDataHeader)); raw != "" {
		return raw
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > len(initDataAuthScheme) && strings.EqualFold(auth[:len(initDataAuthScheme)], initDataAuthScheme) {
		return strings.TrimSpace(auth[len(initDataAuthScheme):])
	}
	return ""
}
