package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/pkg/config"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

const envHeader = "X-Lavka-Env"

// Pinger is the storage backend readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready when the blob backend answers. A nil pinger means
// the in-memory backend, which is always ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage not ready").
					WithDetails(map[string]any{"storage": cfg.Storage.Driver.String()}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "storage": cfg.Storage.Driver.String()})
	}
}
