package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/lavka-miniapp/pkg/config"
	"github.com/angelmondragon/lavka-miniapp/pkg/enums"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func healthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.Storage.Driver = enums.StorageDriverRedis
	return cfg
}

func TestHealthLive(t *testing.T) {
	resp := serve(HealthLive(healthConfig()), httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get(envHeader) != "dev" {
		t.Fatalf("expected env header, got %q", resp.Header().Get(envHeader))
	}
}

func TestHealthReady(t *testing.T) {
	cfg := healthConfig()

	resp := serve(HealthReady(cfg, nil, stubPinger{}), httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	resp = serve(HealthReady(cfg, nil, stubPinger{err: errors.New("connection refused")}), httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}

	resp = serve(HealthReady(cfg, nil, nil), httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected nil pinger to be ready, got %d", resp.Code)
	}
}

func TestMe(t *testing.T) {
	reg := newTestRegistry(t)
	resp := serve(Me(nil), shopperRequest(t, reg, http.MethodGet, "/api/me", nil, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	resp = serve(Me(nil), httptest.NewRequest(http.MethodGet, "/api/me", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
