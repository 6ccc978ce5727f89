package controllers

import (
	"net/http"

	"github.com/angelmondragon/lavka-miniapp/api/responses"
	"github.com/angelmondragon/lavka-miniapp/internal/session"
)

type adminSettings struct {
	FreeShippingThreshold int64 `json:"free_shipping_threshold"`
	DeliveryFee           int64 `json:"delivery_fee"`
	ProcessingDelayMS     int64 `json:"processing_delay_ms"`
	RedirectDelayMS       int64 `json:"redirect_delay_ms"`
	ProductCount          int   `json:"product_count"`
	CategoryCount         int   `json:"category_count"`
	LiveSessions          int   `json:"live_sessions"`
}

// AdminSettings reports the running shop configuration.
func AdminSettings(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings := reg.Settings()
		responses.WriteSuccess(w, adminSettings{
			FreeShippingThreshold: settings.FreeShippingThreshold,
			DeliveryFee:           settings.DeliveryFee,
			ProcessingDelayMS:     settings.ProcessingDelay.Milliseconds(),
			RedirectDelayMS:       settings.RedirectDelay.Milliseconds(),
			ProductCount:          len(reg.Catalog().Products()),
			CategoryCount:         len(reg.Catalog().Categories()),
			LiveSessions:          reg.Len(),
		})
	}
}
