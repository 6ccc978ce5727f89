package checkout

import (
	"time"

	"github.com/angelmondragon/lavka-miniapp/pkg/config"
)

// Settings is the delivery fee rule plus the simulated processing timings.
// Amounts are whole rubles.
type Settings struct {
	FreeShippingThreshold int64         `json:"free_shipping_threshold"`
	DeliveryFee           int64         `json:"delivery_fee"`
	ProcessingDelay       time.Duration `json:"-"`
	RedirectDelay         time.Duration `json:"-"`
}

func SettingsFromConfig(cfg config.CheckoutConfig) Settings {
	return Settings{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		DeliveryFee:           cfg.DeliveryFee,
		ProcessingDelay:       cfg.ProcessingDelay,
		RedirectDelay:         cfg.RedirectDelay,
	}
}

// DeliveryFeeFor is free from the threshold up and flat below it.
func (s Settings) DeliveryFeeFor(subtotal int64) int64 {
	if subtotal >= s.FreeShippingThreshold {
		return 0
	}
	return s.DeliveryFee
}

// Quote is the price summary shown before the shopper submits.
type Quote struct {
	Subtotal          int64 `json:"subtotal"`
	DeliveryFee       int64 `json:"delivery_fee"`
	Total             int64 `json:"total"`
	UntilFreeShipping int64 `json:"until_free_shipping"`
}

func (s Settings) Quote(subtotal int64) Quote {
	fee := s.DeliveryFeeFor(subtotal)
	var missing int64
	if subtotal < s.FreeShippingThreshold {
		missing = s.FreeShippingThreshold - subtotal
	}
	return Quote{
		Subtotal:          subtotal,
		DeliveryFee:       fee,
		Total:             subtotal + fee,
		UntilFreeShipping: missing,
	}
}
