package orders

import (
	"time"

	"github.com/angelmondragon/lavka-miniapp/internal/catalog"
	"github.com/angelmondragon/lavka-miniapp/pkg/enums"
)

// Item is one ordered product. Price is the line price (unit price times
// quantity) fixed at checkout.
type Item struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     int64           `json:"price"`
	VariantID string          `json:"variant_id,omitempty"`
}

// Order is immutable once recorded.
type Order struct {
	ID           string            `json:"id"`
	Items        []Item            `json:"items"`
	Total        int64             `json:"total"`
	DeliveryFee  int64             `json:"delivery_fee"`
	Status       enums.OrderStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	CustomerName string            `json:"customer_name"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	Comment      string            `json:"comment,omitempty"`
}

// Subtotal is the sum of line prices before delivery.
func (o Order) Subtotal() int64 {
	return sumLines(o.Items)
}

// Input carries everything the store does not assign itself.
type Input struct {
	Items        []Item
	Total        int64
	DeliveryFee  int64
	CustomerName string
	Address      string
	Phone        string
	Comment      string
}

func sumLines(items []Item) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Price
	}
	return sum
}
