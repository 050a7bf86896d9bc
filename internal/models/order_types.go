package models

import (
	"time"
)

const (
	PaymentUnpaid    = "Unpaid"
	StatusProcessing = "processing"
)

// OrderRequest is the payload posted to the backend's order-creation endpoint.
type OrderRequest struct {
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	ShippingAddress string     `json:"shipping_address"`
	TotalPrice      float64    `json:"total_price"` // Cart subtotal at submit time
	PaymentInfo     string     `json:"payment_info"`
	OrderStatus     string     `json:"order_status"`
	Cart            []CartItem `json:"cart"`
}

// Order is what the backend returns once an order has been created.
type Order struct {
	ID          int64     `json:"id"`
	Status      string    `json:"order_status"`
	PaymentInfo string    `json:"payment_info"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
}
