package models

// CartItem is one line of the storefront cart, persisted under the "cart"
// storage slot as part of a JSON array.
type CartItem struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`      // Unit price at the time of the last add
	Quantity   int     `json:"quantity"`   // Always > 0
	TotalPrice float64 `json:"totalPrice"` // Price * Quantity
}
