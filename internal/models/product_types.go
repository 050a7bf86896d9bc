package models

import (
	"time"
)

// Product is the catalog record served by the backend.
// Optional fields are pointers so an absent value is not confused with zero.
type Product struct {
	ID          int64    `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	FinalPrice  *float64 `json:"final_price,omitempty"` // Discounted price, wins over Price
	ImageURL    *string  `json:"image_url,omitempty"`

	// --- Catalog grouping ---
	CategoryID *int64 `json:"category_id,omitempty"`
	BrandID    *int64 `json:"brand_id,omitempty"`
	Stock      *int   `json:"stock,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// EffectivePrice returns final_price if present, otherwise price.
// The boolean is false when neither is set.
func (p *Product) EffectivePrice() (float64, bool) {
	if p.FinalPrice != nil {
		return *p.FinalPrice, true
	}
	if p.Price != nil {
		return *p.Price, true
	}
	return 0, false
}

// DisplayName returns the product name or "" when the backend omitted it.
func (p *Product) DisplayName() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}
