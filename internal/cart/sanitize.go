package cart

import (
	"math"
	"strings"

	"github.com/01moynul/grocery-storefront/internal/models"
	"github.com/shopspring/decimal"
)

const (
	DefaultName             = "Unknown Product"
	DefaultPlaceholderImage = "/images/placeholder.png"
)

// Sanitize turns a catalog product into a fully populated line item.
// Checks run in order: product/id, unit price, quantity, then the line
// total, which must stay within float64 range. The first failure is
// returned.
func Sanitize(p *models.Product, quantity int, placeholder string) (models.CartItem, error) {
	if p == nil || p.ID == 0 {
		return models.CartItem{}, ErrProductNotFound
	}

	price, ok := p.EffectivePrice()
	if !ok || !validPrice(price) {
		return models.CartItem{}, ErrInvalidPrice
	}

	if quantity <= 0 {
		return models.CartItem{}, ErrInvalidQuantity
	}

	total := lineTotal(price, quantity)
	if !finite(total) {
		return models.CartItem{}, ErrInvalidPrice
	}

	name := strings.TrimSpace(p.DisplayName())
	if name == "" {
		name = DefaultName
	}

	if placeholder == "" {
		placeholder = DefaultPlaceholderImage
	}
	image := placeholder
	if p.ImageURL != nil && strings.TrimSpace(*p.ImageURL) != "" {
		image = *p.ImageURL
	}

	return models.CartItem{
		ID:         p.ID,
		Name:       name,
		Image:      image,
		Price:      price,
		Quantity:   quantity,
		TotalPrice: total,
	}, nil
}

// NaN compares false against everything, so "> 0" alone would let it through.
func validPrice(price float64) bool {
	return price > 0 && finite(price)
}

func lineTotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).InexactFloat64()
}

// subtotal is +Inf when any line total is out of range or the sum is.
func subtotal(items []models.CartItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		if !finite(it.TotalPrice) {
			return math.Inf(1)
		}
		sum = sum.Add(decimal.NewFromFloat(it.TotalPrice))
	}
	return sum.InexactFloat64()
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
