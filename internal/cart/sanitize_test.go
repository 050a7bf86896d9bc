package cart_test

import (
	"math"
	"testing"

	"github.com/01moynul/grocery-storefront/internal/cart"
	"github.com/01moynul/grocery-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_PrefersFinalPrice(t *testing.T) {
	line, err := cart.Sanitize(product(1, "Milk", floatPtr(60), floatPtr(50)), 2, "")

	require.NoError(t, err)
	assert.Equal(t, models.CartItem{
		ID:         1,
		Name:       "Milk",
		Image:      cart.DefaultPlaceholderImage,
		Price:      50,
		Quantity:   2,
		TotalPrice: 100,
	}, line)
}

func TestSanitize_FallsBackToPrice(t *testing.T) {
	line, err := cart.Sanitize(product(2, "Eggs", floatPtr(20), nil), 1, "")

	require.NoError(t, err)
	assert.Equal(t, 20.0, line.Price)
	assert.Equal(t, 20.0, line.TotalPrice)
}

func TestSanitize_DefaultsMissingFields(t *testing.T) {
	p := &models.Product{ID: 3, Price: floatPtr(5), ImageURL: strPtr("  ")}

	line, err := cart.Sanitize(p, 1, "/static/none.png")

	require.NoError(t, err)
	assert.Equal(t, cart.DefaultName, line.Name)
	assert.Equal(t, "/static/none.png", line.Image)
}

func TestSanitize_KeepsImageURL(t *testing.T) {
	p := &models.Product{ID: 3, Price: floatPtr(5), ImageURL: strPtr("https://cdn.example.com/rice.jpg")}

	line, err := cart.Sanitize(p, 1, "")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/rice.jpg", line.Image)
}

func TestSanitize_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		product  *models.Product
		quantity int
		want     error
	}{
		{"nil product", nil, 1, cart.ErrProductNotFound},
		{"zero id", product(0, "x", floatPtr(10), nil), 1, cart.ErrProductNotFound},
		{"no price at all", product(1, "x", nil, nil), 1, cart.ErrInvalidPrice},
		{"zero price", product(1, "x", floatPtr(0), nil), 1, cart.ErrInvalidPrice},
		{"negative final price", product(1, "x", floatPtr(10), floatPtr(-1)), 1, cart.ErrInvalidPrice},
		{"NaN price", product(1, "x", floatPtr(math.NaN()), nil), 1, cart.ErrInvalidPrice},
		{"infinite price", product(1, "x", floatPtr(math.Inf(1)), nil), 1, cart.ErrInvalidPrice},
		{"zero quantity", product(1, "x", floatPtr(10), nil), 0, cart.ErrInvalidQuantity},
		{"negative quantity", product(1, "x", floatPtr(10), nil), -3, cart.ErrInvalidQuantity},
		{"line total out of range", product(1, "x", floatPtr(1e308), nil), 10, cart.ErrInvalidPrice},
		{"largest price doubled", product(1, "x", floatPtr(math.MaxFloat64), nil), 2, cart.ErrInvalidPrice},
		// Checks run in order: a bad id wins over a bad price and quantity.
		{"id checked first", product(0, "x", nil, nil), 0, cart.ErrProductNotFound},
		{"price checked before quantity", product(1, "x", floatPtr(0), nil), 0, cart.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cart.Sanitize(tt.product, tt.quantity, "")
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestValidationError_Messages(t *testing.T) {
	assert.Equal(t, "Product not found", cart.ErrProductNotFound.Error())
	assert.Equal(t, "Invalid product price", cart.ErrInvalidPrice.Error())
	assert.Equal(t, "Invalid quantity", cart.ErrInvalidQuantity.Error())
	assert.Equal(t, "Invalid cart item", cart.ErrInvalidCartItem.Error())
	assert.Equal(t, "Item not found in cart", cart.ErrItemNotFound.Error())
}
