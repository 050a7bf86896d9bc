package handlers

import (
	"net/http"
	"strconv"

	"github.com/01moynul/grocery-storefront/internal/cart"
	"github.com/01moynul/grocery-storefront/internal/catalog"
	"github.com/01moynul/grocery-storefront/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

//
// --- Cart Handlers ---
//

// AddToCartInput defines the JSON for adding an item to the cart.
// The UI either sends the product it already rendered, or just its id.
type AddToCartInput struct {
	Product   *models.Product `json:"product"`
	ProductID int64           `json:"product_id"`
	Quantity  *int            `json:"quantity"` // Defaults to 1 when omitted
}

// GetCart is the handler for GET /v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cart.Snapshot())
}

// AddToCart is the handler for POST /v1/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	// 1. --- Bind JSON ---
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	// 2. --- Resolve the Product ---
	product := input.Product
	if product == nil && input.ProductID != 0 {
		p, err := h.Catalog.Product(c.Request.Context(), input.ProductID)
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			// Leave product nil: the store rejects it with "Product not found".
		case err != nil:
			h.Log.WithError(err).WithField("product_id", input.ProductID).Error("catalog lookup failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load product"})
			return
		default:
			product = p
		}
	}

	// 3. --- Add to Cart ---
	if err := h.Cart.Add(c.Request.Context(), product, quantity); err != nil {
		c.JSON(cartErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	// 4. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to cart",
		"cart":    h.Cart.Snapshot(),
	})
}

// DeleteCartItem is the handler for DELETE /v1/cart/items/:id
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	// A malformed id is treated like a missing one.
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	if err := h.Cart.Remove(c.Request.Context(), id); err != nil {
		c.JSON(cartErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed",
		"cart":    h.Cart.Snapshot(),
	})
}

// ClearCart is the handler for DELETE /v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	h.Cart.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"cart":    h.Cart.Snapshot(),
	})
}

func cartErrorStatus(err error) int {
	if errors.Is(err, cart.ErrItemNotFound) || errors.Is(err, cart.ErrProductNotFound) {
		return http.StatusNotFound
	}
	var ve *cart.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
