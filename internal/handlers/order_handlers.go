package handlers

import (
	"net/http"

	"github.com/01moynul/grocery-storefront/internal/checkout"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

//
// --- Order Handlers ---
//

// CheckoutInput is the checkout form.
type CheckoutInput struct {
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// PlaceOrder is the handler for POST /v1/checkout
func (h *Handlers) PlaceOrder(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Place the Order ---
	receipt, err := h.Checkout.PlaceOrder(c.Request.Context(), checkout.Customer{
		Name:            input.Name,
		Phone:           input.Phone,
		ShippingAddress: input.ShippingAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSubmitInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "Your order is already being placed"})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		case errors.Is(err, checkout.ErrInvalidCustomer):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, phone and shipping address are required"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to place order"})
		}
		return
	}

	// 3. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order placed successfully",
		"order":    receipt.Order,
		"redirect": receipt.Redirect,
	})
}
