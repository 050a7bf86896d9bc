package handlers

import (
	"github.com/01moynul/grocery-storefront/internal/cart"
	"github.com/01moynul/grocery-storefront/internal/catalog"
	"github.com/01moynul/grocery-storefront/internal/checkout"
	"github.com/01moynul/grocery-storefront/internal/notify"
	"github.com/sirupsen/logrus"
)

// Handlers struct holds all dependencies for our handlers.
// Everything is built once in main and injected here.
type Handlers struct {
	Cart     *cart.Store       // The shopper's cart
	Catalog  *catalog.Client   // Read-only backend catalog
	Checkout *checkout.Service // Order submission
	Notices  *notify.Feed      // Pending toasts for the UI
	Log      logrus.FieldLogger
}
