// Package checkout submits the cart as an order to the backend.
package checkout

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/01moynul/grocery-storefront/internal/cart"
	"github.com/01moynul/grocery-storefront/internal/logger"
	"github.com/01moynul/grocery-storefront/internal/models"
	"github.com/01moynul/grocery-storefront/internal/notify"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// OrdersRedirect is where the UI goes after a successful order.
const OrdersRedirect = "/orders"

var (
	ErrSubmitInProgress = errors.New("checkout: an order is already being placed")
	ErrEmptyCart        = errors.New("checkout: cart is empty")
	ErrInvalidCustomer  = errors.New("checkout: name, phone and shipping address are required")
)

// Cart is the part of the cart store checkout needs.
type Cart interface {
	Snapshot() cart.Snapshot
	Clear(ctx context.Context)
}

// Poster sends a JSON request to the backend.
type Poster interface {
	PostJSON(ctx context.Context, path string, header http.Header, in, out interface{}) error
}

// Customer is what the checkout form collects.
type Customer struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shipping_address"`
}

// Receipt is returned after the backend accepted the order.
type Receipt struct {
	Order    models.Order `json:"order"`
	Redirect string       `json:"redirect"`
}

type Service struct {
	cart      Cart
	api       Poster
	orderPath string
	notifier  notify.Notifier
	log       logrus.FieldLogger

	inFlight atomic.Bool
}

func NewService(c Cart, api Poster, orderPath string, n notify.Notifier, log logrus.FieldLogger) *Service {
	if n == nil {
		n = notify.Discard
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		cart:      c,
		api:       api,
		orderPath: orderPath,
		notifier:  n,
		log:       log.WithField("component", "checkout"),
	}
}

// InFlight reports whether an order submission is outstanding.
func (s *Service) InFlight() bool {
	return s.inFlight.Load()
}

// PlaceOrder posts the current cart as an order. Only one submission runs
// at a time; a second call while one is outstanding gets
// ErrSubmitInProgress. The cart is cleared only when the backend accepts
// the order, otherwise it is left as it was so the shopper can retry.
func (s *Service) PlaceOrder(ctx context.Context, cust Customer) (*Receipt, error) {
	// 1. --- Duplicate-submit guard ---
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.inFlight.Store(false)

	// 2. --- Validate Form ---
	cust = Customer{
		Name:            strings.TrimSpace(cust.Name),
		Phone:           strings.TrimSpace(cust.Phone),
		ShippingAddress: strings.TrimSpace(cust.ShippingAddress),
	}
	if cust.Name == "" || cust.Phone == "" || cust.ShippingAddress == "" {
		notify.Error(s.notifier, "Please fill in your name, phone and shipping address")
		return nil, ErrInvalidCustomer
	}

	// 3. --- Snapshot the Cart ---
	snap := s.cart.Snapshot()
	if len(snap.Items) == 0 {
		notify.Error(s.notifier, "Your cart is empty")
		return nil, ErrEmptyCart
	}

	req := models.OrderRequest{
		Name:            cust.Name,
		Phone:           cust.Phone,
		ShippingAddress: cust.ShippingAddress,
		TotalPrice:      snap.Subtotal,
		PaymentInfo:     models.PaymentUnpaid,
		OrderStatus:     models.StatusProcessing,
		Cart:            snap.Items,
	}

	// 4. --- Submit ---
	header := http.Header{}
	header.Set("Idempotency-Key", uuid.NewString())

	var order models.Order
	if err := s.api.PostJSON(ctx, s.orderPath, header, req, &order); err != nil {
		s.log.WithError(err).WithField("lines", len(req.Cart)).Error("order submission failed")
		notify.Error(s.notifier, "Failed to place order, please try again")
		return nil, errors.Wrap(err, "place order")
	}

	// 5. --- Clear the Cart ---
	s.cart.Clear(ctx)
	notify.Success(s.notifier, "Order placed successfully")
	s.log.WithFields(logrus.Fields{"order_id": order.ID, "total": req.TotalPrice}).Info("order placed")

	return &Receipt{Order: order, Redirect: OrdersRedirect}, nil
}
