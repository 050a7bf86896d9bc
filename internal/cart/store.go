// Package cart holds the storefront cart: an ordered list of line items
// keyed by product id, mirrored to a durable storage slot after every
// change.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/01moynul/grocery-storefront/internal/logger"
	"github.com/01moynul/grocery-storefront/internal/models"
	"github.com/01moynul/grocery-storefront/internal/notify"
	"github.com/01moynul/grocery-storefront/internal/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const DefaultKey = "cart"

// Snapshot is a point-in-time copy of the cart and its derived values.
type Snapshot struct {
	Items     []models.CartItem `json:"items"`
	Subtotal  float64           `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
	Quantity  int               `json:"quantity"`
}

// Store owns the cart line items. Mutations are serialized: each one,
// including its storage write, finishes before the next starts.
// A Store must be built with NewStore.
type Store struct {
	mu    sync.Mutex
	items []models.CartItem

	kv          storage.KV
	key         string
	notifier    notify.Notifier
	log         logrus.FieldLogger
	placeholder string

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

type Option func(*Store)

// WithKey overrides the storage key (default "cart").
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// WithPlaceholderImage sets the image used for products without one.
func WithPlaceholderImage(path string) Option {
	return func(s *Store) { s.placeholder = path }
}

// NewStore builds the store and restores any cart saved under its key.
// Restore problems are logged and yield an empty cart; they are never
// returned.
func NewStore(ctx context.Context, kv storage.KV, opts ...Option) *Store {
	s := &Store{
		items:       []models.CartItem{},
		kv:          kv,
		key:         DefaultKey,
		notifier:    notify.Discard,
		placeholder: DefaultPlaceholderImage,
		subs:        make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	s.log = s.log.WithField("component", "cart")

	s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Warn("could not read saved cart, starting empty")
		}
		return
	}

	items, err := decodeItems(data)
	if err != nil {
		s.log.WithError(err).Warn("discarding corrupt saved cart")
		if err := s.kv.Delete(ctx, s.key); err != nil {
			s.log.WithError(err).Error("could not remove corrupt saved cart")
		}
		return
	}
	if len(items) == 0 {
		// An empty cart is never stored; drop the stray entry.
		if err := s.kv.Delete(ctx, s.key); err != nil {
			s.log.WithError(err).Error("could not remove empty saved cart")
		}
		return
	}

	s.items = items
	s.log.WithField("lines", len(items)).Info("restored saved cart")
}

func decodeItems(data []byte) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}

	seen := make(map[int64]struct{}, len(items))
	units := 0
	for i := range items {
		it := &items[i]
		if it.ID == 0 || !validPrice(it.Price) || it.Quantity <= 0 {
			return nil, errors.Errorf("line %d is invalid", i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, errors.Errorf("duplicate line for product %d", it.ID)
		}
		seen[it.ID] = struct{}{}
		if units > math.MaxInt-it.Quantity {
			return nil, errors.Errorf("line %d overflows the unit count", i)
		}
		units += it.Quantity
		it.TotalPrice = lineTotal(it.Price, it.Quantity)
	}
	if !finite(subtotal(items)) {
		return nil, errors.New("cart total is out of range")
	}
	return items, nil
}

// Add puts quantity units of product into the cart. A product already in
// the cart has its quantity increased and its total recomputed at the
// product's current price. Rejections leave the cart untouched and are
// reported both to the notifier and as the returned *ValidationError.
func (s *Store) Add(ctx context.Context, product *models.Product, quantity int) error {
	line, err := Sanitize(product, quantity, s.placeholder)
	if err != nil {
		notify.Error(s.notifier, err.Error())
		return err
	}

	snap, err := s.add(ctx, line)
	if err != nil {
		notify.Error(s.notifier, err.Error())
		return err
	}

	notify.OpenCart(s.notifier)
	notify.Success(s.notifier, fmt.Sprintf("%s added to cart", line.Name))
	s.publish(snap)
	return nil
}

func (s *Store) add(ctx context.Context, line models.CartItem) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The cart-wide unit count bounds every line, so one check covers the merge.
	if totalQuantity(s.items) > math.MaxInt-line.Quantity {
		return Snapshot{}, ErrInvalidQuantity
	}

	next := cloneItems(s.items)
	if idx := indexOf(next, line.ID); idx >= 0 {
		cur := next[idx]
		cur.Quantity += line.Quantity
		cur.Price = line.Price
		cur.TotalPrice = lineTotal(cur.Price, cur.Quantity)
		next[idx] = cur
	} else {
		next = append(next, line)
	}
	if !finite(subtotal(next)) {
		return Snapshot{}, ErrInvalidPrice
	}

	s.items = next
	s.persistLocked(ctx)
	return s.snapshotLocked(), nil
}

// Remove deletes the line for product id. The order of the remaining lines
// is kept.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if id == 0 {
		notify.Error(s.notifier, ErrInvalidCartItem.Error())
		return ErrInvalidCartItem
	}

	removed, snap, err := s.remove(ctx, id)
	if err != nil {
		notify.Error(s.notifier, err.Error())
		return err
	}

	notify.Success(s.notifier, fmt.Sprintf("%s removed from cart", removed.Name))
	s.publish(snap)
	return nil
}

func (s *Store) remove(ctx context.Context, id int64) (models.CartItem, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		return models.CartItem{}, Snapshot{}, ErrItemNotFound
	}

	removed := s.items[idx]
	next := make([]models.CartItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.items = next
	s.persistLocked(ctx)
	return removed, s.snapshotLocked(), nil
}

// Clear empties the cart and removes its storage entry.
func (s *Store) Clear(ctx context.Context) {
	s.publish(s.clear(ctx))
}

func (s *Store) clear(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []models.CartItem{}
	s.persistLocked(ctx)
	return s.snapshotLocked()
}

// persistLocked mirrors s.items to the storage slot. A failed write is
// reported but the in-memory cart stays as it is. The write outlives a
// cancelled caller so the slot never lags the in-memory cart.
func (s *Store) persistLocked(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if len(s.items) == 0 {
		if err := s.kv.Delete(ctx, s.key); err != nil {
			s.log.WithError(err).Error("could not remove saved cart")
			notify.Error(s.notifier, "Could not update your saved cart")
		}
		return
	}

	data, err := json.Marshal(s.items)
	if err == nil {
		err = s.kv.Set(ctx, s.key, data)
	}
	if err != nil {
		s.log.WithError(err).WithField("lines", len(s.items)).Error("could not save cart")
		notify.Error(s.notifier, "Could not save your cart")
	}
}

// --- Queries ---

// Items returns a copy of the line items in display order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Subtotal is the sum of every line's total price, before delivery.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.items)
}

// ItemCount is the number of distinct products in the cart, which is what
// the header badge shows.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Quantity is the number of units across all lines.
func (s *Store) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalQuantity(s.items)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items:     cloneItems(s.items),
		Subtotal:  subtotal(s.items),
		ItemCount: len(s.items),
		Quantity:  totalQuantity(s.items),
	}
}

// --- Subscriptions ---

// Subscribe registers fn to be called with a fresh snapshot after every
// mutation. Calls happen on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// --- Helpers ---

func indexOf(items []models.CartItem, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(src []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(src))
	copy(out, src)
	return out
}

func totalQuantity(items []models.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
