package cart_test

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/01moynul/grocery-storefront/internal/cart"
	"github.com/01moynul/grocery-storefront/internal/models"
	"github.com/01moynul/grocery-storefront/internal/notify"
	"github.com/01moynul/grocery-storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, kv storage.KV, n notify.Notifier) *cart.Store {
	t.Helper()
	if n == nil {
		n = notify.Discard
	}
	return cart.NewStore(context.Background(), kv, cart.WithNotifier(n))
}

func savedItems(t *testing.T, kv storage.KV) []models.CartItem {
	t.Helper()
	data, err := kv.Get(context.Background(), cart.DefaultKey)
	require.NoError(t, err)

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(data, &items))
	return items
}

func TestStore_StartsEmptyWithoutSavedCart(t *testing.T) {
	store := newStore(t, storage.NewMemory(), nil)

	assert.Empty(t, store.Items())
	assert.Equal(t, 0.0, store.Subtotal())
	assert.Equal(t, 0, store.ItemCount())
}

func TestStore_ExampleScenario(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := newStore(t, kv, nil)

	// Add {id:1, final_price:50} qty 2
	require.NoError(t, store.Add(ctx, product(1, "Basmati Rice", nil, floatPtr(50)), 2))
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 100.0, items[0].TotalPrice)

	// Add the same product again, qty 3
	require.NoError(t, store.Add(ctx, product(1, "Basmati Rice", nil, floatPtr(50)), 3))
	items = store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 250.0, items[0].TotalPrice)

	// Add {id:2, price:20} without final_price
	require.NoError(t, store.Add(ctx, product(2, "Eggs", floatPtr(20), nil), 1))
	assert.Equal(t, 270.0, store.Subtotal())
	assert.Equal(t, 2, store.ItemCount())
	assert.Equal(t, 6, store.Quantity())

	// Remove id:1
	require.NoError(t, store.Remove(ctx, 1))
	items = store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, items, savedItems(t, kv))

	// Remove id:1 again
	assert.Equal(t, cart.ErrItemNotFound, store.Remove(ctx, 1))
	assert.Equal(t, items, store.Items())

	// Remove the last item
	require.NoError(t, store.Remove(ctx, 2))
	_, err := kv.Get(ctx, cart.DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_MergeUsesLatestPrice(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, storage.NewMemory(), nil)

	require.NoError(t, store.Add(ctx, product(7, "Apples", floatPtr(3), nil), 2))
	require.NoError(t, store.Add(ctx, product(7, "Apples", floatPtr(3), floatPtr(2.5)), 1))
	require.NoError(t, store.Add(ctx, product(7, "Apples", floatPtr(4), nil), 4))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, 4.0, items[0].Price)
	assert.Equal(t, 28.0, items[0].TotalPrice)
}

func TestStore_TotalMatchesPriceTimesQuantity(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, storage.NewMemory(), nil)

	quantities := []int{1, 3, 2, 5}
	sum := 0
	for _, q := range quantities {
		require.NoError(t, store.Add(ctx, product(9, "Yoghurt", floatPtr(19.99), nil), q))
		sum += q
	}

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, sum, items[0].Quantity)
	assert.InDelta(t, 19.99*float64(sum), items[0].TotalPrice, 1e-9)
}

func TestStore_OneLinePerProduct(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, storage.NewMemory(), nil)

	for i := 0; i < 20; i++ {
		id := int64(i%4 + 1)
		require.NoError(t, store.Add(ctx, product(id, "", floatPtr(1), nil), 1))
	}

	seen := map[int64]bool{}
	for _, it := range store.Items() {
		assert.False(t, seen[it.ID], "duplicate line for %d", it.ID)
		seen[it.ID] = true
		assert.Equal(t, 5, it.Quantity)
	}
	assert.Len(t, seen, 4)
}

func TestStore_InsertionOrderIsKept(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, storage.NewMemory(), nil)

	for _, id := range []int64{5, 3, 8, 1} {
		require.NoError(t, store.Add(ctx, product(id, "", floatPtr(1), nil), 1))
	}
	require.NoError(t, store.Add(ctx, product(3, "", floatPtr(1), nil), 1))
	require.NoError(t, store.Remove(ctx, 8))

	var ids []int64
	for _, it := range store.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []int64{5, 3, 1}, ids)
}

func TestStore_RoundTripThroughStorage(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := newStore(t, kv, nil)

	require.NoError(t, store.Add(ctx, product(1, "Rice", nil, floatPtr(50)), 2))
	require.NoError(t, store.Add(ctx, product(2, "", floatPtr(12.75), nil), 3))
	before := store.Items()

	restored := newStore(t, kv, nil)

	assert.Equal(t, before, restored.Items())
	assert.Equal(t, store.Subtotal(), restored.Subtotal())
}

func TestStore_RejectionsLeaveCartUntouched(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	rec := &recorder{}
	store := newStore(t, kv, rec)
	require.NoError(t, store.Add(ctx, product(1, "Rice", floatPtr(50), nil), 1))

	beforeItems, err := json.Marshal(store.Items())
	require.NoError(t, err)
	beforeSaved, err := kv.Get(ctx, cart.DefaultKey)
	require.NoError(t, err)

	assert.Equal(t, cart.ErrInvalidPrice, store.Add(ctx, product(1, "Rice", floatPtr(0), nil), 1))
	assert.Equal(t, cart.ErrInvalidQuantity, store.Add(ctx, product(1, "Rice", floatPtr(50), nil), 0))
	assert.Equal(t, cart.ErrProductNotFound, store.Add(ctx, &models.Product{Price: floatPtr(5)}, 1))
	assert.Equal(t, cart.ErrProductNotFound, store.Add(ctx, nil, 1))
	assert.Equal(t, cart.ErrInvalidCartItem, store.Remove(ctx, 0))
	assert.Equal(t, cart.ErrItemNotFound, store.Remove(ctx, 42))

	afterItems, err := json.Marshal(store.Items())
	require.NoError(t, err)
	afterSaved, err := kv.Get(ctx, cart.DefaultKey)
	require.NoError(t, err)

	assert.Equal(t, beforeItems, afterItems)
	assert.Equal(t, beforeSaved, afterSaved)
	assert.Equal(t, []string{
		"Invalid product price",
		"Invalid quantity",
		"Product not found",
		"Product not found",
		"Invalid cart item",
		"Item not found in cart",
	}, rec.errors())
}

func TestStore_ClearRemovesStorageEntry(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := newStore(t, kv, nil)
	require.NoError(t, store.Add(ctx, product(1, "Rice", floatPtr(50), nil), 1))

	store.Clear(ctx)

	assert.Empty(t, store.Items())
	_, err := kv.Get(ctx, cart.DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_CorruptSavedCartIsDiscarded(t *testing.T) {
	tests := map[string]string{
		"invalid json":      `[{"id":1,`,
		"not an array":      `{"id":1}`,
		"zero quantity":     `[{"id":1,"name":"x","image":"y","price":5,"quantity":0,"totalPrice":0}]`,
		"negative price":    `[{"id":1,"name":"x","image":"y","price":-5,"quantity":1,"totalPrice":-5}]`,
		"missing id":        `[{"name":"x","image":"y","price":5,"quantity":1,"totalPrice":5}]`,
		"duplicate ids":     `[{"id":1,"price":5,"quantity":1,"totalPrice":5},{"id":1,"price":5,"quantity":1,"totalPrice":5}]`,
		"stored empty cart": `[]`,
		"null":              `null`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemory()
			require.NoError(t, kv.Set(ctx, cart.DefaultKey, []byte(raw)))

			store := newStore(t, kv, nil)

			assert.Empty(t, store.Items())
			_, err := kv.Get(ctx, cart.DefaultKey)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestStore_RestoreRecomputesTotals(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	raw := `[{"id":4,"name":"Tea","image":"/t.png","price":2.5,"quantity":4,"totalPrice":1}]`
	require.NoError(t, kv.Set(ctx, cart.DefaultKey, []byte(raw)))

	store := newStore(t, kv, nil)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10.0, items[0].TotalPrice)
}

func TestStore_StorageFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	store := newStore(t, brokenKV{storage.NewMemory()}, rec)

	require.NoError(t, store.Add(ctx, product(1, "Rice", floatPtr(50), nil), 2))

	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 100.0, store.Subtotal())
	assert.Contains(t, rec.errors(), "Could not save your cart")

	store.Clear(ctx)
	assert.Empty(t, store.Items())
	assert.Contains(t, rec.errors(), "Could not update your saved cart")
}

func TestStore_AddOpensCart(t *testing.T) {
	rec := &recorder{}
	store := newStore(t, storage.NewMemory(), rec)

	require.NoError(t, store.Add(context.Background(), product(1, "Rice", floatPtr(50), nil), 1))

	assert.Equal(t, []notify.Kind{notify.KindCartOpen, notify.KindToast}, rec.kinds())
}

func TestStore_CustomKey(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := cart.NewStore(ctx, kv, cart.WithKey("cart-guest"))

	require.NoError(t, store.Add(ctx, product(1, "Rice", floatPtr(50), nil), 1))

	_, err := kv.Get(ctx, "cart-guest")
	assert.NoError(t, err)
	_, err = kv.Get(ctx, cart.DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, storage.NewMemory(), nil)

	var got []cart.Snapshot
	unsubscribe := store.Subscribe(func(s cart.Snapshot) { got = append(got, s) })

	require.NoError(t, store.Add(ctx, product(1, "Rice", floatPtr(50), nil), 2))
	require.NoError(t, store.Remove(ctx, 1))
	_ = store.Remove(ctx, 1) // rejected, no snapshot

	unsubscribe()
	unsubscribe()
	require.NoError(t, store.Add(ctx, product(2, "Eggs", floatPtr(20), nil), 1))

	require.Len(t, got, 2)
	assert.Equal(t, 100.0, got[0].Subtotal)
	assert.Equal(t, 1, got[0].ItemCount)
	assert.Empty(t, got[1].Items)
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	store := newStore(t, storage.NewMemory(), nil)
	require.NoError(t, store.Add(context.Background(), product(1, "Rice", floatPtr(50), nil), 1))

	items := store.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := newStore(t, kv, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Add(ctx, product(1, "Rice", floatPtr(2), nil), 1)
		}()
	}
	wg.Wait()

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
	assert.Equal(t, 100.0, items[0].TotalPrice)
	assert.Equal(t, items, savedItems(t, kv))
}

func TestStore_OutOfRangeAddsAreRejected(t *testing.T) {
	tests := []struct {
		name    string
		seed    func(ctx context.Context, store *cart.Store) error
		product *models.Product
		qty     int
		want    error
	}{
		{
			name:    "line total overflows float64",
			product: product(2, "Saffron", floatPtr(1e308), nil),
			qty:     10,
			want:    cart.ErrInvalidPrice,
		},
		{
			name:    "largest finite price times two",
			product: product(2, "Saffron", floatPtr(math.MaxFloat64), nil),
			qty:     2,
			want:    cart.ErrInvalidPrice,
		},
		{
			name: "merge overflows the line total",
			seed: func(ctx context.Context, store *cart.Store) error {
				return store.Add(ctx, product(2, "Saffron", floatPtr(1e308), nil), 1)
			},
			product: product(2, "Saffron", floatPtr(1e308), nil),
			qty:     1,
			want:    cart.ErrInvalidPrice,
		},
		{
			name: "merge overflows the quantity",
			seed: func(ctx context.Context, store *cart.Store) error {
				// Rice already holds one unit.
				return store.Add(ctx, product(2, "Salt", floatPtr(1e-300), nil), math.MaxInt-1)
			},
			product: product(2, "Salt", floatPtr(1e-300), nil),
			qty:     1,
			want:    cart.ErrInvalidQuantity,
		},
		{
			name: "new line overflows the cart unit count",
			seed: func(ctx context.Context, store *cart.Store) error {
				return store.Add(ctx, product(2, "Salt", floatPtr(1e-300), nil), math.MaxInt-2)
			},
			product: product(3, "Sugar", floatPtr(1e-300), nil),
			qty:     2,
			want:    cart.ErrInvalidQuantity,
		},
		{
			name: "subtotal overflows across lines",
			seed: func(ctx context.Context, store *cart.Store) error {
				return store.Add(ctx, product(2, "Saffron", floatPtr(math.MaxFloat64), nil), 1)
			},
			product: product(3, "Truffle", floatPtr(math.MaxFloat64), nil),
			qty:     1,
			want:    cart.ErrInvalidPrice,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemory()
			rec := &recorder{}
			store := newStore(t, kv, rec)
			require.NoError(t, store.Add(ctx, product(1, "Rice", floatPtr(50), nil), 1))
			if tt.seed != nil {
				require.NoError(t, tt.seed(ctx, store))
			}

			beforeItems, err := json.Marshal(store.Items())
			require.NoError(t, err)
			beforeSaved, err := kv.Get(ctx, cart.DefaultKey)
			require.NoError(t, err)

			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, store.Add(ctx, tt.product, tt.qty))
			})

			afterItems, err := json.Marshal(store.Items())
			require.NoError(t, err)
			afterSaved, err := kv.Get(ctx, cart.DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, beforeItems, afterItems)
			assert.Equal(t, beforeSaved, afterSaved)
			assert.Equal(t, []string{tt.want.Error()}, rec.errors())

			for _, it := range store.Items() {
				assert.Positive(t, it.Quantity)
			}
			assert.False(t, math.IsInf(store.Subtotal(), 0))

			// A restart must bring back the same cart.
			assert.Equal(t, store.Items(), newStore(t, kv, nil).Items())
		})
	}
}

func TestStore_UsableAfterRejection(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, storage.NewMemory(), nil)
	require.Error(t, store.Add(ctx, product(1, "Saffron", floatPtr(1e308), nil), 10))

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.ItemCount()
		store.Add(ctx, product(2, "Rice", floatPtr(50), nil), 1)
		store.Clear(ctx)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("store stayed locked after a rejected add")
	}
}

func TestStore_RestoreRejectsOutOfRangeCart(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, cart.DefaultKey,
		[]byte(`[{"id":1,"name":"A","price":1e308,"quantity":10,"totalPrice":1}]`)))

	store := newStore(t, kv, nil)

	assert.Empty(t, store.Items())
	_, err := kv.Get(ctx, cart.DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_PersistsWhenCallerIsCancelled(t *testing.T) {
	kv := ctxKV{storage.NewMemory()}
	rec := &recorder{}
	store := newStore(t, kv, rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, store.Add(ctx, product(1, "Rice", floatPtr(50), nil), 2))
	require.NoError(t, store.Add(ctx, product(2, "Oil", floatPtr(3), nil), 1))
	require.NoError(t, store.Remove(ctx, 2))
	assert.Equal(t, store.Items(), newStore(t, kv, nil).Items())

	store.Clear(ctx)
	assert.Empty(t, newStore(t, kv, nil).Items())
	_, err := kv.Get(context.Background(), cart.DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, rec.errors())
}

func TestStore_RestoresWithCancelledContext(t *testing.T) {
	kv := ctxKV{storage.NewMemory()}
	require.NoError(t, newStore(t, kv, nil).Add(context.Background(), product(1, "Rice", floatPtr(50), nil), 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := cart.NewStore(ctx, kv)

	assert.Len(t, store.Items(), 1)
}
