package cart_test

import (
	"context"
	"errors"
	"sync"

	"github.com/01moynul/grocery-storefront/internal/models"
	"github.com/01moynul/grocery-storefront/internal/notify"
	"github.com/01moynul/grocery-storefront/internal/storage"
)

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func product(id int64, name string, price, finalPrice *float64) *models.Product {
	p := &models.Product{ID: id, Price: price, FinalPrice: finalPrice}
	if name != "" {
		p.Name = strPtr(name)
	}
	return p
}

// recorder keeps every notice it receives.
type recorder struct {
	mu      sync.Mutex
	notices []notify.Notice
}

func (r *recorder) Notify(n notify.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.notices {
		if n.Level == notify.LevelError {
			out = append(out, n.Message)
		}
	}
	return out
}

func (r *recorder) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notify.Kind
	for _, n := range r.notices {
		out = append(out, n.Kind)
	}
	return out
}

// brokenKV reads from an in-memory map but refuses every write.
type brokenKV struct {
	*storage.Memory
}

var errQuotaExceeded = errors.New("quota exceeded")

func (brokenKV) Set(context.Context, string, []byte) error { return errQuotaExceeded }

func (brokenKV) Delete(context.Context, string) error { return errQuotaExceeded }

// ctxKV refuses any call made with a finished context, like a network
// driver would.
type ctxKV struct {
	*storage.Memory
}

func (k ctxKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return k.Memory.Get(ctx, key)
}

func (k ctxKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return k.Memory.Set(ctx, key, value)
}

func (k ctxKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return k.Memory.Delete(ctx, key)
}
