package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Redis keeps all slots of one storefront in a single hash, one field per key.
type Redis struct {
	client    *redis.Client
	namespace string
}

// NewRedis accepts either a redis:// URL or a bare host:port.
func NewRedis(addr, namespace string) *Redis {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			PoolSize:     10,
		}
	}
	return NewRedisWithClient(redis.NewClient(opts), namespace)
}

func NewRedisWithClient(client *redis.Client, namespace string) *Redis {
	return &Redis{client: client, namespace: namespace}
}

// WaitReady pings Redis until it answers, backing off exponentially
// (capped at 30s) between attempts.
func (r *Redis) WaitReady(ctx context.Context, attempts int, log logrus.FieldLogger) error {
	for i := 0; i < attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := r.client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.WithField("attempt", i+1).Info("redis slot ready")
			return nil
		}

		backoff := time.Duration(1<<uint(i)) * 100 * time.Millisecond
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
		log.WithError(err).WithField("backoff", backoff).Warn("redis ping failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return errors.Errorf("redis not reachable after %d attempts", attempts)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.HGet(ctx, r.namespace, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "redis HGET %s %s", r.namespace, key)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.HSet(ctx, r.namespace, key, value).Err(); err != nil {
		return errors.Wrapf(err, "redis HSET %s %s", r.namespace, key)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.namespace, key).Err(); err != nil {
		return errors.Wrapf(err, "redis HDEL %s %s", r.namespace, key)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
