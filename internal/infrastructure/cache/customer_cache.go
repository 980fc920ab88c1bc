// Package cache provides a redis read-through decorator for the customer gateway.
package cache

import (
	"context"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "customer:"

// Store is the subset of the redis client used by the decorator.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ Store = (*redis.Client)(nil)

// NewRedisClient connects to redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis", slog.String("addr", cfg.Addr), slog.Int("db", cfg.DB))
	return client, nil
}

// CustomerRepository caches FindByID results. Writes go to the wrapped
// repository first and then drop the cached entry. Cache faults are logged
// and never fail the call.
type CustomerRepository struct {
	next   customer.CustomerRepository
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(next customer.CustomerRepository, store Store, ttl time.Duration, logger *slog.Logger) *CustomerRepository {
	return &CustomerRepository{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "CustomerCache"),
	}
}

func cacheKey(customerID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, customerID)
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	return r.next.Create(ctx, cust)
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	key := cacheKey(customerID)

	data, err := r.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cust customer.Customer
		if jsonErr := json.Unmarshal(data, &cust); jsonErr == nil {
			r.logger.DebugContext(ctx, "Cache hit", slog.String("key", key))
			return &cust, nil
		}
		r.logger.WarnContext(ctx, "Discarding unreadable cache entry", slog.String("key", key))
	case errors.Is(err, redis.Nil):
		r.logger.DebugContext(ctx, "Cache miss", slog.String("key", key))
	default:
		r.logger.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	cust, err := r.next.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(cust); err == nil {
		if err := r.store.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return cust, nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if err := r.next.Update(ctx, cust); err != nil {
		return err
	}
	r.invalidate(ctx, cust.ID)
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	if err := r.next.Delete(ctx, customerID); err != nil {
		return err
	}
	r.invalidate(ctx, customerID)
	return nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	return r.next.FindAll(ctx)
}

func (r *CustomerRepository) FindByFilter(ctx context.Context, filter customer.Filter) ([]*customer.Customer, error) {
	return r.next.FindByFilter(ctx, filter)
}

func (r *CustomerRepository) invalidate(ctx context.Context, customerID int64) {
	key := cacheKey(customerID)
	if err := r.store.Del(ctx, key).Err(); err != nil {
		r.logger.WarnContext(ctx, "Cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}
}
