package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Products holds the per-supermarket product list cache. It is nil when no
// Redis address is configured; every method tolerates a nil receiver so the
// handlers never have to branch on whether caching is enabled.
var Products *ProductCache

const productCacheTTL = 5 * time.Minute

type ProductCache struct {
	client *redis.Client
}

func Init(addr string) error {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("could not connect to Redis: %w", err)
	}

	Products = &ProductCache{client: client}
	log.Println("Redis connection established, product list caching enabled.")
	return nil
}

func productKey(supermarketID uuid.UUID) string {
	return "products:" + supermarketID.String()
}

// Get returns the cached product list JSON for a supermarket, or "" on miss.
func (c *ProductCache) Get(ctx context.Context, supermarketID uuid.UUID) string {
	if c == nil {
		return ""
	}
	val, err := c.client.Get(ctx, productKey(supermarketID)).Result()
	if err != nil {
		return ""
	}
	return val
}

func (c *ProductCache) Set(ctx context.Context, supermarketID uuid.UUID, payload string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, productKey(supermarketID), payload, productCacheTTL).Err(); err != nil {
		log.Printf("Could not cache product list: %v", err)
	}
}

// Invalidate drops the cached list for one supermarket. Called after every
// product mutation and after sale create/delete, so readers never see a stale
// quantity without waiting for the TTL.
func (c *ProductCache) Invalidate(ctx context.Context, supermarketID uuid.UUID) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, productKey(supermarketID)).Err(); err != nil {
		log.Printf("Could not invalidate product cache: %v", err)
	}
}

func (c *ProductCache) Close() {
	if c == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
	}
}
