package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oceanbridge/importflow/internal/config"
	"github.com/oceanbridge/importflow/internal/domain"
)

const (
	referenceKeyPrefix  = "reference"
	scanBatchSize       = 100
	defaultReferenceTTL = 5 * time.Minute
)

// ReferenceCache fronts the slow-moving reference-data lookups that the
// order and shipment drawers hit on every open: shipping lines,
// consignees and product candidate pages.
type ReferenceCache interface {
	GetShippingLines(ctx context.Context) ([]domain.ShippingLine, bool, error)
	SetShippingLines(ctx context.Context, lines []domain.ShippingLine) error
	GetConsignees(ctx context.Context) ([]domain.Consignee, bool, error)
	SetConsignees(ctx context.Context, consignees []domain.Consignee) error
	GetProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, bool, error)
	SetProducts(ctx context.Context, search string, limit, offset int, products []domain.Product) error
	InvalidateAll(ctx context.Context) error
}

type redisReferenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReferenceCache struct{}

// NewReferenceCache builds a redis-backed cache, or a noop cache when
// caching is disabled in config.
func NewReferenceCache(cfg config.CacheConfig) (ReferenceCache, error) {
	if !cfg.Enabled {
		return &noopReferenceCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ReferenceTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultReferenceTTL
	}

	return &redisReferenceCache{client: client, ttl: ttl}, nil
}

func NewNoopReferenceCache() ReferenceCache {
	return &noopReferenceCache{}
}

func (c *redisReferenceCache) GetShippingLines(ctx context.Context) ([]domain.ShippingLine, bool, error) {
	var lines []domain.ShippingLine
	ok, err := c.get(ctx, referenceKeyPrefix+":shipping_lines", &lines)
	return lines, ok, err
}

func (c *redisReferenceCache) SetShippingLines(ctx context.Context, lines []domain.ShippingLine) error {
	return c.set(ctx, referenceKeyPrefix+":shipping_lines", lines)
}

func (c *redisReferenceCache) GetConsignees(ctx context.Context) ([]domain.Consignee, bool, error) {
	var consignees []domain.Consignee
	ok, err := c.get(ctx, referenceKeyPrefix+":consignees", &consignees)
	return consignees, ok, err
}

func (c *redisReferenceCache) SetConsignees(ctx context.Context, consignees []domain.Consignee) error {
	return c.set(ctx, referenceKeyPrefix+":consignees", consignees)
}

func (c *redisReferenceCache) GetProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, bool, error) {
	var products []domain.Product
	ok, err := c.get(ctx, buildProductKey(search, limit, offset), &products)
	return products, ok, err
}

func (c *redisReferenceCache) SetProducts(ctx context.Context, search string, limit, offset int, products []domain.Product) error {
	return c.set(ctx, buildProductKey(search, limit, offset), products)
}

func (c *redisReferenceCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, referenceKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (c *redisReferenceCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode reference cache: %w", err)
	}
	return true, nil
}

func (c *redisReferenceCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode reference cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopReferenceCache) GetShippingLines(ctx context.Context) ([]domain.ShippingLine, bool, error) {
	return nil, false, nil
}

func (n *noopReferenceCache) SetShippingLines(ctx context.Context, lines []domain.ShippingLine) error {
	return nil
}

func (n *noopReferenceCache) GetConsignees(ctx context.Context) ([]domain.Consignee, bool, error) {
	return nil, false, nil
}

func (n *noopReferenceCache) SetConsignees(ctx context.Context, consignees []domain.Consignee) error {
	return nil
}

func (n *noopReferenceCache) GetProducts(ctx context.Context, search string, limit, offset int) ([]domain.Product, bool, error) {
	return nil, false, nil
}

func (n *noopReferenceCache) SetProducts(ctx context.Context, search string, limit, offset int, products []domain.Product) error {
	return nil
}

func (n *noopReferenceCache) InvalidateAll(ctx context.Context) error { return nil }

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildProductKey(search string, limit, offset int) string {
	raw := strings.Join([]string{
		"search=" + strings.ToLower(strings.TrimSpace(search)),
		fmt.Sprintf("limit=%d", limit),
		fmt.Sprintf("offset=%d", offset),
	}, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:products:%s", referenceKeyPrefix, hex.EncodeToString(hash[:]))
}
