package extension

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// cacheBackend stores raw values under fully prefixed keys.
type cacheBackend interface {
	get(ctx context.Context, key string) ([]byte, bool, error)
	set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delete(ctx context.Context, key string) error
	clear(ctx context.Context, prefix string) error
	close() error
}

// Cache is a key-value cache backed by one of the CACHE_TYPE backends:
// "null" (never stores), "simple" (in-process expirable LRU) or "redis".
type Cache struct {
	backend    cacheBackend
	prefix     string
	defaultTTL time.Duration
	log        *logger.Logger
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Name() string { return "cache" }

// InitApp creates the backend. The redis backend is pinged and a failed ping
// aborts initialization.
func (c *Cache) InitApp(cfg *config.StructuredConfig, log *logger.Logger) error {
	settings := cfg.Cache

	var backend cacheBackend
	switch settings.Type {
	case config.CacheNull:
		backend = nullBackend{}
	case config.CacheSimple, "":
		if settings.Threshold < 1 {
			return fmt.Errorf("%w: cache threshold must be positive", ErrInvalidOption)
		}
		backend = newSimpleBackend(settings.Threshold, settings.DefaultTimeout)
	case config.CacheRedis:
		rb, err := newRedisBackend(settings.RedisURL)
		if err != nil {
			return err
		}
		backend = rb
	default:
		return fmt.Errorf("%w: unknown cache type %q", ErrInvalidOption, settings.Type)
	}

	c.backend = backend
	c.prefix = settings.KeyPrefix
	c.defaultTTL = settings.DefaultTimeout
	c.log = log

	log.Debug().Str("type", settings.Type).Msg("cache initialized")
	return nil
}

// Get returns the value stored under key and whether it was found.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.backend == nil {
		return nil, false, ErrNotInitialized
	}
	return c.backend.get(ctx, c.prefix+key)
}

// Set stores value under key. A zero ttl means CACHE_DEFAULT_TIMEOUT.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.backend == nil {
		return ErrNotInitialized
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	return c.backend.set(ctx, c.prefix+key, value, ttl)
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c.backend == nil {
		return ErrNotInitialized
	}
	return c.backend.delete(ctx, c.prefix+key)
}

// Clear removes every key carrying CACHE_KEY_PREFIX.
func (c *Cache) Clear(ctx context.Context) error {
	if c.backend == nil {
		return ErrNotInitialized
	}
	return c.backend.clear(ctx, c.prefix)
}

// Close releases the backend connection.
func (c *Cache) Close() error {
	if c.backend == nil {
		return nil
	}
	return c.backend.close()
}

// cachedResponse is the stored form of a cached page.
type cachedResponse struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Cached returns a middleware caching successful GET responses for ttl. The
// cache key is the request URI. Responses setting cookies are never stored.
// Cache failures are logged and the request is served uncached.
func (c *Cache) Cached(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || c.backend == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := "view/" + r.URL.RequestURI()
			ctx := r.Context()

			if raw, ok, err := c.Get(ctx, key); err != nil {
				c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
			} else if ok {
				var cached cachedResponse
				if err := json.Unmarshal(raw, &cached); err == nil {
					w.Header().Set("Content-Type", cached.ContentType)
					w.Header().Set("X-Cache", "HIT")
					_, _ = w.Write(cached.Body)
					return
				}
			}

			var buf bytes.Buffer
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&buf)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status != 0 && status != http.StatusOK {
				return
			}
			if len(ww.Header().Values("Set-Cookie")) > 0 {
				return
			}

			raw, err := json.Marshal(cachedResponse{
				ContentType: ww.Header().Get("Content-Type"),
				Body:        buf.Bytes(),
			})
			if err != nil {
				return
			}
			if err := c.Set(ctx, key, raw, ttl); err != nil {
				c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
			}
		})
	}
}

type nullBackend struct{}

func (nullBackend) get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (nullBackend) set(context.Context, string, []byte, time.Duration) error { return nil }

func (nullBackend) delete(context.Context, string) error { return nil }

func (nullBackend) clear(context.Context, string) error { return nil }

func (nullBackend) close() error { return nil }

// simpleEntry carries its own deadline so that a ttl shorter than the LRU-wide
// one is honoured.
type simpleEntry struct {
	value     []byte
	expiresAt time.Time
}

// simpleBackend keeps at most size entries. The LRU itself expires entries
// after defaultTTL, which therefore caps every per-entry ttl.
type simpleBackend struct {
	lru *lru.LRU[string, simpleEntry]
}

func newSimpleBackend(size int, defaultTTL time.Duration) *simpleBackend {
	return &simpleBackend{lru: lru.NewLRU[string, simpleEntry](size, nil, defaultTTL)}
}

func (b *simpleBackend) get(_ context.Context, key string) ([]byte, bool, error) {
	entry, ok := b.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		b.lru.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (b *simpleBackend) set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := simpleEntry{value: bytes.Clone(value)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	b.lru.Add(key, entry)
	return nil
}

func (b *simpleBackend) delete(_ context.Context, key string) error {
	b.lru.Remove(key)
	return nil
}

func (b *simpleBackend) clear(_ context.Context, prefix string) error {
	if prefix == "" {
		b.lru.Purge()
		return nil
	}
	for _, key := range b.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			b.lru.Remove(key)
		}
	}
	return nil
}

func (b *simpleBackend) close() error { return nil }

type redisBackend struct {
	client *redis.Client
}

func newRedisBackend(url string) (*redisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: redis url: %w", ErrInvalidOption, err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisBackend{client: client}, nil
}

func (b *redisBackend) get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

func (b *redisBackend) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b *redisBackend) delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (b *redisBackend) clear(ctx context.Context, prefix string) error {
	iter := b.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := b.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}

func (b *redisBackend) close() error {
	return b.client.Close()
}
