package extension

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

func newSimpleCache(t *testing.T, prefix string) *Cache {
	t.Helper()

	cfg := testConfig()
	cfg.Cache.Type = config.CacheSimple
	cfg.Cache.KeyPrefix = prefix

	c := NewCache()
	require.NoError(t, c.InitApp(cfg, logger.Nop()))
	return c
}

func newRedisCache(t *testing.T, prefix string) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.Cache.Type = config.CacheRedis
	cfg.Cache.RedisURL = "redis://" + mr.Addr()
	cfg.Cache.KeyPrefix = prefix

	c := NewCache()
	require.NoError(t, c.InitApp(cfg, logger.Nop()))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_Backends(t *testing.T) {
	ctx := context.Background()

	backends := map[string]func(t *testing.T) *Cache{
		"simple": func(t *testing.T) *Cache { return newSimpleCache(t, "app:") },
		"redis": func(t *testing.T) *Cache {
			c, _ := newRedisCache(t, "app:")
			return c
		},
	}

	for name, newCache := range backends {
		t.Run(name, func(t *testing.T) {
			c := newCache(t)

			_, ok, err := c.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
			require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))

			got, ok, err := c.Get(ctx, "a")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []byte("1"), got)

			require.NoError(t, c.Delete(ctx, "a"))
			_, ok, err = c.Get(ctx, "a")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, c.Clear(ctx))
			_, ok, err = c.Get(ctx, "b")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestCache_SimpleHonoursShortTTL(t *testing.T) {
	ctx := context.Background()
	c := newSimpleCache(t, "")

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_SimpleEvictsOverThreshold(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig()
	cfg.Cache.Threshold = 2
	c := NewCache()
	require.NoError(t, c.InitApp(cfg, logger.Nop()))

	require.NoError(t, c.Set(ctx, "1", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "2", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "3", []byte("3"), 0))

	_, ok, _ := c.Get(ctx, "1")
	assert.False(t, ok, "oldest entry is evicted")
	_, ok, _ = c.Get(ctx, "3")
	assert.True(t, ok)
}

func TestCache_RedisUsesPrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, "app:")

	require.NoError(t, mr.Set("other", "keep"))
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))

	assert.True(t, mr.Exists("app:k"))

	mr.FastForward(2 * time.Second)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "x", []byte("v"), 0))
	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists("app:x"))
	assert.True(t, mr.Exists("other"), "keys outside the prefix survive Clear")
}

func TestCache_RedisInitFailures(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "malformed url", url: "http://nope", wantErr: ErrInvalidOption},
		{name: "unreachable server", url: "redis://127.0.0.1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Cache.Type = config.CacheRedis
			cfg.Cache.RedisURL = tt.url

			err := NewCache().InitApp(cfg, logger.Nop())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCache_NullNeverStores(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig()
	cfg.Cache.Type = config.CacheNull
	c := NewCache()
	require.NoError(t, c.InitApp(cfg, logger.Nop()))

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_NotInitialized(t *testing.T) {
	ctx := context.Background()
	c := NewCache()

	_, _, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, c.Set(ctx, "k", nil, 0), ErrNotInitialized)
	assert.ErrorIs(t, c.Delete(ctx, "k"), ErrNotInitialized)
	assert.ErrorIs(t, c.Clear(ctx), ErrNotInitialized)
	assert.NoError(t, c.Close())
}

func TestCache_Cached(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		status    int
		setCookie bool
		wantCalls int32
	}{
		{name: "GET 200 is served from cache", method: http.MethodGet, status: http.StatusOK, wantCalls: 1},
		{name: "POST is never cached", method: http.MethodPost, status: http.StatusOK, wantCalls: 2},
		{name: "errors are not cached", method: http.MethodGet, status: http.StatusInternalServerError, wantCalls: 2},
		{name: "responses setting cookies are not cached", method: http.MethodGet, status: http.StatusOK, setCookie: true, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newSimpleCache(t, "")

			var calls atomic.Int32
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				if tt.setCookie {
					http.SetCookie(w, &http.Cookie{Name: "s", Value: "1"})
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("<h1>home</h1>"))
			})
			handler := c.Cached(time.Minute)(next)

			var last *httptest.ResponseRecorder
			for i := 0; i < 2; i++ {
				last = httptest.NewRecorder()
				handler.ServeHTTP(last, httptest.NewRequest(tt.method, "/", nil))
			}

			assert.Equal(t, tt.wantCalls, calls.Load())
			assert.Equal(t, "<h1>home</h1>", last.Body.String())
			if tt.wantCalls == 1 {
				assert.Equal(t, "HIT", last.Header().Get("X-Cache"))
				assert.Equal(t, "text/html; charset=utf-8", last.Header().Get("Content-Type"))
			}
		})
	}
}
