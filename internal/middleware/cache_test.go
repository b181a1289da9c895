package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/dumichanda/booking-api/internal/config"
)

func cacheCtx(method, target, routePattern string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(routePattern)
	return c
}

func TestCacheKey_DistinctPerResource(t *testing.T) {
	t.Parallel()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	// Both requests match the same parameterized route; each resource must
	// still cache under its own key.
	k1 := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/places/1", "/places/:id"))
	k2 := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/places/2", "/places/:id"))
	assert.NotEqual(t, k1, k2)

	again := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/places/1", "/places/:id"))
	assert.Equal(t, k1, again)
}

func TestCacheKey_QueryContributes(t *testing.T) {
	t.Parallel()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	plain := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/places", "/places"))
	paged := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/places?page=2", "/places"))
	assert.NotEqual(t, plain, paged)
}

func TestCacheEvict_TargetsRequestKey(t *testing.T) {
	t.Parallel()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	// The key an eviction deletes must be the key a GET stored under.
	got := cacheKey(cfg, http.MethodGet, "/places/5", "")
	want := cacheKeyFrom(cfg, cacheCtx(http.MethodGet, "/places/5", "/places/:id"))
	assert.Equal(t, want, got)
}

func TestCacheEvict_NoRedisIsNoop(t *testing.T) {
	t.Parallel()
	evict := CacheEvict(config.CacheConfig{Enabled: true}, nil)
	assert.NotPanics(t, func() { evict(context.Background(), "/places") })
}
