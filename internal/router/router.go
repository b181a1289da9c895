package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/dumichanda/booking-api/internal/auth"
	"github.com/dumichanda/booking-api/internal/config"
	"github.com/dumichanda/booking-api/internal/handler"
	"github.com/dumichanda/booking-api/internal/middleware"
)

// Deps carries everything route registration needs.  All handlers are
// constructed by the caller; the router only decides which middleware wraps
// which path.
type Deps struct {
	Cfg      config.Config
	Codec    *auth.Codec
	Auth     *handler.AuthHandler
	Places   *handler.PlaceHandler
	Bookings *handler.BookingHandler
	Uploads  *handler.UploadHandler
	Redis    *redis.Client
}

// Register wires the full HTTP surface.  Identity-required routes carry the
// cookie auth guard; the public listing reads sit behind the Redis response
// cache; everything shares the token-bucket limiter and permissive
// credentials-aware CORS for the browser client.
func Register(e *echo.Echo, d Deps) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{d.Cfg.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis))

	cacheCfg := config.LoadCacheConfig()
	cache := middleware.NewRedisCache(cacheCfg, d.Redis)
	// The router owns the cache, so it also hands the listing handler the
	// eviction hook that keeps writes visible within the TTL.
	d.Places.Evict = middleware.CacheEvict(cacheCfg, d.Redis)
	guard := middleware.CookieAuth(d.Codec)

	e.GET("/test", handler.Health)

	// Accounts
	e.POST("/register", d.Auth.Register)
	e.POST("/login", d.Auth.Login)
	e.GET("/profile", d.Auth.Profile) // anonymous-tolerant, no guard
	e.POST("/logout", d.Auth.Logout)

	// Media ingest + local fallback for uploaded assets
	e.POST("/upload-by-link", d.Uploads.UploadByLink)
	e.POST("/upload", d.Uploads.UploadFiles)
	e.Static("/uploads", d.Cfg.UploadDir)

	// Listings
	e.POST("/places", d.Places.Create, guard)
	e.GET("/user-places", d.Places.ListMine, guard)
	e.GET("/places/:id", d.Places.GetByID, cache)
	e.PUT("/places", d.Places.Update, guard)
	e.GET("/places", d.Places.ListAll, cache)

	// Bookings
	e.POST("/bookings", d.Bookings.Create, guard)
	e.GET("/bookings", d.Bookings.ListMine, guard)
}
