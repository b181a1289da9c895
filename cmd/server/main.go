package main // Entry point package

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/dumichanda/booking-api/internal/auth"
	"github.com/dumichanda/booking-api/internal/config"
	"github.com/dumichanda/booking-api/internal/database"
	"github.com/dumichanda/booking-api/internal/handler"
	"github.com/dumichanda/booking-api/internal/queue"
	"github.com/dumichanda/booking-api/internal/repository"
	"github.com/dumichanda/booking-api/internal/router"
	"github.com/dumichanda/booking-api/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly
	cfg := config.Load()

	// Store connectivity problems are logged, not fatal: the API listens
	// regardless and requests fail until the database comes back.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("uploads dir: %v", err)
	}

	store, err := storage.New(context.Background(), storage.Options{
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Endpoint:   cfg.S3Endpoint,
		PublicBase: cfg.S3PublicBase,
	})
	if err != nil {
		log.Fatalf("object store: %v", err)
	}

	codec := auth.NewCodec(cfg.JWTSecret)
	users := repository.NewUserRepo(db)
	places := repository.NewPlaceRepo(db)
	bookings := repository.NewBookingRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: response cache and rate limiting disabled")
	}

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Cfg:      cfg,
		Codec:    codec,
		Auth:     handler.NewAuthHandler(cfg, codec, users),
		Places:   handler.NewPlaceHandler(cfg, places),
		Bookings: handler.NewBookingHandler(cfg, bookings, places),
		Uploads:  handler.NewUploadHandler(cfg, store),
		Redis:    rdb,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
