package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/qairline/booking-gateway/internal/airline"
	"github.com/qairline/booking-gateway/internal/config"
	"github.com/qairline/booking-gateway/internal/database"
	"github.com/qairline/booking-gateway/internal/draft"
	"github.com/qairline/booking-gateway/internal/handler"
	"github.com/qairline/booking-gateway/internal/middleware"
	"github.com/qairline/booking-gateway/internal/queue"
	"github.com/qairline/booking-gateway/internal/router"
	queue_publisher "github.com/qairline/booking-gateway/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Pick the draft store.  Redis is the default; MySQL is opt-in; both
	// fall back to the in-memory store so the wizard stays usable.
	var drafts draft.Store
	switch cfg.DraftStore {
	case "mysql":
		db, err := database.Open(database.Params{
			User: cfg.DBUser, Pass: cfg.DBPass,
			Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		})
		if err != nil {
			log.Fatalf("mysql draft store: %v", err)
		}
		store := draft.NewMySQLStore(db)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatalf("mysql draft store schema: %v", err)
		}
		cancel()
		drafts = store
	case "memory":
		drafts = draft.NewMemoryStore()
	default:
		if rdb != nil {
			drafts = draft.NewRedisStore(rdb, time.Duration(cfg.DraftTTLHours)*time.Hour)
		} else {
			log.Printf("falling back to in-memory draft store")
			drafts = draft.NewMemoryStore()
		}
	}

	api := airline.New(cfg.BackendBaseURL, cfg.BackendToken, cfg.BackendUserID)

	// Consume booking.confirmed events in the background; the consumer
	// reconnects on its own and never takes the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rlMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterSessions(e, &handler.SessionHandler{Secret: cfg.SessionSecret, TTLHours: cfg.SessionTTLHours}, rlMW)
	router.RegisterBrowse(e, handler.NewBrowseHandler(api), cacheMW, rlMW)
	router.RegisterWizard(e, handler.NewWizardHandler(api, drafts, queue_publisher.Publisher{}), cfg.SessionSecret, rlMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
