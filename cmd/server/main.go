package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"ppvstore/internal/catalog"
	"ppvstore/internal/config"
	"ppvstore/internal/handler"
	"ppvstore/internal/middleware"
	"ppvstore/internal/queue"
	"ppvstore/internal/router"
	"ppvstore/internal/session"
	"ppvstore/internal/storage"
	"ppvstore/internal/view"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	// Durable KV record store in MySQL.  When the database is not
	// reachable the service still comes up on an in-memory store so the
	// storefront can be demoed without infrastructure.
	var kv storage.KV
	if db, err := storage.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
		log.Printf("mysql unavailable (%v); falling back to in-memory records", err)
		kv = storage.NewMemoryKV()
	} else {
		mkv, err := storage.NewMySQLKV(db)
		if err != nil {
			log.Fatalf("prepare kv_records table: %v", err)
		}
		kv = mkv
	}

	sessions, err := session.New(kv, cfg.SimLatency, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("init session store: %v", err)
	}
	cat, err := catalog.New(kv, cfg.SimLatency)
	if err != nil {
		log.Fatalf("init catalog store: %v", err)
	}
	gate := view.NewGate(sessions)

	e := echo.New()
	e.HideBanner = true

	// Redis-backed response cache and rate limiting; both degrade to
	// pass-through when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, sessions, gate), cfg.JWTSecret)
	router.RegisterPublic(e, &handler.PublicHandler{Catalog: cat}, cacheMW)
	router.RegisterViewer(e, handler.NewViewerHandler(sessions, cat, gate), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(cat), cfg.JWTSecret)

	// Tail purchase.confirmed in the background; the consumer reconnects
	// on its own and never takes the server down.
	go func() {
		if err := queue.StartPurchaseConsumer(); err != nil {
			log.Printf("purchase consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
