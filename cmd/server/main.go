package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv" // Loads .env files in development
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/aoihana/koubanhyou-server/internal/config"     // Internal config loader
	"github.com/aoihana/koubanhyou-server/internal/database"   // MySQL connector
	"github.com/aoihana/koubanhyou-server/internal/handler"    // HTTP handlers
	"github.com/aoihana/koubanhyou-server/internal/middleware" // Redis cache and rate limiter
	"github.com/aoihana/koubanhyou-server/internal/queue"      // Import event consumer
	"github.com/aoihana/koubanhyou-server/internal/router"     // Route registration
)

func main() {
	// A .env file is a development convenience; in deployment the
	// variables come from the environment itself.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())

	// Redis backs both the rate limiter and the user-view cache.  When
	// it is unreachable the client is nil and both middlewares degrade
	// to pass-through, so the service still runs without it.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// The consumer reconnects on its own; a startup failure only means
	// import completion events go unlogged until the broker is back.
	go func() {
		if err := queue.StartImportConsumer(); err != nil {
			log.Printf("import-consumer: %v", err)
		}
	}()

	h := handler.NewHandler(db)
	router.RegisterRoutes(e, h, cacheMW)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
