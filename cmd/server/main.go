package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ev-charging-admin/internal/booking"
    "github.com/iliyamo/ev-charging-admin/internal/config"
    "github.com/iliyamo/ev-charging-admin/internal/database"
    "github.com/iliyamo/ev-charging-admin/internal/handler"
    "github.com/iliyamo/ev-charging-admin/internal/middleware"
    "github.com/iliyamo/ev-charging-admin/internal/queue"
    "github.com/iliyamo/ev-charging-admin/internal/repository"
    "github.com/iliyamo/ev-charging-admin/internal/router"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments set the environment directly
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    bookingRepo := repository.NewBookingRepo(db)
    stationRepo := repository.NewStationRepo(db)
    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)

    svc := booking.NewService(bookingRepo, stationRepo)

    h := router.Handlers{
        Auth:      handler.NewAuthHandler(cfg, userRepo, tokenRepo),
        Bookings:  handler.NewBookingHandler(svc, bookingRepo),
        Stations:  handler.NewStationHandler(stationRepo),
        Users:     handler.NewUserHandler(cfg, userRepo, tokenRepo),
        Analytics: handler.NewAnalyticsHandler(bookingRepo),
        Seed:      handler.NewSeedHandler(stationRepo),
    }

    // Redis is optional; without it the limiter and cache turn into
    // pass-throughs.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and response cache disabled")
    }

    e := echo.New()
    e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
    router.RegisterRoutes(e, h)
    router.RegisterAPI(e, h, cfg, config.LoadCacheConfig(), rdb)

    // Booking events land in logs/booking.log via the queue consumer.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
