package router // package router wires HTTP routes to handlers

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/ev-charging-admin/internal/config"
    "github.com/iliyamo/ev-charging-admin/internal/handler"
    "github.com/iliyamo/ev-charging-admin/internal/middleware"
    "github.com/iliyamo/ev-charging-admin/internal/model"
)

// Handlers groups every handler the router needs. All fields must be
// non-nil.
type Handlers struct {
    Auth      *handler.AuthHandler
    Bookings  *handler.BookingHandler
    Stations  *handler.StationHandler
    Users     *handler.UserHandler
    Analytics *handler.AnalyticsHandler
    Seed      *handler.SeedHandler
}

// RegisterRoutes registers the routes that do not require
// authentication: the health check, the auth endpoints and the seed
// endpoint used to bootstrap an empty environment.
func RegisterRoutes(e *echo.Echo, h Handlers) {
    e.GET("/healthz", handler.Health)

    auth := e.Group("/v1/auth")
    auth.POST("/register", h.Auth.Register)
    auth.POST("/login", h.Auth.Login)
    auth.POST("/refresh", h.Auth.Refresh)
    auth.POST("/logout", h.Auth.Logout)

    e.POST("/v1/seed/stations", h.Seed.SeedStations)
}

// RegisterAPI registers all protected routes under /v1. Every route in
// this group requires a valid access token carrying one of the known
// roles; finer-grained authorization (SuperAdmin-only user management,
// booking ownership) is enforced in the handlers and the lifecycle
// service. rdb may be nil, which disables the Redis-backed cache.
func RegisterAPI(e *echo.Echo, h Handlers, cfg config.Config, cacheCfg config.CacheConfig, rdb *redis.Client) {
    api := e.Group("/v1")
    api.Use(middleware.JWTAuth(cfg.JWTSecret))
    api.Use(middleware.RequireRole(model.RoleSuperAdmin, model.RoleBackoffice, model.RoleStationOperator))

    api.GET("/me", h.Auth.Me)

    // Bookings: reads from the repository, mutations through the
    // lifecycle service.
    api.GET("/bookings", h.Bookings.List)
    api.GET("/bookings/:id", h.Bookings.Get)
    api.GET("/bookings/user/:userId", h.Bookings.ListByUser)
    api.GET("/bookings/:id/canmodify", h.Bookings.CanModify)
    api.POST("/bookings", h.Bookings.Create)
    api.PUT("/bookings/:id", h.Bookings.Update)
    api.DELETE("/bookings/:id", h.Bookings.Cancel)
    api.DELETE("/bookings/:id/purge", h.Bookings.Purge)

    // Stations: browse endpoints are cached since station data changes
    // rarely compared to bookings.
    cached := middleware.CacheGET(cacheCfg, rdb)
    api.GET("/stations", h.Stations.List, cached)
    api.GET("/stations/:id", h.Stations.Get, cached)
    api.POST("/stations", h.Stations.Create)

    // Users: mutations are SuperAdmin-only, enforced in the handlers
    // via the authorization policy.
    api.GET("/users", h.Users.List)
    api.GET("/users/:id", h.Users.Get)
    api.POST("/users", h.Users.Create)
    api.PUT("/users/:id", h.Users.Update)
    api.DELETE("/users/:id", h.Users.Delete)
    api.PATCH("/users/:id/password", h.Users.ChangePassword)

    // Analytics: read-only aggregates.
    api.GET("/analytics/stats", h.Analytics.Stats)
    api.GET("/analytics/stats/daterange", h.Analytics.StatsByDateRange)
    api.GET("/analytics/revenue/station", h.Analytics.RevenueByStation)
}
