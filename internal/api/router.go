package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	_ "github.com/csemotors/dealership/docs"
	"github.com/csemotors/dealership/internal/api/handler"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/view"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/core/service"
	"github.com/csemotors/dealership/internal/infrastructure/config"
	"github.com/csemotors/dealership/internal/infrastructure/db/gormdb"
	mongodb "github.com/csemotors/dealership/internal/infrastructure/db/mongo"
	redisdb "github.com/csemotors/dealership/internal/infrastructure/db/redis"
	"github.com/csemotors/dealership/internal/infrastructure/http/handlers"
	"github.com/csemotors/dealership/pkg/logger"
)

// Options carries the dependencies of the router. Mongo and Redis are
// optional. Activity and History default to no-ops.
type Options struct {
	Config   *config.Config
	Log      zerolog.Logger
	DB       *gorm.DB
	Mongo    *mongodb.Store
	Redis    *redis.Client
	Sessions sessions.Store
	Activity ports.ActivityRecorder
	History  ports.ActivityHistory
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) (*echo.Echo, error) {
	log := opts.Log
	cfg := opts.Config

	// --- Dependencies ---
	var throttle ports.LoginThrottle
	if opts.Redis != nil {
		throttle = redisdb.NewLoginThrottle(opts.Redis, 0, 0)
	}
	activity := opts.Activity
	if activity == nil {
		activity = service.NopRecorder{}
	}
	history := opts.History
	if history == nil {
		history = service.NopHistory{}
	}
	var store sessions.Store = opts.Sessions
	if store == nil {
		store = NewSessionStore(cfg, opts.DB)
	}

	tokens := service.NewTokenService(cfg.AccessTokenSecret, service.TokenTTL)
	accounts := service.NewAccountService(gormdb.NewAccountRepository(opts.DB), tokens, throttle, log)
	inventoryRepo := gormdb.NewInventoryRepository(opts.DB)
	inventory := service.NewInventoryService(inventoryRepo)
	reviews := service.NewReviewService(gormdb.NewReviewRepository(opts.DB), inventoryRepo, log)

	renderer, err := view.NewRenderer(inventory, log)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	validator := handler.NewValidator(accounts, log)
	cookie := middleware.TokenCookie{MaxAge: service.TokenTTL, Secure: cfg.IsProduction()}

	accountHandler := handler.NewAccountHandler(accounts, reviews, activity, history, validator, cookie, log)
	inventoryHandler := handler.NewInventoryHandler(inventory, reviews)
	reviewHandler := handler.NewReviewHandler(inventory, reviews, validator, log)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = validator
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	registry := prometheus.NewRegistry()
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "dealership",
		Subsystem:  "http",
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(session.Middleware(store))
	e.Use(middleware.Session(tokens, cookie))

	// --- Account routes ---
	requireLogin := middleware.RequireLogin()
	account := e.Group("/account")
	account.GET("/login", accountHandler.LoginView)
	account.POST("/login", accountHandler.Login, accountHandler.LoginRules())
	account.GET("/register", accountHandler.RegisterView)
	account.POST("/register", accountHandler.Register, accountHandler.RegisterRules())
	account.GET("/", accountHandler.Management, requireLogin)
	account.GET("/logout", accountHandler.Logout)
	account.GET("/update/:account_id", accountHandler.UpdateView, requireLogin)
	account.POST("/update-account", accountHandler.UpdateAccount, requireLogin, accountHandler.UpdateRules())
	account.POST("/change-password", accountHandler.ChangePassword, requireLogin, accountHandler.PasswordRules())

	// --- Inventory routes ---
	e.GET("/", inventoryHandler.Home)
	inv := e.Group("/inv")
	inv.GET("/", inventoryHandler.Management, middleware.RequireRole(domain.RoleAdmin, domain.RoleEmployee))
	inv.GET("/type/:classificationId", inventoryHandler.ByClassification)
	inv.GET("/detail/:invId", inventoryHandler.Detail)

	// --- Review routes ---
	review := e.Group("/review", requireLogin)
	review.POST("/submit", reviewHandler.Submit, reviewHandler.SubmitRules())
	review.GET("/edit/:reviewId", reviewHandler.EditView)
	review.POST("/update", reviewHandler.Update, reviewHandler.UpdateRules())

	// --- Health probes, metrics and docs (no auth required) ---
	health := handlers.NewHealth(time.Now(), map[string]handlers.PingFunc{
		"database": func(ctx context.Context) error { return gormdb.Ping(ctx, opts.DB) },
		"mongodb":  mongoPing(opts.Mongo),
		"redis":    redisPing(opts.Redis),
	})

	e.GET("/health", health.Live)
	e.GET("/health/ready", health.Ready)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, registry},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// NewSessionStore builds the server-side session store. Its cookie is
// Secure in production.
func NewSessionStore(cfg *config.Config, db *gorm.DB) *gormdb.SessionStore {
	store := gormdb.NewSessionStore(db, []byte(cfg.SessionSecret))
	store.Options.Secure = cfg.IsProduction()
	return store
}

func mongoPing(store *mongodb.Store) handlers.PingFunc {
	if store == nil {
		return nil
	}
	return store.Ping
}

func redisPing(client *redis.Client) handlers.PingFunc {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
