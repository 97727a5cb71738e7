package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/studyweave/studyweave-backend/internal/clients/redis"
	"github.com/studyweave/studyweave-backend/internal/data/db"
	"github.com/studyweave/studyweave-backend/internal/http/handlers"
	"github.com/studyweave/studyweave-backend/internal/http/middleware"
	"github.com/studyweave/studyweave-backend/internal/platform/catalog"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
	"github.com/studyweave/studyweave-backend/internal/server"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	bus redisclient.CompletionBus
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	catalogCfg, err := catalog.ResolveConfigFromEnv()
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("catalog config: %w", err)
	}
	cat, err := catalog.NewClient(log, catalogCfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	// The completion bus is optional; without REDIS_ADDR completions are
	// simply not broadcast.
	bus, busErr := redisclient.NewCompletionBus(log)
	if busErr != nil {
		log.Warn("completion bus disabled", "error", busErr)
		bus = nil
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet, cat, bus)

	authMW := middleware.NewAuthMiddleware(log, cfg.JWTSecretKey)
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		AuthMiddleware:  authMW,
		HealthHandler:   handlers.NewHealthHandler(),
		ContentHandler:  handlers.NewContentHandler(log, serviceset.Resolver, serviceset.Validator, serviceset.Objects, serviceset.Questions),
		PathHandler:     handlers.NewPathHandler(log, serviceset.PathGraph, serviceset.Resolver),
		ProgressHandler: handlers.NewProgressHandler(log, serviceset.Aggregator),
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		bus:      bus,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(a.Cfg.ListenAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.bus != nil {
		_ = a.bus.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
