package cmd

import (
	"context"
	"fmt"
	"net/http"

	"jsonview/api"
	"jsonview/api/health"
	apiuser "jsonview/api/user"
	userapp "jsonview/application/user"
	"jsonview/config"
	"jsonview/domain/shared"
	userdomain "jsonview/domain/user"
	"jsonview/infrastructure/persistence/gormdb"
	"jsonview/infrastructure/persistence/memory"
	"jsonview/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg          *config.Config
	controllers  []api.ControllerRegister
	middlewares  []api.MiddlewareRegister
	customRoutes []api.Route
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:          cfg,
		controllers:  []api.ControllerRegister{},
		middlewares:  []api.MiddlewareRegister{},
		customRoutes: []api.Route{},
	}
}

// WithController adds a controller to the app
func (b *AppBuilder) WithController(c api.ControllerRegister) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// WithMiddleware adds a middleware to the app
func (b *AppBuilder) WithMiddleware(m api.MiddlewareRegister) *AppBuilder {
	b.middlewares = append(b.middlewares, m)
	return b
}

// WithRoute adds a custom route
func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, api.Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

// Build creates the App instance
func (b *AppBuilder) Build() (*App, error) {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("database", b.cfg.Database.Type))

	db, userRepo, uow, err := b.initStore()
	if err != nil {
		return nil, err
	}

	userService := userapp.NewApplicationService(userRepo, uow)

	if !b.hasHealthController() {
		b.controllers = append(b.controllers, b.newHealthController(db))
	}
	if !b.hasUserController() {
		b.controllers = append(b.controllers, apiuser.NewController(userService))
	}

	router := api.NewRouter(b.cfg, b.controllers, b.middlewares, b.customRoutes)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
	}, nil
}

// initStore opens the configured store. db is nil for the in-memory store.
func (b *AppBuilder) initStore() (*gorm.DB, userdomain.Repository, shared.UnitOfWork, error) {
	if b.cfg.Database.Type == config.DatabaseMemory {
		logger.Info("Using in-memory persistence layer")
		store := memory.NewStore()
		return nil, memory.NewUserRepository(store), memory.NewUnitOfWork(store), nil
	}

	logger.Info("Using GORM persistence layer", zap.String("dialect", b.cfg.Database.Type))

	dbConfig := gormdb.FromAppConfig(b.cfg.Database)
	db, err := dbConfig.Connect()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := gormdb.Ping(context.Background(), db); err != nil {
		_ = gormdb.Close(db)
		return nil, nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// sqlite files are created on demand, so they always need their schema
	if b.cfg.IsDevelopment() || b.cfg.Database.Type == config.DatabaseSQLite {
		if err := gormdb.AutoMigrate(db); err != nil {
			_ = gormdb.Close(db)
			return nil, nil, nil, err
		}
	}

	return db, gormdb.NewUserRepository(db), gormdb.NewUnitOfWork(db), nil
}

func (b *AppBuilder) hasUserController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*apiuser.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) hasHealthController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*health.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) newHealthController(db *gorm.DB) *health.Controller {
	if db == nil {
		return health.NewController(b.cfg, nil)
	}
	return health.NewController(b.cfg, health.PingFunc(func(ctx context.Context) error {
		return gormdb.Ping(ctx, db)
	}))
}
