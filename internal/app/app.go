package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/config"
	"tourhub_backend/internal/database"
	"tourhub_backend/internal/email"
	"tourhub_backend/internal/handlers"
	"tourhub_backend/internal/logger"
	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/internal/routes"
	"tourhub_backend/internal/services"
	"tourhub_backend/internal/validator"
	"tourhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxBodyBytes = 10 << 10

// App is the wired service: configuration, storage, services and router.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Tokens   *auth.TokenIssuer
	UserRepo repositories.UserRepository
	Services *services.ServiceContainer
	Router   *gin.Engine
}

type Option func(*options)

type options struct {
	userRepo repositories.UserRepository
	provider email.Provider
	now      func() time.Time
}

// WithUserRepository replaces the gorm credential store.
func WithUserRepository(repo repositories.UserRepository) Option {
	return func(o *options) { o.userRepo = repo }
}

// WithEmailProvider replaces the provider chosen from the SMTP settings.
func WithEmailProvider(p email.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithClock sets the time source for token issuance and cookies.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN, !cfg.IsProduction())
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	application, err := New(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to build application", "error", err)
	}

	if err := application.seedFirstAdmin(ctx); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           application.Router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErrors:
		logger.Error("Server stopped unexpectedly", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server shutdown failed", "error", err)
	}
	if err := application.Services.Close(); err != nil {
		logger.Warn("Email provider close failed", "error", err)
	}
	logger.Info("Server stopped")
}

// New wires repositories, services, handlers and the gin router on top of db.
func New(cfg *config.Config, db *gorm.DB, opts ...Option) (*App, error) {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(!cfg.IsProduction())

	hasher := auth.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.HashConcurrency)
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.TokenTTL(), auth.WithClock(o.now))

	userRepo := o.userRepo
	if userRepo == nil {
		userRepo = repositories.NewUserRepository(hasher)
	}

	provider := o.provider
	if provider == nil {
		var err error
		if provider, err = newEmailProvider(cfg); err != nil {
			return nil, err
		}
	}

	container := initializeServices(cfg, userRepo, hasher, tokens, provider)
	appHandlers := initializeHandlers(cfg, container, tokens, db)

	views, err := handlers.LoadViews()
	if err != nil {
		return nil, fmt.Errorf("failed to parse view templates: %w", err)
	}

	ginRouter := initializeGinRouter(cfg, db)
	ginRouter.SetHTMLTemplate(views)

	authMW := middleware.NewAuthMiddleware(auth.NewAuthenticator(tokens, middleware.IdentityLookup(userRepo, db)))
	routes.RegisterRoutes(ginRouter, appHandlers, authMW, routes.Options{
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: time.Hour,
	})

	return &App{
		Config:   cfg,
		DB:       db,
		Tokens:   tokens,
		UserRepo: userRepo,
		Services: container,
		Router:   ginRouter,
	}, nil
}

func newEmailProvider(cfg *config.Config) (email.Provider, error) {
	templates, err := email.NewBuiltinTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host is not configured; emails will be written to the log")
		return email.NewLogProvider(templates), nil
	}

	provider := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, templates)
	if err := provider.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SMTP settings: %w", err)
	}
	return provider, nil
}

func initializeServices(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	hasher *auth.Hasher,
	tokens *auth.TokenIssuer,
	provider email.Provider,
) *services.ServiceContainer {
	tourRepo := repositories.NewTourRepository()
	reviewRepo := repositories.NewReviewRepository()
	bookingRepo := repositories.NewBookingRepository()

	notifier := services.NewEmailNotifier(provider, cfg.Email.FromName, cfg.Email.FromEmail)

	return &services.ServiceContainer{
		AuthService:    services.NewAuthService(userRepo, hasher, tokens, notifier),
		UserService:    services.NewUserService(userRepo),
		TourService:    services.NewTourService(tourRepo),
		ReviewService:  services.NewReviewService(reviewRepo, tourRepo),
		BookingService: services.NewBookingService(bookingRepo),
		Notifier:       notifier,
		EmailProvider:  provider,
	}
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer, tokens *auth.TokenIssuer, db *gorm.DB) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, container.AuthService, cfg.CookieTTL(), tokens.Now),
		UserHandler:    handlers.NewUserHandler(baseHandler, container.UserService),
		TourHandler:    handlers.NewTourHandler(baseHandler, container.TourService),
		ReviewHandler:  handlers.NewReviewHandler(baseHandler, container.ReviewService),
		BookingHandler: handlers.NewBookingHandler(baseHandler, container.BookingService),
		ViewHandler:    handlers.NewViewHandler(baseHandler, container.TourService),
		HealthHandler:  handlers.NewHealthHandler(db),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.BodyLimit(maxBodyBytes))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the configured admin identity when it does not exist yet.
func (a *App) seedFirstAdmin(ctx context.Context) error {
	admin := a.Config.FirstAdmin
	if admin.Email == "" || admin.Password == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	created, err := a.Services.UserService.EnsureAdmin(ctx, a.DB, admin.Name, admin.Email, admin.Password)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Created first admin user", "email", admin.Email)
	} else {
		logger.Info("Admin user already exists. Skipping creation.", "email", admin.Email)
	}
	return nil
}
