package di

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	"github.com/Zecser/Catering-and-Tourism/internal/app"
	"github.com/Zecser/Catering-and-Tourism/internal/config"
	"github.com/Zecser/Catering-and-Tourism/internal/database"
	"github.com/Zecser/Catering-and-Tourism/internal/http/handler"
	"github.com/Zecser/Catering-and-Tourism/internal/http/middleware"
	"github.com/Zecser/Catering-and-Tourism/internal/http/router"
	"github.com/Zecser/Catering-and-Tourism/internal/observability"
	"github.com/Zecser/Catering-and-Tourism/internal/repository"
	"github.com/Zecser/Catering-and-Tourism/internal/security"
	"github.com/Zecser/Catering-and-Tourism/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(observability.NewLogger)

var RuntimeInfraSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	provideLimiter,
	provideLimiterMode,
	provideStorage,
)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewOTPRepository,
	repository.NewBlogRepository,
	repository.NewGalleryRepository,
)

var SecuritySet = wire.NewSet(
	provideJWTManager,
	providePasswordHasher,
	provideCookieManager,
)

var ServiceSet = wire.NewSet(
	provideMailer,
	provideAuthService,
	provideOTPCleaner,
	provideContactService,
	service.NewBlogService,
	service.NewGalleryService,
)

var HTTPSet = wire.NewSet(
	provideAuthHandler,
	handler.NewBlogHandler,
	handler.NewGalleryHandler,
	handler.NewContactHandler,
	provideRouterDependencies,
	provideRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

func provideDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// provideRedisClient returns nil when no address is configured; the limiter
// provider falls back to the in-process implementation.
func provideRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}

func provideLimiter(client *redis.Client) middleware.Limiter {
	if client == nil {
		return middleware.NewLocalFixedWindowLimiter()
	}
	return middleware.NewRedisFixedWindowLimiter(client, "ratelimit")
}

// A Redis outage should not lock every caller out of auth; the local
// limiter never errors, so fail-closed costs nothing there.
func provideLimiterMode(cfg *config.Config) middleware.FailureMode {
	if cfg.RedisAddr != "" {
		return middleware.FailOpen
	}
	return middleware.FailClosed
}

func provideStorage(cfg *config.Config) (service.StorageService, error) {
	if !cfg.StorageConfigured() {
		return service.NewDisabledStorage(), nil
	}
	return service.NewMinIOStorageService(
		cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey,
		cfg.MinIOBucket, cfg.MinIOUseSSL,
	)
}

func provideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
}

func providePasswordHasher(cfg *config.Config) *security.PasswordHasher {
	return security.NewPasswordHasher(cfg.BcryptCost)
}

func provideCookieManager(cfg *config.Config) *security.CookieManager {
	return security.NewCookieManager(cfg.CookieSecure, cfg.CookieSameSite)
}

func provideMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg.SMTPConfigured() {
		return service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUser)
	}
	return service.NewDevMailer(logger)
}

func provideAuthService(
	users repository.UserRepository,
	otps repository.OTPRepository,
	hasher *security.PasswordHasher,
	jwtMgr *security.JWTManager,
	mailer service.Mailer,
	logger *slog.Logger,
	cfg *config.Config,
) *service.AuthService {
	return service.NewAuthService(users, otps, hasher, jwtMgr, mailer, logger, cfg.OTPTTL)
}

func provideOTPCleaner(otps repository.OTPRepository, logger *slog.Logger, cfg *config.Config) *service.OTPCleaner {
	return service.NewOTPCleaner(otps, logger, cfg.OTPSweepInterval)
}

func provideContactService(mailer service.Mailer, cfg *config.Config) *service.ContactService {
	return service.NewContactService(mailer, cfg.AdminEmail)
}

func provideAuthHandler(authSvc *service.AuthService, cookies *security.CookieManager, cfg *config.Config) *handler.AuthHandler {
	return handler.NewAuthHandler(authSvc, cookies, cfg.RefreshTokenTTL)
}

func provideRouterDependencies(
	logger *slog.Logger,
	jwtMgr *security.JWTManager,
	authH *handler.AuthHandler,
	blogH *handler.BlogHandler,
	galleryH *handler.GalleryHandler,
	contactH *handler.ContactHandler,
	limiter middleware.Limiter,
	mode middleware.FailureMode,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		Logger:           logger,
		JWTManager:       jwtMgr,
		AuthHandler:      authH,
		BlogHandler:      blogH,
		GalleryHandler:   galleryH,
		ContactHandler:   contactH,
		Limiter:          limiter,
		LimiterMode:      mode,
		CORSOrigins:      []string{cfg.FrontEndURL},
		AuthRateLimitRPM: cfg.AuthRateLimitPerMin,
		APIRateLimitRPM:  cfg.APIRateLimitPerMin,
	}
}

func provideRouter(dep router.Dependencies) http.Handler {
	return otelhttp.NewHandler(router.New(dep), "http.server")
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// MigrationRunner backs the `migrate` subcommand.
type MigrationRunner struct {
	db *gorm.DB
}

func NewMigrationRunner(db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

func (m *MigrationRunner) Run() error {
	return database.Migrate(m.db)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}
