package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/tpcell/portal/internal/app/auth"
	appControllers "github.com/tpcell/portal/internal/app/controllers"
	appMigrations "github.com/tpcell/portal/internal/app/migrations"
	appRepos "github.com/tpcell/portal/internal/app/repositories"
	appRoutes "github.com/tpcell/portal/internal/app/routes"
	appServices "github.com/tpcell/portal/internal/app/services"
	"github.com/tpcell/portal/internal/config"
	"github.com/tpcell/portal/internal/db"
	appMiddleware "github.com/tpcell/portal/internal/middleware"
	pkgAuth "github.com/tpcell/portal/internal/pkg/auth"
	"github.com/tpcell/portal/internal/pkg/email"
	"github.com/tpcell/portal/internal/pkg/filestorage"
	"github.com/tpcell/portal/internal/pkg/helpers"
	"github.com/tpcell/portal/internal/pkg/logger"
	"github.com/tpcell/portal/internal/pkg/metrics"
	"github.com/tpcell/portal/internal/pkg/websocket"
	"github.com/tpcell/portal/internal/scheduler"
	"github.com/tpcell/portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService
	Emails       *email.EmailServiceImpl
	FileStorage  filestorage.FileStorage
	Hub          *websocket.Hub
	Limiter      appMiddleware.Limiter
	Redis        *redis.Client
	Scheduler    *scheduler.Scheduler

	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger

	closers []func() error
}

// Close releases the clients opened by BuildDependencies
func (d *Dependencies) Close() {
	for _, c := range d.closers {
		if err := c(); err != nil {
			d.Logger.Warn().Err(err).Msg("Error closing dependency")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// creates the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	err = seed.CreateDefaultData(ctx, appRepos.NewRepositories(dbPool), seed.Options{
		SuperAdminEmail:    cfg.Seed.SuperAdminEmail,
		SuperAdminPassword: cfg.Seed.SuperAdminPassword,
		AdminContactEmail:  cfg.Seed.AdminContactEmail,
	}, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

func setupStorage(cfg *config.Config, lgr zerolog.Logger) (filestorage.FileStorage, func() error, error) {
	if strings.EqualFold(cfg.Storage.Driver, "gcs") {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		gcs, err := filestorage.NewGCSStorage(ctx, cfg.Storage.GCSBucket, cfg.Storage.PublicURL)
		if err != nil {
			return nil, nil, err
		}
		lgr.Info().Str("bucket", cfg.Storage.GCSBucket).Msg("Using GCS file storage")
		return gcs, gcs.Close, nil
	}

	// Must match the static file serving URL path
	publicURL := cfg.Storage.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimRight(cfg.Server.BaseURL, "/") + "/uploads"
	}
	local, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, publicURL)
	if err != nil {
		return nil, nil, err
	}
	return local, nil, nil
}

func setupLimiter(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	if !cfg.RateLimit.Enabled {
		deps.Logger.Info().Msg("Rate limiting disabled")
		return
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			deps.Redis = client
			deps.Limiter = appMiddleware.NewRedisLimiter(client)
			deps.closers = append(deps.closers, client.Close)
			deps.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis rate limiter")
			return
		}
		deps.Logger.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory rate limiter")
		_ = client.Close()
	}

	mem := appMiddleware.NewMemoryLimiter()
	window := helpers.ParseDuration(cfg.RateLimit.Window, time.Minute)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				mem.Cleanup(2 * window)
			}
		}
	}()
	deps.Limiter = mem
}

// BuildDependencies initializes application repositories, services, and
// controllers. Background workers stop when ctx is cancelled.
func BuildDependencies(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	tx := db.NewTransactor(dbPool)

	storage, closeStorage, err := setupStorage(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage
	if closeStorage != nil {
		deps.closers = append(deps.closers, closeStorage)
	}

	deps.Emails, err = email.NewEmailService(
		appServices.NewEmailSettingsSource(deps.Repos.SettingsRepository),
		cfg.Server.BaseURL,
		logger.Component("email"),
		email.WithSendGrid(cfg.Email.SendGridAPIKey),
	)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to initialize email service: %w", err)
	}

	deps.Hub = websocket.NewHub(logger.Component("websocket"))
	go deps.Hub.Run(ctx)

	setupLimiter(ctx, cfg, deps)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.StudentRepository,
		deps.Repos.CompanyRepository,
		deps.Repos.JAFRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	authService := appServices.NewAuthService(tx, deps.Repos, deps.JWTService, deps.Emails, appServices.OTPConfig{
		Expiration:  helpers.ParseDuration(cfg.Email.OTPExpiration, 10*time.Minute),
		MaxAttempts: cfg.Email.OTPAttempts,
	}, lgr)
	studentService := appServices.NewStudentService(tx, deps.Repos, deps.AuthzService, deps.FileStorage, lgr)
	jobService := appServices.NewJobService(deps.Repos, deps.AuthzService, lgr)
	companyService := appServices.NewCompanyService(tx, deps.Repos, deps.AuthzService, lgr)
	applicationService := appServices.NewApplicationService(tx, deps.Repos, deps.AuthzService, deps.Emails, deps.Hub, lgr)
	verificationService := appServices.NewVerificationService(tx, deps.Repos, deps.Emails, deps.Hub, lgr)
	adminService := appServices.NewAdminService(tx, deps.Repos, helpers.ParseDuration(cfg.Cache.DashboardTTL, time.Minute), lgr)
	superAdminService := appServices.NewSuperAdminService(tx, deps.Repos, deps.Emails, lgr)
	uploadService := appServices.NewUploadService(
		deps.FileStorage,
		filestorage.NewInspector(cfg.MaxUploadBytes(), cfg.Upload.AllowedTypes),
		logger.Component("upload"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.Controllers = appRoutes.Controllers{
		Auth: appControllers.NewAuthController(authService, appControllers.CookieConfig{
			Domain: cfg.Server.CookieDomain,
			Secure: cfg.Server.CookieSecure,
		}, lgr),
		Student:    appControllers.NewStudentController(studentService, jobService),
		Company:    appControllers.NewCompanyController(companyService, applicationService),
		Admin:      appControllers.NewAdminController(adminService, verificationService, studentService, companyService, applicationService),
		SuperAdmin: appControllers.NewSuperAdminController(superAdminService),
		Upload:     appControllers.NewUploadController(uploadService),
		Websocket:  websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, logger.Component("websocket")),
	}

	if cfg.Scheduler.Enabled {
		deps.Scheduler, err = scheduler.New(scheduler.Config{
			CloseExpiredJobs: cfg.Scheduler.CloseExpiredJobs,
			PurgeTokens:      cfg.Scheduler.PurgeTokens,
		}, deps.Repos.JAFRepository, deps.Repos.TokenRepository, deps.Repos.OTPRepository, logger.Component("scheduler"))
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(),
		appMiddleware.Metrics(),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)
	router.NoRoute(appMiddleware.NoRoute())

	if !cfg.IsProduction() {
		host := ""
		if u, err := url.Parse(cfg.Server.BaseURL); err == nil {
			host = u.Host
		}
		appRoutes.SetupSwagger(router, host)
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, appRoutes.RateLimit{
		Limiter:  deps.Limiter,
		Requests: cfg.RateLimit.Requests,
		Window:   helpers.ParseDuration(cfg.RateLimit.Window, time.Minute),
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
