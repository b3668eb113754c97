package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medipublish_backend/internal/config"
	"medipublish_backend/internal/controller"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/service"
	"medipublish_backend/internal/util"
	"medipublish_backend/pkg/database"
	"medipublish_backend/pkg/logger"
	"medipublish_backend/pkg/monitoring"
	"medipublish_backend/pkg/security"
	"medipublish_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	activity     *repository.ActivityRepository
	attempt      *repository.AttemptRepository
	completion   *repository.CompletionRepository
	requirement  *repository.RequirementRepository
	content      *repository.ContentRepository
	subscription *repository.SubscriptionRepository
	community    *repository.CommunityRepository
	analytics    *repository.AnalyticsRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	catalog      *service.CatalogService
	grading      *service.GradingService
	completion   *service.CompletionService
	activity     *service.ActivityService
	transcript   *service.TranscriptService
	content      *service.ContentService
	subscription *service.SubscriptionService
	community    *service.CommunityService
	analytics    *service.AnalyticsService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	activity     *controller.ActivityController
	cme          *controller.CMEController
	transcript   *controller.TranscriptController
	content      *controller.ContentController
	subscription *controller.SubscriptionController
	community    *controller.CommunityController
	analytics    *controller.AnalyticsController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig copies a reloaded configuration over the shared config so
// services holding the pointer pick it up, then notifies registered
// callbacks. Only settings read per-request (rate limits, CME policy)
// take effect; server address and database connections are not rebound.
func (a *App) ApplyConfig(cfg *config.Config) {
	*a.Config = *cfg
	for _, callback := range a.configCallbacks {
		callback(a.Config)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		activity:     repository.NewActivityRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		completion:   repository.NewCompletionRepository(db),
		requirement:  repository.NewRequirementRepository(db),
		content:      repository.NewContentRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		community:    repository.NewCommunityRepository(db),
		analytics:    repository.NewAnalyticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, logger.Log)
	s.analytics = service.NewAnalyticsService(repos.analytics, repos.subscription, rdb)
	s.catalog = service.NewCatalogService(repos.activity, rdb)
	s.grading = service.NewGradingService()
	s.completion = service.NewCompletionService(repos.activity, repos.completion, repos.attempt, s.grading, s.analytics, cfg)
	s.activity = service.NewActivityService(repos.activity, repos.attempt, s.catalog, s.analytics)
	s.transcript = service.NewTranscriptService(repos.completion, repos.requirement, s.storage)
	s.content = service.NewContentService(repos.content, repos.subscription, s.storage, s.analytics, cfg)
	s.subscription = service.NewSubscriptionService(repos.subscription, repos.user, s.analytics, cfg)
	s.community = service.NewCommunityService(repos.community, repos.user)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		activity:     controller.NewActivityController(s.activity, s.catalog),
		cme:          controller.NewCMEController(s.completion, s.activity, s.auth),
		transcript:   controller.NewTranscriptController(s.transcript),
		content:      controller.NewContentController(s.content, s.auth),
		subscription: controller.NewSubscriptionController(s.subscription),
		community:    controller.NewCommunityController(s.community),
		analytics:    controller.NewAnalyticsController(s.analytics),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis only backs the catalog cache; without it every read goes to
	// the database.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, catalog caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("medipublish", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
