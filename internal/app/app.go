package app

import (
	"career_agent_backend/internal/config"
	"career_agent_backend/internal/controller"
	"career_agent_backend/internal/middleware"
	"career_agent_backend/internal/repository"
	"career_agent_backend/internal/service"
	"career_agent_backend/pkg/database"
	"career_agent_backend/pkg/logger"
	"career_agent_backend/pkg/monitoring"
	"career_agent_backend/pkg/security"
	"career_agent_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	profile  *repository.ProfileRepository
	session  *repository.SessionRepository
	job      *repository.JobRepository
	path     *repository.LearningPathRepository
	test     *repository.SkillTestRepository
	resume   *repository.ResumeRepository
	activity *repository.ActivityRepository
}

type services struct {
	ai           *service.AIService
	search       *service.SearchService
	storage      *service.StorageService
	chat         *service.ChatService
	jobSearch    *service.JobSearchService
	skill        *service.SkillService
	learning     *service.LearningService
	resume       *service.ResumeService
	profile      *service.ProfileService
	dashboard    *service.DashboardService
	orchestrator *service.OrchestratorService
}

type controllers struct {
	chat      *controller.ChatController
	job       *controller.JobController
	learning  *controller.LearningController
	test      *controller.TestController
	resume    *controller.ResumeController
	profile   *controller.ProfileController
	dashboard *controller.DashboardController
	activity  *controller.ActivityController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		profile:  repository.NewProfileRepository(db),
		session:  repository.NewSessionRepository(db),
		job:      repository.NewJobRepository(db),
		path:     repository.NewLearningPathRepository(db),
		test:     repository.NewSkillTestRepository(db),
		resume:   repository.NewResumeRepository(db),
		activity: repository.NewActivityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(&cfg.AI)
	s.search = service.NewSearchService(&cfg.Search)
	s.storage = service.NewStorageService(cfg)
	s.chat = service.NewChatService(s.ai, repos.session)
	s.jobSearch = service.NewJobSearchService(s.ai, s.search, repos.profile, cfg.Search.Enabled, cfg.Search.MaxResults)
	s.skill = service.NewSkillService(s.ai, repos.profile, repos.test)
	s.learning = service.NewLearningService(s.ai, repos.path, repos.test, repos.activity)
	s.resume = service.NewResumeService(s.ai, repos.resume, s.storage)
	s.profile = service.NewProfileService(repos.profile)
	s.dashboard = service.NewDashboardService(repos.job, repos.path, repos.resume, rdb)
	s.orchestrator = service.NewOrchestratorService(
		s.ai,
		s.chat,
		s.jobSearch,
		s.skill,
		s.learning,
		s.resume,
		repos.job,
		repos.profile,
		repos.activity,
	)
	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		chat:      controller.NewChatController(s.orchestrator, s.chat),
		job:       controller.NewJobController(repos.job, repos.activity),
		learning:  controller.NewLearningController(repos.path),
		test:      controller.NewTestController(repos.test, s.learning),
		resume:    controller.NewResumeController(s.resume, repos.resume),
		profile:   controller.NewProfileController(s.profile),
		dashboard: controller.NewDashboardController(s.dashboard),
		activity:  controller.NewActivityController(repos.activity),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(middleware.RequestLogger())
	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("career-agent", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
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

	log.Println("Server exiting")
}
