package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"soft_skill_backend/internal/config"
	"soft_skill_backend/internal/controller"
	"soft_skill_backend/internal/repository"
	"soft_skill_backend/internal/service"
	"soft_skill_backend/pkg/database"
	"soft_skill_backend/pkg/logger"
	"soft_skill_backend/pkg/monitoring"
	"soft_skill_backend/pkg/security"
	"soft_skill_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	feedback *service.FeedbackService
}

type repositories struct {
	skill    *repository.SoftSkillRepository
	practice *repository.PracticeRepository
	progress *repository.ProgressRepository
	tracking *repository.TrackingLogRepository
}

type services struct {
	catalog  *service.CatalogService
	practice *service.PracticeService
	progress *service.ProgressService
	feedback *service.FeedbackService
	events   *service.EventService
}

type controllers struct {
	health    *controller.HealthController
	softSkill *controller.SoftSkillController
	practice  *controller.PracticeController
	progress  *controller.ProgressController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		skill:    repository.NewSoftSkillRepository(db),
		practice: repository.NewPracticeRepository(db),
		progress: repository.NewProgressRepository(db),
		tracking: repository.NewTrackingLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.feedback = service.NewFeedbackService(cfg.Feedback)
	s.events = service.NewEventService(rdb, cfg.EventBus)
	s.progress = service.NewProgressService(repos.progress, repos.practice, repos.skill, db)
	s.practice = service.NewPracticeService(repos.practice, repos.skill, repos.tracking, s.progress, s.feedback, s.events, db)
	s.catalog = service.NewCatalogService(repos.skill, repos.progress)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		health:    controller.NewHealthController(db),
		softSkill: controller.NewSoftSkillController(s.catalog),
		practice:  controller.NewPracticeController(s.practice),
		progress:  controller.NewProgressController(s.progress),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Redis 仅用于事件发布，连不上时降级为不发布而非拒绝启动
	var rdb *redis.Client
	if cfg.EventBus.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Failed to initialize redis, event publishing disabled", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)
	app.feedback = services.feedback

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("soft-skill-practice", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	return app
}

// ApplyConfig 配置文件变更时的热更新回调。只有反馈网关设置支持热生效，
// 服务端口、数据库等需要重启
func (a *App) ApplyConfig(cfg *config.Config) {
	a.feedback.UpdateConfig(cfg.Feedback)
	logger.Log.Info("Config reloaded",
		zap.String("feedbackBaseUrl", cfg.Feedback.BaseURL),
		zap.String("language", cfg.Feedback.Language))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
