package router

import (
	"fmt"
	"time"

	"placehub/internal/api/handlers"
	"placehub/internal/api/middleware"
	"placehub/internal/config"
	"placehub/internal/domain/user"
	"placehub/internal/infrastructure/cache"
	"placehub/internal/infrastructure/queue"
	"placehub/internal/infrastructure/repository"
	interfaces "placehub/internal/interfaces/infrastructure"
	"placehub/internal/service"
	"placehub/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Components bundles the router with the background machinery the server
// must stop on shutdown.
type Components struct {
	Router       *gin.Engine
	QueueService interfaces.QueueService
	CacheService interfaces.CacheService
	Poller       *service.Poller
}

// New wires repositories, caches, workers and handlers into the HTTP
// surface. A nil db runs everything on in-memory stores, which is the demo
// mode used without Postgres.
func New(db *gorm.DB) *Components {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(cors.Default())
	r.Use(gin.Recovery())
	r.Use(middleware.Actor())

	cfg := config.Get()

	var (
		profileRepo      interfaces.ProfileRepository
		driveRepo        interfaces.DriveRepository
		applicationRepo  interfaces.ApplicationRepository
		notificationRepo interfaces.NotificationRepository
		userRepo         interfaces.UserRepository
		reportRepo       interfaces.ReportRepository
		dbPing           func() error
	)

	if db != nil {
		profileRepo = repository.NewProfileRepository(db)
		driveRepo = repository.NewDriveRepository(db)
		applicationRepo = repository.NewApplicationRepository(db)
		notificationRepo = repository.NewNotificationRepository(db)
		userRepo = repository.NewUserRepository(db)

		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("Failed to unwrap database connection: %v", err)
		}
		reportRepo = repository.NewReportRepository(sqlDB)
		dbPing = sqlDB.Ping
	} else {
		logger.Warn("No database configured, using in-memory stores")
		profileRepo = repository.NewMemoryProfileRepository()
		driveRepo = repository.NewMemoryDriveRepository()
		applicationRepo = repository.NewMemoryApplicationRepository()
		notificationRepo = repository.NewMemoryNotificationRepository()
		userRepo = repository.NewMemoryUserRepository()
		reportRepo = repository.NewMemoryReportRepository(userRepo, profileRepo, driveRepo, applicationRepo)
	}

	var cacheService interfaces.CacheService
	if cfg.Cache.Type == "memory" || db == nil {
		cacheService = cache.NewMemoryCache()
		logger.Info("Using in-memory cache")
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Cache.Host, cfg.Cache.Port)
		cacheService = cache.NewRedisCache(addr, cfg.Cache.Password, cfg.Cache.DB)
		logger.Info("Using Redis cache at %s", addr)
	}

	var queueService interfaces.QueueService
	if cfg.Queue.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Cache.Host, cfg.Cache.Port)
		queueService = queue.NewRedisQueue(addr, cfg.Cache.Password, cfg.Cache.DB, cfg.Queue.Workers)
		logger.Info("Using Redis queue service")
	} else {
		queueService = queue.NewInMemoryQueue(cfg.Queue.BufferSize, cfg.Queue.Workers)
		logger.Info("Using in-memory queue service")
	}

	watcher := service.NewWatcher()
	profileService := service.NewProfileService(profileRepo, cacheService, cfg.Placement.ResumeHosts)
	driveService := service.NewDriveService(driveRepo, watcher)
	applicationService := service.NewApplicationService(
		profileRepo, driveRepo, applicationRepo, reportRepo,
		cacheService, queueService, cfg.Placement.ResumeHosts,
	)
	notificationService := service.NewNotificationService(notificationRepo, applicationRepo, driveRepo, watcher)
	reportService := service.NewReportService(reportRepo, cacheService)
	userService := service.NewUserService(userRepo)

	service.RefreshSummariesOnChange(watcher, queueService)

	queueService.SetProcessor(applicationService)
	queueService.StartWorkers()

	poller := service.NewPoller(queueService, time.Duration(cfg.Placement.SummaryPollSeconds)*time.Second)
	poller.Start()

	authHandler := handlers.NewAuthHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService)
	driveHandler := handlers.NewDriveHandler(driveService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(dbPing, cacheService)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)
	r.GET("/live", healthHandler.LivenessCheck)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		v1.GET("/users/:id", authHandler.GetUser)

		students := v1.Group("/students")
		{
			students.PUT("/:id/profile", profileHandler.SaveProfile)
			students.GET("/:id/profile", profileHandler.GetProfile)
			students.GET("/:id/eligible-drives", applicationHandler.ListEligibleDrives)
			students.GET("/:id/applied-drives", applicationHandler.GetAppliedDrives)
			students.GET("/:id/notifications", notificationHandler.ListNotifications)
		}

		drives := v1.Group("/drives")
		{
			drives.GET("", driveHandler.ListDrives)
			drives.GET("/:id", driveHandler.GetDrive)
			drives.POST("", middleware.RequireRole(user.RoleAdmin), driveHandler.PostDrive)
			drives.GET("/:id/applications", middleware.RequireRole(user.RoleAdmin), applicationHandler.ListApplicationsForDrive)
		}

		v1.POST("/applications", applicationHandler.Apply)

		v1.POST("/notifications", middleware.RequireRole(user.RoleAdmin), notificationHandler.PostNotification)

		reports := v1.Group("/reports", middleware.RequireRole(user.RoleAdmin))
		{
			reports.GET("/drives", reportHandler.SummarizeByDrive)
			reports.GET("/drives/:id/applicants", reportHandler.ExportApplicants)
			reports.GET("/participation", reportHandler.ParticipationStats)
		}
	}

	return &Components{
		Router:       r,
		QueueService: queueService,
		CacheService: cacheService,
		Poller:       poller,
	}
}
