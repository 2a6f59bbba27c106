package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillbridge/config"
	"skillbridge/cron"
	"skillbridge/database"
	"skillbridge/database/repository"
	"skillbridge/handlers"
	"skillbridge/middleware"
	"skillbridge/routes"
	"skillbridge/services/admin"
	"skillbridge/services/availability"
	"skillbridge/services/booking"
	"skillbridge/services/cache"
	"skillbridge/services/notification"
	"skillbridge/services/review"
	"skillbridge/services/storage"
	"skillbridge/services/tasks"
	"skillbridge/services/tutor"
	"skillbridge/services/user"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		panic(err)
	}
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if err := utils.RegisterValidators(); err != nil {
		logger.Fatal("main: failed to register validators", zap.Error(err))
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := database.InitDB(rootCtx); err != nil {
		logger.Fatal("main: database init failed", zap.Error(err))
	}
	if err := utils.InitCache(); err != nil {
		logger.Fatal("main: redis init failed", zap.Error(err))
	}

	// repositories.
	db := database.DB()
	userRepo := repository.NewMongoUserRepository(rootCtx, db)
	tutorRepo := repository.NewMongoTutorRepo(rootCtx, db)
	slotRepo := repository.NewMongoAvailabilityRepo(rootCtx, db)
	bookingRepo := repository.NewMongoBookingRepo(rootCtx, db)
	reviewRepo := repository.NewMongoReviewRepo(rootCtx, db)
	categoryRepo := repository.NewMongoCategoryRepo(rootCtx, db)

	// caches.
	tutorCache := cache.NewRedisTutorCache(utils.GetCacheClient(), config.AppConfig.TutorCacheTTL)
	statusCache := cache.NewRedisStatusCache(utils.GetAuthCacheClient())

	var avatarStore storage.StorageService
	if config.AppConfig.CloudinaryURL != "" {
		store, err := storage.NewCloudinaryStorage(config.AppConfig.CloudinaryURL)
		if err != nil {
			logger.Fatal("main: failed to initialize cloudinary storage service", zap.Error(err))
		}
		avatarStore = store
	} else {
		logger.Warn("main: CLOUDINARY_URL not set, avatar upload disabled")
	}

	queueClient := asynq.NewClient(cron.RedisOpt())
	defer queueClient.Close()

	// services.
	tokens := utils.NewJWTManager(config.AppConfig.JWTSecret, config.AppConfig.JWTTTL)
	userService := user.NewUserService(userRepo, tutorRepo, tokens, statusCache)
	tutorService := tutor.NewTutorService(tutorRepo, userRepo, slotRepo, categoryRepo, tutorCache, avatarStore)
	availabilityService := availability.NewAvailabilityService(slotRepo, tutorCache)
	reminderScheduler := tasks.NewReminderScheduler(queueClient, config.AppConfig.ReminderLeadTime)
	bookingService := booking.NewBookingService(bookingRepo, tutorRepo, slotRepo, reminderScheduler)
	reviewService := review.NewReviewService(reviewRepo, bookingRepo, tutorRepo, tutorCache)
	adminService := admin.NewAdminService(userRepo, tutorRepo, categoryRepo, statusCache, tutorCache)

	if email := config.AppConfig.DefaultAdminEmail; email != "" {
		if err := userService.EnsureAdmin(rootCtx, "Administrator", email, config.AppConfig.DefaultAdminPassword); err != nil {
			logger.Error("main: failed to seed admin account", zap.Error(err))
		}
	}

	reminderWorker := cron.NewReminderWorker(tasks.NewReminderHandler(bookingRepo, notification.NewLogNotificationService()))
	reminderWorker.Start()

	utils.StartHealthMonitor(rootCtx, 30*time.Second,
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	handlerBundle := &handlers.HandlerBundle{
		Auth:         handlers.NewAuthHandler(userService),
		Users:        handlers.NewUserHandler(userService),
		Tutors:       handlers.NewTutorHandler(tutorService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Bookings:     handlers.NewBookingHandler(bookingService),
		Reviews:      handlers.NewReviewHandler(reviewService),
		Categories:   handlers.NewCategoryHandler(adminService),
		Admin:        handlers.NewAdminHandler(adminService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, middleware.JWTAuthMiddleware(tokens, userService))

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	reminderWorker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Error("main: mongo disconnect failed", zap.Error(err))
	}
	utils.CloseCache()

	logger.Info("main: server stopped gracefully")
}
