package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/config"
	"marketplace/cron"
	"marketplace/database"
	"marketplace/database/repository"
	"marketplace/handlers"
	"marketplace/middleware"
	"marketplace/routes"
	"marketplace/services/availability"
	"marketplace/services/calendar"
	"marketplace/services/executor"
	"marketplace/services/order"
	"marketplace/services/schedule"
	"marketplace/services/tasks"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.GetLogger().Fatal("main: invalid configuration", zap.Error(err))
	}
	utils.InitializeLogger(cfg.Env, cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync()

	loc, _ := cfg.Location()
	ctx := context.Background()

	// Storage: one pool or client for the whole process.
	var (
		repos   repository.Set
		dbCheck utils.HealthCheck
		closeDB func()
	)
	switch cfg.DatabaseDriver {
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("main: mongo unavailable", zap.Error(err))
		}
		db := client.Database(cfg.MongoDatabase)
		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			logger.Fatal("main: failed to create indexes", zap.Error(err))
		}
		repos = repository.NewMongoSet(db)
		dbCheck = func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
		closeDB = func() { _ = client.Disconnect(context.Background()) }
	default:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL, cfg.DBMaxConns, logger)
		if err != nil {
			logger.Fatal("main: postgres unavailable", zap.Error(err))
		}
		if err := database.Migrate(ctx, pool, logger); err != nil {
			logger.Fatal("main: migrations failed", zap.Error(err))
		}
		repos = repository.NewPostgresSet(pool)
		dbCheck = pool.Ping
		closeDB = pool.Close
	}
	defer closeDB()

	// The cache is optional; without Redis reads go straight to the store.
	checks := map[string]utils.HealthCheck{"database": dbCheck}
	var weekCache schedule.WeekCache
	cacheClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
	if err != nil {
		logger.Warn("main: redis cache disabled", zap.Error(err))
	} else {
		defer cacheClient.Close()
		weekCache = schedule.NewRedisWeekCache(cacheClient, cfg.CacheTTL)
		checks["redis"] = func(ctx context.Context) error { return cacheClient.Ping(ctx).Err() }
	}

	queueOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	asynqClient := asynq.NewClient(queueOpt)
	defer asynqClient.Close()
	queueRedis := redis.NewClient(&redis.Options{Addr: queueOpt.Addr, Password: queueOpt.Password, DB: queueOpt.DB})
	defer queueRedis.Close()
	queuePing := func(ctx context.Context) error { return queueRedis.Ping(ctx).Err() }
	checks["queue"] = queuePing

	worker := cron.NewReminderWorker(queueOpt, repos.Orders, logger)
	go func() {
		if err := worker.Start(ctx, queuePing); err != nil {
			logger.Error("main: reminder worker unavailable", zap.Error(err))
		}
	}()
	defer worker.Shutdown()

	// Services.
	scheduleService := schedule.NewDefaultScheduleService(repos.WorkingHours, repos.Executors, weekCache, logger)
	availabilityService := &availability.DefaultAvailabilityService{
		Hours:    scheduleService,
		Events:   repos.Events,
		Orders:   repos.Orders,
		Location: loc,
		Logger:   logger,
	}
	executorService := &executor.DefaultExecutorService{Repo: repos.Executors, Logger: logger}
	calendarService := &calendar.DefaultCalendarService{Repo: repos.Events, Executors: repos.Executors, Logger: logger}
	orderService := &order.DefaultOrderService{
		Repo:         repos.Orders,
		Executors:    repos.Executors,
		Availability: availabilityService,
		Reminders: &tasks.AsynqReminderScheduler{
			Client: asynqClient,
			Lead:   cfg.ReminderLead,
			Logger: logger,
		},
		Locker:   repos.Locks,
		Location: loc,
		Logger:   logger,
	}

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	monitor := utils.NewHealthMonitor(60*time.Second, checks)
	monitor.Start(monitorCtx)

	handlerBundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Executor:     handlers.NewExecutorHandler(executorService),
		Schedule:     handlers.NewScheduleHandler(scheduleService),
		Calendar:     handlers.NewCalendarHandler(calendarService),
		Order:        handlers.NewOrderHandler(orderService),
		Health:       monitor,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, cfg.Origins())

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}

