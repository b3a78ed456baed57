package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	calculatePenaltyHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/calculate_penalty"
	cancelReservationHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_reservation"
	getResourceHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_resource"
	getUserReservationsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_user_reservations"
	replaceScheduleHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/replace_schedule"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/config"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/infra/ratelimit"
	planRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/plan"
	reservationRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/reservation"
	resourceRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/resource"
	"github.com/m04kA/SMC-StudioBooking/internal/migrations"
	"github.com/m04kA/SMC-StudioBooking/internal/service/availability"
	reservationsService "github.com/m04kA/SMC-StudioBooking/internal/service/reservations"
	resourcesService "github.com/m04kA/SMC-StudioBooking/internal/service/resources"
	calculatePenaltyUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/calculate_penalty"
	checkAvailabilityUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StudioBooking...")

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Booking timezone: %s", loc)

	// Инициализируем метрики (если включены). nil - метрики выключены
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		if err := migrations.Run(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		if version, dirty, err := migrations.Version(db); err == nil {
			log.Info("Database schema at version %d (dirty=%t)", version, dirty)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Менеджер транзакций
	isolation, err := txmanager.ParseIsolation(cfg.Database.Isolation)
	if err != nil {
		log.Fatal("Invalid database isolation: %v", err)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithIsolation(isolation),
		txmanager.WithLockTimeout(cfg.Database.LockTimeout()),
	)
	log.Info("Transaction manager initialized (isolation=%s, lock_timeout=%s)",
		txMgr.Isolation(), cfg.Database.LockTimeout())

	// Инициализируем репозитории
	resourceRepository := resourceRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	planRepository := planRepo.NewRepository(wrappedDB)

	// Ограничитель частоты бронирований
	var (
		limiter     createReservationUC.RateLimiter = ratelimit.NoopLimiter{}
		redisClient *redis.Client
	)
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Лимитер работает в режиме fail-open, сервис стартует без Redis
			log.Warn("Redis is unreachable at %s: %v", cfg.RateLimit.RedisAddr, err)
		}
		cancelPing()

		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.MaxPerUser, cfg.RateLimit.Window(), log)
		log.Info("Reservation rate limit: %d per %s per user", cfg.RateLimit.MaxPerUser, cfg.RateLimit.Window())
	}

	// Инициализируем сервисы
	resolver := availability.NewResolver(resourceRepository, reservationRepository, loc, metricsCollector, log)
	reservationSvc := reservationsService.NewService(reservationRepository, txMgr, log)
	resourceSvc := resourcesService.NewService(resourceRepository, txMgr, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		resolver,
		resourceRepository,
		reservationRepository,
		txMgr,
		limiter,
		metricsCollector,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(resolver, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(resolver, cfg.Booking.DefaultSlotMinutes, log)
	calculatePenaltyUseCase := calculatePenaltyUC.NewUseCase(
		planRepository,
		domain.PenaltyPolicy{
			GracePeriodDays: cfg.Penalty.GracePeriodDays,
			BaseRate:        cfg.Penalty.BaseRate,
			DailyRate:       cfg.Penalty.DailyRate,
			MaxRate:         cfg.Penalty.MaxRate,
		},
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getResource := getResourceHandler.NewHandler(resourceSvc, log)
	replaceSchedule := replaceScheduleHandler.NewHandler(resourceSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	calculatePenalty := calculatePenaltyHandler.NewHandler(calculatePenaltyUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.HTTPRateLimit.Enabled {
		r.Use(middleware.Throttle(cfg.HTTPRateLimit.RPS, cfg.HTTPRateLimit.Burst, log))
		log.Info("HTTP throttling enabled (rps=%.1f, burst=%d)", cfg.HTTPRateLimit.RPS, cfg.HTTPRateLimit.Burst)
	}

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/resources/{resourceId}", getResource.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание (администратор) ---
	protected.HandleFunc("/resources/{resourceId}/schedule", replaceSchedule.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Штрафы ---
	protected.HandleFunc("/penalties/calculate", calculatePenalty.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
