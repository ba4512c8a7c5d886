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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	confirmCancellationHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/confirm_cancellation"
	createReservationHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/get_available_slots"
	getCancellationHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/get_cancellation"
	getMonthScheduleHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/get_month_schedule"
	getReservationHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/list_reservations"
	updateBusinessHoursHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/update_business_hours"
	"github.com/m04kA/SMC-ReservationEngine/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationEngine/internal/config"
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/infra/cache/availability"
	businessHoursRepo "github.com/m04kA/SMC-ReservationEngine/internal/infra/storage/businesshours"
	reservationRepo "github.com/m04kA/SMC-ReservationEngine/internal/infra/storage/reservation"
	catalogClient "github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
	notificationClient "github.com/m04kA/SMC-ReservationEngine/internal/integrations/notification"
	businessHoursService "github.com/m04kA/SMC-ReservationEngine/internal/service/businesshours"
	cancellationService "github.com/m04kA/SMC-ReservationEngine/internal/service/cancellation"
	reservationsService "github.com/m04kA/SMC-ReservationEngine/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationEngine/internal/slots"
	createReservationUC "github.com/m04kA/SMC-ReservationEngine/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationEngine/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationEngine/pkg/credential"
	"github.com/m04kA/SMC-ReservationEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationEngine/pkg/logger"
	"github.com/m04kA/SMC-ReservationEngine/pkg/metrics"
	"github.com/m04kA/SMC-ReservationEngine/pkg/txmanager"
)

// availabilityCache общий кэш доступности; nil, если Redis выключен
type availabilityCache interface {
	Get(ctx context.Context, date time.Time, serviceID int64) (*availability.Entry, bool, error)
	Generation(ctx context.Context, date time.Time) (int64, error)
	Set(ctx context.Context, date time.Time, serviceID int64, generation int64, entry *availability.Entry) error
	Invalidate(ctx context.Context, dates ...time.Time) error
}

type notifier interface {
	NotifyCreated(ctx context.Context, summary domain.ReservationSummary, cancelToken string) error
	NotifyCancelled(ctx context.Context, summary domain.ReservationSummary) error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.NewWithFormat(cfg.Logs.File, cfg.Logs.Level, cfg.Logs.Format)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationEngine...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	defaultWeek, err := cfg.DefaultWeek()
	if err != nil {
		log.Fatal("Invalid default week: %v", err)
	}
	clock := config.NewClock(loc)
	rules := slots.Rules{
		StepMinutes:     cfg.Scheduling.SlotStepMinutes,
		LeadTimeMinutes: cfg.Scheduling.LeadTimeMinutes,
	}
	log.Info("Scheduling: timezone=%s, step=%dm, lead_time=%dm",
		loc, rules.StepMinutes, rules.LeadTimeMinutes)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
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

	// Без recorder обёртка прозрачна, транзакции всё равно идут через неё
	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш доступности (опционально)
	var cache availabilityCache
	if cfg.Redis.Enabled {
		redisClient := availability.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := availability.Ping(pingCtx, redisClient)
		cancelPing()

		if err != nil {
			// Кэш не обязателен: без Redis доступность считается из базы на каждый запрос
			log.Warn("Redis unavailable, availability cache disabled: %v", err)
		} else {
			cache = availability.NewCache(redisClient, time.Duration(cfg.Redis.AvailabilityTTL)*time.Second)
			log.Info("Availability cache enabled (address=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.AvailabilityTTL)
		}
	}

	// Инициализируем интеграционных клиентов
	catalog := catalogClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)

	var notify notifier = notificationClient.Noop{}
	if cfg.NotificationService.Enabled {
		notify = notificationClient.NewClient(
			cfg.NotificationService.URL,
			time.Duration(cfg.NotificationService.Timeout)*time.Second,
			log,
		)
	}
	log.Info("Integration clients initialized (Catalog=%s, Notifications enabled=%t)",
		cfg.CatalogService.URL, cfg.NotificationService.Enabled)

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	businessHoursRepository := businessHoursRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	hoursSvc := businessHoursService.NewService(
		businessHoursRepository,
		defaultWeek,
		loc,
		cache,
		log,
	)
	cancellationSvc := cancellationService.NewService(
		reservationRepository,
		catalog,
		notify,
		cache,
		metricsCollector,
		clock,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		catalog,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalog,
		hoursSvc,
		reservationRepository,
		cache,
		metricsCollector,
		rules,
		clock,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		catalog,
		hoursSvc,
		credential.NewGenerator(),
		notify,
		cache,
		metricsCollector,
		txMgr,
		rules,
		clock,
		log,
	)

	// Инициализируем handlers
	getMonthSchedule := getMonthScheduleHandler.NewHandler(hoursSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, loc, log)
	getCancellation := getCancellationHandler.NewHandler(cancellationSvc, log)
	confirmCancellation := confirmCancellationHandler.NewHandler(cancellationSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(hoursSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, loc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Расписание месяца для календаря
	api.HandleFunc("/schedule", getMonthSchedule.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату для услуги
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// CANCELLATION ROUTES (по credential, с ограничением частоты)
	// ============================================================

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	cancellations := api.PathPrefix("/cancellations").Subrouter()
	cancellations.Use(limiter.Middleware)

	cancellations.HandleFunc("/{token}", getCancellation.Handle).Methods(http.MethodGet)
	cancellations.HandleFunc("/{token}", confirmCancellation.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Key header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.APIKey, log))

	admin.HandleFunc("/business-hours", updateBusinessHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)

	if cfg.Admin.APIKey == "" {
		log.Warn("admin.api_key is empty, admin routes will reject every request")
	}

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

	log.Info("Server stopped gracefully")
}
