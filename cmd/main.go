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

	amendBookingHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/amend_booking"
	cancelBookingHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/cancel_booking"
	cancelCourtBookingsHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/cancel_court_bookings"
	cancelVenueBookingsHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/cancel_venue_bookings"
	createBookingHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/get_booking"
	getCourtBookingsHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/get_court_bookings"
	getCourtConfigHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/get_court_config"
	getUserBookingsHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/get_venue_bookings"
	updateBookingStatusHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/update_booking_status"
	updateCourtConfigHandler "github.com/m04kA/SportZone-BookingService/internal/api/handlers/update_court_config"
	"github.com/m04kA/SportZone-BookingService/internal/api/middleware"
	"github.com/m04kA/SportZone-BookingService/internal/cascade"
	"github.com/m04kA/SportZone-BookingService/internal/config"
	bookingRepo "github.com/m04kA/SportZone-BookingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SportZone-BookingService/internal/infra/storage/config"
	venueServiceClient "github.com/m04kA/SportZone-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/SportZone-BookingService/internal/service/admission"
	bookingsService "github.com/m04kA/SportZone-BookingService/internal/service/bookings"
	configService "github.com/m04kA/SportZone-BookingService/internal/service/config"
	"github.com/m04kA/SportZone-BookingService/internal/sweeper"
	amendBookingUC "github.com/m04kA/SportZone-BookingService/internal/usecase/amend_booking"
	createBookingUC "github.com/m04kA/SportZone-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SportZone-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SportZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SportZone-BookingService/pkg/keyedmutex"
	"github.com/m04kA/SportZone-BookingService/pkg/logger"
	"github.com/m04kA/SportZone-BookingService/pkg/metrics"
	"github.com/m04kA/SportZone-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/SportZone-BookingService/pkg/txmanager"
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

	log.Info("Starting SportZone-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиента venue-сервиса
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (VenueService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		configRepository  *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Блокировка корта: сериализует запись бронирований по конкретному корту,
	// ожидание ограничено lock_wait_millis
	courtLocks := keyedmutex.New(time.Duration(cfg.Booking.LockWaitMillis) * time.Millisecond)

	// Проверка занятости слота, общая для create и amend
	admissionChecker := admission.NewChecker(bookingRepository)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	configSvc := configService.NewService(configRepository, venueClient, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		admissionChecker,
		courtLocks,
		txMgr,
		log,
	)
	amendBookingUseCase := amendBookingUC.NewUseCase(
		bookingRepository,
		admissionChecker,
		courtLocks,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		configSvc,
		log,
	)

	// Каскадная отмена при удалении корта/площадки
	cascadeHandler := cascade.NewHandler(
		bookingSvc,
		cfg.Cascade.RetryAttempts,
		time.Duration(cfg.Cascade.RetryDelayMillis)*time.Millisecond,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	amendBooking := amendBookingHandler.NewHandler(amendBookingUseCase, bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	getCourtBookings := getCourtBookingsHandler.NewHandler(bookingSvc, log)
	cancelVenueBookings := cancelVenueBookingsHandler.NewHandler(cascadeHandler, log)
	cancelCourtBookings := cancelCourtBookingsHandler.NewHandler(cascadeHandler, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCourtConfig := getCourtConfigHandler.NewHandler(configSvc, log)
	updateCourtConfig := updateCourtConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты корта на день
	api.HandleFunc("/courts/{courtId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Окно работы и цена корта
	api.HandleFunc("/courts/{courtId}/config", getCourtConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// SERVICE ROUTES (межсервисные, без пользовательской аутентификации)
	// ============================================================

	// Расписание корта и площадки
	api.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}/bookings", getCourtBookings.Handle).Methods(http.MethodGet)

	// Статус оплаты от платежного сервиса
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Каскадная отмена при удалении корта/площадки в venue-сервисе
	api.HandleFunc("/venues/{venueId}/bookings/cancel", cancelVenueBookings.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/courts/{courtId}/bookings/cancel", cancelCourtBookings.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение бронирования (перенос слота, сумма, статус)
	protected.HandleFunc("/bookings/{bookingId}", amendBooking.Handle).Methods(http.MethodPut)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Обновление окна работы и цены корта (для менеджеров)
	protected.HandleFunc("/courts/{courtId}/config", updateCourtConfig.Handle).Methods(http.MethodPut)

	// Фоновый перевод завершившихся бронирований в completed
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	bookingSweeper := sweeper.New(
		bookingSvc,
		time.Duration(cfg.Sweeper.IntervalSeconds)*time.Second,
		cfg.Sweeper.RetryAttempts,
		time.Duration(cfg.Sweeper.RetryDelayMillis)*time.Millisecond,
		log,
	)
	go bookingSweeper.Start(sweeperCtx)
	log.Info("Booking sweeper started (interval=%ds)", cfg.Sweeper.IntervalSeconds)

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

	// Останавливаем sweeper
	stopSweeper()
	log.Info("Booking sweeper stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
