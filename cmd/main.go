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

	bookAppointmentHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/complete_appointment"
	getAppointmentHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/get_client_appointments"
	getScheduleHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/get_schedule"
	getShopAppointmentsHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/get_shop_appointments"
	hideAppointmentHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/hide_appointment"
	markNoShowHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/mark_no_show"
	updateScheduleHandler "github.com/BarberLinkDO/BookingService/internal/api/handlers/update_schedule"
	"github.com/BarberLinkDO/BookingService/internal/api/middleware"
	"github.com/BarberLinkDO/BookingService/internal/config"
	appointmentRepo "github.com/BarberLinkDO/BookingService/internal/infra/storage/appointment"
	scheduleRepo "github.com/BarberLinkDO/BookingService/internal/infra/storage/schedule"
	servicecatalogRepo "github.com/BarberLinkDO/BookingService/internal/infra/storage/servicecatalog"
	directoryClient "github.com/BarberLinkDO/BookingService/internal/integrations/directory"
	notifyClient "github.com/BarberLinkDO/BookingService/internal/integrations/notify"
	"github.com/BarberLinkDO/BookingService/internal/scheduling"
	appointmentsService "github.com/BarberLinkDO/BookingService/internal/service/appointments"
	scheduleService "github.com/BarberLinkDO/BookingService/internal/service/schedule"
	bookAppointmentUC "github.com/BarberLinkDO/BookingService/internal/usecase/book_appointment"
	changeAvailabilityUC "github.com/BarberLinkDO/BookingService/internal/usecase/change_availability"
	getAvailableSlotsUC "github.com/BarberLinkDO/BookingService/internal/usecase/get_available_slots"
	"github.com/BarberLinkDO/BookingService/pkg/dbmetrics"
	"github.com/BarberLinkDO/BookingService/pkg/logger"
	"github.com/BarberLinkDO/BookingService/pkg/metrics"
	"github.com/BarberLinkDO/BookingService/pkg/simpletxmanager"
	"github.com/BarberLinkDO/BookingService/pkg/txmanager"
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

	log.Info("Starting BarberLink BookingService...")
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

	// Часы расписания: календарные сравнения в референсной зоне
	clock, err := scheduling.NewClock(cfg.Scheduling.ReferenceTimezone, cfg.Scheduling.NaiveUTCOffset)
	if err != nil {
		log.Fatal("Failed to initialize scheduling clock: %v", err)
	}
	log.Info("Scheduling clock initialized (timezone=%s, naive_offset=%s)",
		cfg.Scheduling.ReferenceTimezone, cfg.Scheduling.NaiveUTCOffset)

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	notifier := notifyClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (DirectoryService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		serviceRepository     *servicecatalogRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		serviceRepository = servicecatalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		serviceRepository = servicecatalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		directory,
		notifier,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		directory,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		serviceRepository,
		directory,
		clock,
		log,
	)
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		serviceRepository,
		directory,
		txMgr,
		clock,
		log,
	)
	changeAvailabilityUseCase := changeAvailabilityUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		directory,
		notifier,
		txMgr,
		clock,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	markNoShow := markNoShowHandler.NewHandler(appointmentsSvc, log)
	hideAppointment := hideAppointmentHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getShopAppointments := getShopAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(changeAvailabilityUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты записи к барберу
	api.HandleFunc("/shops/{shopId}/barbers/{barberId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание барбера
	api.HandleFunc("/barbers/{barberId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Завершение записи
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// Неявка клиента
	protected.HandleFunc("/appointments/{appointmentId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// Скрытие записи из истории клиента
	protected.HandleFunc("/appointments/{appointmentId}", hideAppointment.Handle).Methods(http.MethodDelete)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Барбершоп ---
	// Записи барбершопа (для владельца и барберов)
	protected.HandleFunc("/shops/{shopId}/appointments", getShopAppointments.Handle).Methods(http.MethodGet)

	// --- Расписание барбера ---
	// Изменение доступности (рабочие часы, перерывы, буфер, выходные)
	protected.HandleFunc("/barbers/{barberId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

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
