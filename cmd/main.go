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

	changeSpecialistHandler "github.com/m04kA/SMC-SlotPicker/internal/api/handlers/change_specialist"
	checkDateEligibilityHandler "github.com/m04kA/SMC-SlotPicker/internal/api/handlers/check_date_eligibility"
	closeSessionHandler "github.com/m04kA/SMC-SlotPicker/internal/api/handlers/close_session"
	createSessionHandler "github.com/m04kA/SMC-SlotPicker/internal/api/handlers/create_session"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SlotPicker/internal/api/handlers/get_available_slots"
	getSessionHandler "github.com/m04kA/SMC-SlotPicker/internal/api/handlers/get_session"
	refreshAvailabilityHandler "github.com/m04kA/SMC-SlotPicker/internal/api/handlers/refresh_availability"
	selectDateHandler "github.com/m04kA/SMC-SlotPicker/internal/api/handlers/select_date"
	selectTimeHandler "github.com/m04kA/SMC-SlotPicker/internal/api/handlers/select_time"
	"github.com/m04kA/SMC-SlotPicker/internal/api/middleware"
	"github.com/m04kA/SMC-SlotPicker/internal/config"
	availabilityRepo "github.com/m04kA/SMC-SlotPicker/internal/infra/storage/availability"
	availabilityServiceClient "github.com/m04kA/SMC-SlotPicker/internal/integrations/availabilityservice"
	availabilityService "github.com/m04kA/SMC-SlotPicker/internal/service/availability"
	sessionService "github.com/m04kA/SMC-SlotPicker/internal/service/session"
	"github.com/m04kA/SMC-SlotPicker/pkg/logger"
	"github.com/m04kA/SMC-SlotPicker/pkg/metrics"
)

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
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SlotPicker...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены).
	// В интерфейсы передается nil без типа, а не nil *metrics.Metrics
	var (
		metricsCollector *metrics.Metrics
		loaderMetrics    availabilityService.MetricsCollector
		sessionMetrics   sessionService.MetricsCollector
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		loaderMetrics = metricsCollector
		sessionMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Источник доступности
	var source availabilityService.AvailabilitySource
	switch cfg.Availability.Source {
	case config.SourcePostgres:
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

		source = availabilityRepo.NewRepository(db)

	default:
		source = availabilityServiceClient.NewClient(
			cfg.AvailabilityService.URL,
			time.Duration(cfg.AvailabilityService.Timeout)*time.Second,
			cfg.AvailabilityService.RateLimit,
			cfg.AvailabilityService.Burst,
			log,
		)
		log.Info("Availability client initialized (url=%s, timeout=%ds, rate_limit=%.1f rps)",
			cfg.AvailabilityService.URL, cfg.AvailabilityService.Timeout, cfg.AvailabilityService.RateLimit)
	}

	// Инициализируем сервисы
	loader := availabilityService.NewLoader(source, cfg.Availability.Source, loaderMetrics, log)

	sessionManager := sessionService.NewManager(
		loader,
		sessionService.Config{
			FetchTimeout: time.Duration(cfg.Availability.FetchTimeout) * time.Second,
			IdleTTL:      time.Duration(cfg.Sessions.IdleTTL) * time.Second,
			MaxSessions:  cfg.Sessions.MaxSessions,
		},
		sessionMetrics,
		log,
	)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go sessionManager.Run(janitorCtx, time.Duration(cfg.Sessions.CleanupInterval)*time.Second)
	log.Info("Session manager started (idle_ttl=%ds, max_sessions=%d)", cfg.Sessions.IdleTTL, cfg.Sessions.MaxSessions)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(sessionManager, log)
	getSession := getSessionHandler.NewHandler(sessionManager, log)
	closeSession := closeSessionHandler.NewHandler(sessionManager, log)
	changeSpecialist := changeSpecialistHandler.NewHandler(sessionManager, log)
	refreshAvailability := refreshAvailabilityHandler.NewHandler(sessionManager, log)
	selectDate := selectDateHandler.NewHandler(sessionManager, log)
	selectTime := selectTimeHandler.NewHandler(sessionManager, log)
	checkDateEligibility := checkDateEligibilityHandler.NewHandler(sessionManager, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(loader, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность специалиста ---
	api.HandleFunc("/specialists/{specialistId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Сессии выбора слота ---
	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/specialist", changeSpecialist.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/refresh", refreshAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/date", selectDate.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/time", selectTime.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/dates/{date}/eligibility", checkDateEligibility.Handle).Methods(http.MethodGet)

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

	log.Info("Shutting down server (%d open sessions)...", sessionManager.Len())

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем очистку и закрываем сессии после того, как новые запросы перестали приходить
	stopJanitor()
	sessionManager.Shutdown()

	log.Info("Server stopped gracefully")
}
