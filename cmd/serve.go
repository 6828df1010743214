package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	addSessionConsumptionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/add_session_consumption"
	addSessionExtraHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/add_session_extra"
	addSessionTimeHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/add_session_time"
	changeShiftStateHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/change_shift_state"
	editFinishedSessionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/edit_finished_session"
	endShiftHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/end_shift"
	finalizeSessionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/finalize_session"
	getRoomOccupancyHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_room_occupancy"
	getSessionAggregatesHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_session_aggregates"
	getShiftStatsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_shift_stats"
	getStaffSessionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_staff_session"
	listSessionsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_sessions"
	listShiftsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_shifts"
	startSessionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/start_session"
	startShiftHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/start_shift"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/config"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	roomRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/room"
	sessionRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/session"
	"github.com/m04kA/SMC-StudioService/internal/integrations/notifier"
	sessionsService "github.com/m04kA/SMC-StudioService/internal/service/sessions"
	shiftsService "github.com/m04kA/SMC-StudioService/internal/service/shifts"
	finalizeSessionUC "github.com/m04kA/SMC-StudioService/internal/usecase/finalize_session"
	startSessionUC "github.com/m04kA/SMC-StudioService/internal/usecase/start_session"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
	"github.com/m04kA/SMC-StudioService/pkg/metrics"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the timer tick drivers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*configPath)
		},
	}
}

func serve(configPath string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-StudioService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Контекст тикеров: отменяется при остановке сервиса
	runCtx, stopRun := context.WithCancel(context.Background())
	defer stopRun()

	// Загружаем историю и каталог комнат (если хранилище включено)
	var (
		history    []*domain.ServiceSession
		knownRooms = cfg.Studio.Rooms
	)
	if cfg.Database.Enabled {
		db, err := openDB(runCtx, cfg.Database)
		if err != nil {
			log.Warn("History store unavailable, starting with empty history: %v", err)
		} else {
			defer db.Close()
			log.Info("Connected to %s database", cfg.Database.Driver)

			var executor dbmetrics.DBExecutor = db
			if cfg.Metrics.Enabled {
				executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.Driver, stopMetricsCh)
				log.Info("Database metrics collection started")
			}
			history, knownRooms = loadFromStorage(runCtx, executor, cfg, log)
		}
	} else {
		log.Info("Database disabled, starting with empty history")
	}

	// Инициализируем интеграционного клиента
	var warningsCounter notifier.Counter
	if cfg.Metrics.Enabled {
		warningsCounter = metricsCollector.SessionWarningsTotal
	}
	notifierClient := notifier.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		warningsCounter,
		log,
	)
	log.Info("Notifier initialized (url=%q timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем реестры
	sessionSvc := sessionsService.NewService(
		notifierClient,
		time.Duration(cfg.Clock.TickIntervalMs)*time.Millisecond,
		log,
	)
	if cfg.Clock.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Clock.Timezone)
		if err != nil {
			return fmt.Errorf("failed to load timezone %q: %w", cfg.Clock.Timezone, err)
		}
		sessionSvc.WithLocation(loc)
		log.Info("Studio timezone set to %s", loc)
	}
	sessionSvc.Seed(history)
	log.Info("Sessions registry seeded with %d finished sessions", len(sessionSvc.Finished()))

	shiftSvc := shiftsService.NewService(log)

	go sessionSvc.Run(runCtx)
	go shiftSvc.Run(runCtx)

	// Доменные gauge-метрики
	if cfg.Metrics.Enabled {
		metricsCollector.RegisterGauge("studio_active_sessions", "Sessions currently running",
			func() float64 { return float64(sessionSvc.ActiveCount()) })
		metricsCollector.RegisterGauge("studio_occupied_rooms", "Rooms held by an active session",
			func() float64 { return float64(sessionSvc.OccupiedCount()) })
		metricsCollector.RegisterGauge("studio_open_shifts", "Staff shifts currently open",
			func() float64 { return float64(shiftSvc.OpenCount()) })
	}

	// Инициализируем use cases
	startSessionUseCase := startSessionUC.NewUseCase(sessionSvc, shiftSvc, log)
	finalizeSessionUseCase := finalizeSessionUC.NewUseCase(sessionSvc, shiftSvc, log)

	// Инициализируем handlers
	startSession := startSessionHandler.NewHandler(startSessionUseCase, log)
	finalizeSession := finalizeSessionHandler.NewHandler(finalizeSessionUseCase, log)
	addSessionTime := addSessionTimeHandler.NewHandler(sessionSvc, log)
	addSessionExtra := addSessionExtraHandler.NewHandler(sessionSvc, log)
	addSessionConsumption := addSessionConsumptionHandler.NewHandler(sessionSvc, log)
	editFinishedSession := editFinishedSessionHandler.NewHandler(sessionSvc, log)
	listSessions := listSessionsHandler.NewHandler(sessionSvc, log)
	getStaffSession := getStaffSessionHandler.NewHandler(sessionSvc, log)
	getRoomOccupancy := getRoomOccupancyHandler.NewHandler(sessionSvc, knownRooms, log)
	getSessionAggregates := getSessionAggregatesHandler.NewHandler(sessionSvc, log)
	startShift := startShiftHandler.NewHandler(shiftSvc, log)
	endShift := endShiftHandler.NewHandler(shiftSvc, log)
	changeShiftState := changeShiftStateHandler.NewHandler(shiftSvc, log)
	getShiftStats := getShiftStatsHandler.NewHandler(shiftSvc, log)
	listShifts := listShiftsHandler.NewHandler(shiftSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Сервисы ---
	api.HandleFunc("/sessions", startSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions", listSessions.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/aggregates", getSessionAggregates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}/finalize", finalizeSession.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}/time", addSessionTime.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/extras", addSessionExtra.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/consumptions", addSessionConsumption.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/admin-edit", editFinishedSession.Handle).Methods(http.MethodPut)

	// --- Комнаты ---
	api.HandleFunc("/rooms/occupancy", getRoomOccupancy.Handle).Methods(http.MethodGet)

	// --- Сотрудники и смены ---
	api.HandleFunc("/staff/{email}/session", getStaffSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{email}/shift/start", startShift.Handle).Methods(http.MethodPost)
	api.HandleFunc("/staff/{email}/shift/end", endShift.Handle).Methods(http.MethodPost)
	api.HandleFunc("/staff/{email}/shift/state", changeShiftState.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/staff/{email}/shift/stats", getShiftStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{email}/shifts", listShifts.Handle).Methods(http.MethodGet)

	_ = r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if tpl, err := route.GetPathTemplate(); err == nil {
			methods, _ := route.GetMethods()
			log.Debug("Route registered: %v %s", methods, tpl)
		}
		return nil
	})

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

	// Останавливаем тикеры и сбор метрик connection pool
	stopRun()
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
	return nil
}

// loadFromStorage читает завершенные сервисы и каталог комнат.
// Ошибки хранилища не фатальны: сервис стартует с пустой историей и комнатами из конфига.
func loadFromStorage(
	ctx context.Context,
	executor dbmetrics.DBExecutor,
	cfg *config.Config,
	log *logger.Logger,
) ([]*domain.ServiceSession, []int) {
	knownRooms := cfg.Studio.Rooms

	loadCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Database.LoadTimeout)*time.Second)
	defer cancel()

	history, err := sessionRepo.NewRepository(executor, cfg.Database.Driver).LoadFinished(loadCtx)
	if err != nil {
		log.Warn("Failed to load session history, starting empty: %v", err)
		history = nil
	}

	rooms, err := roomRepo.NewRepository(executor, cfg.Database.Driver).GetAll(loadCtx)
	switch {
	case err != nil:
		log.Warn("Failed to load room catalog, using studio.rooms from config: %v", err)
	case len(rooms) == 0:
		log.Warn("Room catalog is empty, using studio.rooms from config")
	default:
		knownRooms = roomRepo.Numbers(rooms)
	}
	log.Debug("Loaded %d finished sessions, known rooms: %v", len(history), knownRooms)

	return history, knownRooms
}
