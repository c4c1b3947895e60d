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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_booking"
	getBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking"
	getDashboardHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_dashboard"
	getQuoteHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_quote"
	getUserBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_bookings"
	getUserComplaintsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_complaints"
	manageDraftHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/manage_draft"
	modifyBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/modify_booking"
	rateBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/rate_booking"
	reconciliationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/reconciliation"
	submitComplaintHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/submit_complaint"
	submitReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/submit_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/infra/inflight"
	reconciliationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reconciliation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/complaintservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/razorpaygateway"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/remote"
	bookingsService "github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	"github.com/m04kA/SMC-ReservationService/internal/service/drafts"
	cancelBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_booking"
	getQuoteUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_quote"
	manageDraftUC "github.com/m04kA/SMC-ReservationService/internal/usecase/manage_draft"
	modifyBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/modify_booking"
	rateBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/rate_booking"
	reconcileUC "github.com/m04kA/SMC-ReservationService/internal/usecase/reconcile"
	submitComplaintUC "github.com/m04kA/SMC-ReservationService/internal/usecase/submit_complaint"
	submitReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/submit_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/clock"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

// eventPublisher издатель событий, который нужно закрыть при остановке
type eventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
	Close() error
}

// bookingGuard блокировка изменений одного бронирования
type bookingGuard interface {
	Acquire(ctx context.Context, key string) (inflight.ReleaseFunc, error)
}

// paymentProvider списание и возврат оплаты
type paymentProvider interface {
	Charge(ctx context.Context, req paymentservice.ChargeRequest, idempotencyKey string) (*paymentservice.ChargeResult, error)
	Refund(ctx context.Context, req paymentservice.RefundRequest, idempotencyKey string) (*paymentservice.RefundResult, error)
}

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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Коллектор нужен usecases всегда, эндпоинт публикуется только при включенных метриках
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	timeProvider := clock.Real{}

	// Подключаемся к базе данных журнала сверки
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var ledger *reconciliationRepo.Repository
	if cfg.Metrics.Enabled {
		ledger = reconciliationRepo.NewRepository(dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh))
		log.Info("Database metrics collection started")
	} else {
		ledger = reconciliationRepo.NewRepository(db)
	}

	// Инициализируем интеграционных клиентов
	catalogClient := catalogservice.NewClient(remote.NewClient(
		"catalog", cfg.CatalogService.URL, cfg.CatalogService.TimeoutDuration(), metricsCollector))
	bookingClient := bookingservice.NewClient(remote.NewClient(
		"booking", cfg.BookingService.URL, cfg.BookingService.TimeoutDuration(), metricsCollector))
	complaintClient := complaintservice.NewClient(remote.NewClient(
		"complaint", cfg.ComplaintService.URL, cfg.ComplaintService.TimeoutDuration(), metricsCollector))

	var payments paymentProvider
	switch cfg.Engine.PaymentProvider {
	case config.PaymentProviderRazorpay:
		payments = razorpaygateway.NewGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.Currency, log)
		log.Info("Payment provider: razorpay (currency=%s)", cfg.Razorpay.Currency)
	default:
		payments = paymentservice.NewClient(remote.NewClient(
			"payment", cfg.PaymentService.URL, cfg.PaymentService.TimeoutDuration(), metricsCollector))
		log.Info("Payment provider: payment service (%s)", cfg.PaymentService.URL)
	}

	log.Info("Integration clients initialized (catalog=%s, booking=%s, complaint=%s)",
		cfg.CatalogService.URL, cfg.BookingService.URL, cfg.ComplaintService.URL)

	// Блокировки изменений бронирований
	var (
		guard       bookingGuard
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		guard = inflight.NewRedisGuard(redisClient, cfg.Redis.KeyPrefix, time.Duration(cfg.Redis.LockTTL)*time.Second, log)
		log.Info("In-flight guard: redis (%s)", cfg.Redis.Addr)
	} else {
		guard = inflight.NewMemoryGuard()
		log.Info("In-flight guard: in-memory")
	}

	// События жизненного цикла
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(events.WriterConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			MaxAttempts:  cfg.Kafka.MaxAttempts,
			BatchTimeout: time.Duration(cfg.Kafka.BatchTimeout) * time.Millisecond,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize kafka publisher: %v", err)
		}
		publisher = kafkaPublisher
		log.Info("Lifecycle events published to kafka topic %s", cfg.Kafka.Topic)
	}

	// Реестр черновиков и фоновая очистка просроченных
	draftRegistry := drafts.NewRegistry(cfg.Engine.DraftTTLDuration(), log)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go draftRegistry.Run(sweepCtx, cfg.Engine.SweepIntervalDuration())

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingClient,
		complaintClient,
		metricsCollector,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	manageDraftUseCase := manageDraftUC.NewUseCase(
		catalogClient,
		draftRegistry,
		metricsCollector,
		timeProvider,
		log,
	)
	submitReservationUseCase := submitReservationUC.NewUseCase(
		payments,
		bookingClient,
		draftRegistry,
		ledger,
		bookingSvc,
		publisher,
		metricsCollector,
		submitReservationUC.Compensation(cfg.Engine.Compensation),
		timeProvider,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingClient,
		guard,
		bookingSvc,
		publisher,
		timeProvider,
		log,
	)
	modifyBookingUseCase := modifyBookingUC.NewUseCase(
		bookingClient,
		guard,
		bookingSvc,
		publisher,
		timeProvider,
		log,
	)
	rateBookingUseCase := rateBookingUC.NewUseCase(bookingClient, publisher, timeProvider, log)
	submitComplaintUseCase := submitComplaintUC.NewUseCase(complaintClient, bookingClient, log)
	getQuoteUseCase := getQuoteUC.NewUseCase(catalogClient, timeProvider, log)
	reconcileUseCase := reconcileUC.NewUseCase(ledger, timeProvider, log)

	// Инициализируем handlers
	manageDraft := manageDraftHandler.NewHandler(manageDraftUseCase, log)
	submitReservation := submitReservationHandler.NewHandler(submitReservationUseCase, log)
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getDashboard := getDashboardHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	modifyBooking := modifyBookingHandler.NewHandler(modifyBookingUseCase, log)
	rateBooking := rateBookingHandler.NewHandler(rateBookingUseCase, log)
	getUserComplaints := getUserComplaintsHandler.NewHandler(bookingSvc, log)
	submitComplaint := submitComplaintHandler.NewHandler(submitComplaintUseCase, log)
	reconciliation := reconciliationHandler.NewHandler(reconcileUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет стоимости проживания
	api.HandleFunc("/properties/{propertyId}/quote", getQuote.Handle).Methods(http.MethodGet)

	// ============================================================
	// OPERATOR ROUTES (требуют X-Operator-Token header)
	// ============================================================

	if cfg.Operator.Token != "" {
		operator := api.PathPrefix("/reconciliation").Subrouter()
		operator.Use(middleware.OperatorAuth(cfg.Operator.Token))
		operator.HandleFunc("/partial-commits", reconciliation.List).Methods(http.MethodGet)
		operator.HandleFunc("/partial-commits/{recordId}/resolve", reconciliation.Resolve).Methods(http.MethodPatch)
	} else {
		log.Warn("operator.token is empty, reconciliation routes are disabled")
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Оформление бронирования ---
	protected.HandleFunc("/drafts", manageDraft.Start).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{draftId}", manageDraft.Get).Methods(http.MethodGet)
	protected.HandleFunc("/drafts/{draftId}", manageDraft.Abort).Methods(http.MethodDelete)
	protected.HandleFunc("/drafts/{draftId}/dates", manageDraft.SetDates).Methods(http.MethodPut)
	protected.HandleFunc("/drafts/{draftId}/addons", manageDraft.SetAddons).Methods(http.MethodPut)
	protected.HandleFunc("/drafts/{draftId}/back", manageDraft.Back).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{draftId}/submit", submitReservation.Handle).Methods(http.MethodPost)

	// --- Бронирования пользователя ---
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", modifyBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/rating", rateBooking.Handle).Methods(http.MethodPost)

	// --- Жалобы ---
	protected.HandleFunc("/users/{userId}/complaints", getUserComplaints.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/complaints", submitComplaint.Handle).Methods(http.MethodPost)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopSweep()
	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
