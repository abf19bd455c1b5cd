package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/clinic_booking_bot/internal/app"
	"github.com/Freeeeeet/clinic_booking_bot/internal/clinicapi"
	"github.com/Freeeeeet/clinic_booking_bot/internal/config"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_booking_bot/internal/observability/metrics"
	"github.com/Freeeeeet/clinic_booking_bot/internal/registration"
	"github.com/Freeeeeet/clinic_booking_bot/internal/repository"
	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
	"github.com/Freeeeeet/clinic_booking_bot/internal/session"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting clinic booking bot",
		zap.String("environment", cfg.Environment),
		zap.String("clinic_api", cfg.ClinicAPIURL),
		zap.Int("token_length", len(cfg.TelegramToken)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// База данных пользователей бота
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	userRepo := repository.NewUserRepository(pool)

	// Сессии: Redis, если задан адрес, иначе в памяти процесса
	var sessions session.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
		logger.Info("Using redis session store", zap.String("addr", cfg.RedisAddr))
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		logger.Warn("REDIS_ADDR is not set, sessions are kept in memory")
	}

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	botMetrics := metrics.NewBotMetrics(registry)
	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("Serving metrics", zap.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	// API клиники
	client := clinicapi.NewClient(cfg.ClinicAPIURL, logger,
		clinicapi.WithTimeout(cfg.APITimeout),
		clinicapi.WithRateLimit(cfg.APIRateLimit, int(cfg.APIRateLimit)+1),
		clinicapi.WithObserver(botMetrics),
	)
	api := func(token string) service.ClinicAPI { return client.WithToken(token) }

	// Сервисы
	stateManager := state.NewManager()
	userService := service.NewUserService(userRepo, logger)
	authService := service.NewAuthService(api, sessions, userService, botMetrics, logger)
	bookingService := service.NewBookingService(api, authService, stateManager, loc, botMetrics, logger)
	registrationService := service.NewRegistrationService(api, registration.NewValidator(nil), userService, botMetrics, logger)
	appointmentService := service.NewAppointmentService(api, authService, botMetrics, logger)
	profileService := service.NewProfileService(api, authService, botMetrics, logger)

	scheduler := app.NewScheduler(stateManager, cfg.StateIdleTimeout, cfg.StatePurgeInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, &callbacktypes.Handler{
		UserService:         userService,
		BookingService:      bookingService,
		RegistrationService: registrationService,
		AuthService:         authService,
		AppointmentService:  appointmentService,
		ProfileService:      profileService,
		StateManager:        stateManager,
		Scheduler:           scheduler,
		Logger:              logger,
		Specializations:     cfg.Specializations,
		LoginRedirectDelay:  cfg.LoginRedirectDelay,
	})

	if err := botController.RegisterHandlers(ctx); err != nil {
		// меню команд не критично, бот работает и без него
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	return botController.Start(ctx)
}
