package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-api/internal/config"
	"github.com/jwalitptl/clinic-api/internal/handler"
	appointmentHandler "github.com/jwalitptl/clinic-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/clinic-api/internal/handler/auth"
	doctorHandler "github.com/jwalitptl/clinic-api/internal/handler/doctor"
	examHandler "github.com/jwalitptl/clinic-api/internal/handler/exam"
	"github.com/jwalitptl/clinic-api/internal/handler/health"
	patientHandler "github.com/jwalitptl/clinic-api/internal/handler/patient"
	userHandler "github.com/jwalitptl/clinic-api/internal/handler/user"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/repository/postgres"
	"github.com/jwalitptl/clinic-api/internal/router"
	appointmentService "github.com/jwalitptl/clinic-api/internal/service/appointment"
	authService "github.com/jwalitptl/clinic-api/internal/service/auth"
	doctorService "github.com/jwalitptl/clinic-api/internal/service/doctor"
	examService "github.com/jwalitptl/clinic-api/internal/service/exam"
	patientService "github.com/jwalitptl/clinic-api/internal/service/patient"
	userService "github.com/jwalitptl/clinic-api/internal/service/user"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	"github.com/jwalitptl/clinic-api/pkg/logger"
	"github.com/jwalitptl/clinic-api/pkg/mailer"
	"github.com/jwalitptl/clinic-api/pkg/messaging"
	"github.com/jwalitptl/clinic-api/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/security"
	"github.com/jwalitptl/clinic-api/pkg/storage"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "clinic-api",
		Short: "Clinic records API server",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runServer(cfg, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	return cmd
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			db, err := postgres.NewDB(ctx, databaseConfig(cfg))
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info().Msg("schema applied")
			return nil
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log.Logger = logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	zerolog.DefaultContextLogger = &log.Logger
	return cfg, nil
}

func databaseConfig(cfg *config.Config) postgres.Config {
	return postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
}

func newPublisher(ctx context.Context, cfg *config.Config) messaging.Publisher {
	if cfg.Redis.URL == "" {
		log.Info().Msg("redis not configured, domain events disabled")
		return messaging.NewNoopPublisher()
	}
	publisher, err := redis.NewRedisPublisher(ctx, redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, domain events disabled")
		return messaging.NewNoopPublisher()
	}
	return publisher
}

func runServer(cfg *config.Config, migrate bool) error {
	ctx := context.Background()

	// Initialize database
	db, err := postgres.NewDB(ctx, databaseConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(cfg.Metrics.Namespace, registry)

	files, err := storage.NewDiskStore(cfg.Storage.UploadDir)
	if err != nil {
		return err
	}

	publisher := newPublisher(ctx, cfg)
	defer publisher.Close()

	// Initialize repositories
	tx := postgres.NewTransactor(db)
	patientRepo := postgres.NewPatientRepository(db, m)
	doctorRepo := postgres.NewDoctorRepository(db, m)
	appointmentRepo := postgres.NewAppointmentRepository(db, m)
	examRepo := postgres.NewExamRepository(db, m)
	userRepo := postgres.NewUserRepository(db, m)

	// Initialize services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	patientSvc := patientService.NewService(tx, patientRepo, appointmentRepo, examRepo)
	doctorSvc := doctorService.NewService(tx, doctorRepo, appointmentRepo, examRepo)
	appointmentSvc := appointmentService.NewService(tx, appointmentRepo, examRepo)
	examSvc := examService.NewService(tx, examRepo, files)
	userSvc := userService.NewService(tx, userRepo, security.NewBcryptHasher(cfg.Auth.BcryptCost), mail)
	authSvc := authService.NewService(userSvc, jwtSvc)

	// Initialize handlers
	base := handler.NewBaseHandler(publisher, cfg.Events.Channel, m)

	r := router.NewRouter(
		router.RouterConfig{
			Mode:      cfg.Server.Mode,
			RateLimit: rateLimit(cfg),
			RateBurst: cfg.RateLimit.Burst,
			CORSConfig: middleware.CORSConfig{
				AllowOrigins:     cfg.CORS.AllowedOrigins,
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           cfg.CORS.MaxAge,
			},
			Timeout: cfg.Server.RequestTimeout,
			SizeLimit: middleware.SizeLimitConfig{
				MaxBodySize:   cfg.Storage.MaxBodySize,
				MaxUploadSize: cfg.Storage.MaxUploadSize,
			},
			AuthEnabled: cfg.Auth.Enabled,
		},
		m,
		registry,
		middleware.NewAuthMiddleware(authSvc),
		health.NewHandler(db),
		[]router.Handler{
			authHandler.NewHandler(authSvc, userSvc, base),
		},
		[]router.Handler{
			patientHandler.NewHandler(patientSvc, base),
			doctorHandler.NewHandler(doctorSvc, base),
			appointmentHandler.NewHandler(appointmentSvc, base),
			examHandler.NewHandler(examSvc, base),
			userHandler.NewHandler(userSvc, base),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Bool("auth", cfg.Auth.Enabled).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

func rateLimit(cfg *config.Config) rate.Limit {
	if !cfg.RateLimit.Enabled {
		return 0
	}
	return rate.Limit(cfg.RateLimit.RequestsPerSecond)
}
