package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/config"
	"github.com/jwalitptl/clinic-api/internal/email"
	"github.com/jwalitptl/clinic-api/internal/handler"
	appointmentHandler "github.com/jwalitptl/clinic-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/clinic-api/internal/handler/auth"
	billHandler "github.com/jwalitptl/clinic-api/internal/handler/bill"
	doctorHandler "github.com/jwalitptl/clinic-api/internal/handler/doctor"
	favoriteHandler "github.com/jwalitptl/clinic-api/internal/handler/favorite"
	patientHandler "github.com/jwalitptl/clinic-api/internal/handler/patient"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/repository/postgres"
	"github.com/jwalitptl/clinic-api/internal/router"
	appointmentService "github.com/jwalitptl/clinic-api/internal/service/appointment"
	authService "github.com/jwalitptl/clinic-api/internal/service/auth"
	billingService "github.com/jwalitptl/clinic-api/internal/service/billing"
	doctorService "github.com/jwalitptl/clinic-api/internal/service/doctor"
	favoriteService "github.com/jwalitptl/clinic-api/internal/service/favorite"
	patientService "github.com/jwalitptl/clinic-api/internal/service/patient"
	"github.com/jwalitptl/clinic-api/internal/session"
	"github.com/jwalitptl/clinic-api/internal/worker"
	pkgauth "github.com/jwalitptl/clinic-api/pkg/auth"
	"github.com/jwalitptl/clinic-api/pkg/logger"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	if err := validator.Register(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	sessions, err := session.NewStore(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer sessions.Close()

	m := metrics.NewMetrics("clinic")

	var sender email.Sender
	if cfg.SMTP.Enabled {
		sender = email.NewSMTPSender(cfg.SMTP)
	} else {
		sender = email.NewNoopSender(logger.With("email"))
	}

	// Repositories
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	billRepo := postgres.NewBillRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)

	// Services
	fee, err := cfg.Booking.Fee()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid consultation fee")
	}
	doctorSvc := doctorService.NewService(doctorRepo)
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo, doctorRepo, patientRepo, sender, m,
		appointmentService.Config{AutoBill: cfg.Booking.AutoBill, Fee: fee},
		logger.With("appointment"),
	)
	billingSvc := billingService.NewService(billRepo, m)
	favoriteSvc := favoriteService.NewService(favoriteRepo, doctorRepo)

	tokens := pkgauth.NewJWTService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	authSvc := authService.NewService(patientRepo, sessions, tokens, cfg.Auth.TokenTTL, m)

	// HTTP layer
	authMw := middleware.NewAuthMiddleware(authSvc)
	healthH := handler.NewHealthHandler(db, sessions)

	r := router.NewRouter(
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		authMw,
		healthH,
		doctorHandler.NewHandler(doctorSvc),
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		billHandler.NewHandler(billingSvc),
		favoriteHandler.NewHandler(favoriteSvc),
		authHandler.NewHandler(authSvc),
	)
	r.Setup()

	// Background reminder loop
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.Reminder.Enabled {
		reminder := worker.NewReminder(
			appointmentRepo, sender, m,
			cfg.Reminder.Interval, cfg.Reminder.Lookahead,
			logger.With("reminder"),
		)
		go reminder.Start(workerCtx)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
