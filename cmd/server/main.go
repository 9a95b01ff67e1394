package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"pacsbooking/config"
	authadapter "pacsbooking/internal/adapters/auth"
	emailadapter "pacsbooking/internal/adapters/email"
	delivery "pacsbooking/internal/delivery/http"
	"pacsbooking/internal/delivery/http/controllers"
	"pacsbooking/internal/delivery/http/middleware"
	"pacsbooking/internal/repository/postgres"
	"pacsbooking/internal/services"
)

// @title PACS Booking API
// @version 1.0
// @description Farmer pickup-slot booking and service-request backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	slotRepo := postgres.NewSlotRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	userRepo := postgres.NewUserRepository(db)
	loginCodeRepo := postgres.NewLoginCodeRepository(db)
	centerRepo := postgres.NewCenterRepository(db)
	requestRepo := postgres.NewServiceRequestRepository(db)

	// Adapters
	jwtManager := authadapter.NewJWTManager(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	slotService := services.NewSlotService(slotRepo, 0)
	emailService := services.NewEmailService(mailer)
	orderService := services.NewOrderService(orderRepo, userRepo, slotService, emailService, logger)
	authService := services.NewAuthService(userRepo, loginCodeRepo, jwtManager)
	profileService := services.NewProfileService(userRepo)
	directoryService := services.NewDirectoryService(centerRepo, requestRepo)

	router := delivery.NewRouter(delivery.Controllers{
		Auth:      controllers.NewAuthController(logger, authService, !cfg.IsProduction()),
		Slots:     controllers.NewSlotController(logger, slotService),
		Orders:    controllers.NewOrderController(logger, orderService),
		Profile:   controllers.NewProfileController(logger, profileService),
		Directory: controllers.NewDirectoryController(logger, directoryService),
		Admin:     controllers.NewAdminController(logger, userRepo, requestRepo),
	}, middleware.RequireAuth(jwtManager, logger))

	handler := middleware.LoggingMiddleware(logger, router)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("server stopped")
}
