package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/auth"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/config"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/database"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/email"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/handlers"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/logger"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/repositories"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/routes"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/validator"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/workers"
)

// SetupRouter builds the full gin engine over an open database. The test
// suite calls this directly against a temporary database.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.GetConfig()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Server.Env == "test" {
		gin.SetMode(gin.TestMode)
	}

	v := validator.New()
	base := handlers.NewBaseHandler(v)

	userRepo := repositories.NewUserRepository()
	reservationRepo := repositories.NewReservationRepository()
	tokenRepo := repositories.NewPasswordResetTokenRepository()

	sender := email.NewSMTPSender(cfg)

	authService := services.NewAuthService(userRepo, tokenRepo, sender)
	reservationService := services.NewReservationService(reservationRepo)
	userService := services.NewUserService(userRepo)
	backupService := services.NewBackupService()

	router := gin.New()
	router.Use(gin.Recovery())

	routes.SetupRoutes(router, db, &routes.Handlers{
		Auth:        handlers.NewAuthHandler(base, authService),
		Reservation: handlers.NewReservationHandler(base, reservationService),
		User:        handlers.NewUserHandler(base, userService),
		Admin:       handlers.NewAdminHandler(base, backupService),
	})

	return router
}

// SeedFirstAdmin creates the bootstrap admin account from config when no
// admin exists yet. Without it a fresh deployment has no way to approve
// payments.
func SeedFirstAdmin(db *gorm.DB) error {
	cfg := config.GetConfig()

	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	userRepo := repositories.NewUserRepository()
	count, err := userRepo.CountAdmins(db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	name := cfg.FirstAdminName
	if name == "" {
		name = "Admin"
	}

	admin := &models.User{
		Name:         name,
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := userRepo.Create(db, admin); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			// Account exists but is not admin; leave it alone.
			logger.Warn("first admin email already registered as regular user", "email", cfg.FirstAdminEmail)
			return nil
		}
		return err
	}

	logger.Info("first admin account created", "email", admin.Email)
	return nil
}

// Run starts the server and blocks until shutdown.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if err := SeedFirstAdmin(db); err != nil {
		return fmt.Errorf("seed first admin: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanupWorker := workers.NewTokenCleanupWorker(
		db,
		repositories.NewPasswordResetTokenRepository(),
		time.Duration(cfg.Reset.CleanupIntervalMin)*time.Minute,
	)
	go cleanupWorker.Start(ctx)

	router := SetupRouter(db)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
