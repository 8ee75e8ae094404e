package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grindhub/gym-platform/internal/api"
	"grindhub/gym-platform/internal/config"
	"grindhub/gym-platform/internal/logging"
	"grindhub/gym-platform/internal/repository/postgres"
	"grindhub/gym-platform/internal/service"
	"grindhub/gym-platform/internal/storage"
)

// @title Gym Platform API
// @version 1.0
// @description Multi-tenant gym management: members, programs, workouts, shop and trainer matching.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic("could not build logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("starting gym platform server", zap.String("address", cfg.Server.Address))

	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			logger.Error("database close failed", zap.Error(err))
		}
	}()

	if err := postgres.Migrate(db); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	logger.Info("database ready")

	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal("object storage initialization failed", zap.Error(err))
	}

	repos := postgres.NewRepositories(db)
	uow := postgres.NewUnitOfWork(db)

	services := api.Services{
		Auth:      service.NewAuthService(repos.Users, repos.Roles, cfg.JWT.Secret, cfg.JWT.Expiration),
		Gyms:      service.NewGymService(repos.Gyms, uow),
		Roles:     service.NewRoleService(repos.Roles, repos.Users),
		Users:     service.NewUserService(repos.Users, repos.Roles),
		Equipment: service.NewEquipmentService(repos.Equipment, fileStorage),
		Exercises: service.NewExerciseService(repos.Exercises, repos.Equipment, fileStorage),
		Programs:  service.NewProgramService(repos.Programs, repos.Exercises, uow),
		Workouts:  service.NewWorkoutService(repos.WorkoutLogs, repos.Programs, uow),
		Products:  service.NewProductService(repos.Categories, repos.Products),
		Orders:    service.NewOrderService(repos.Orders, repos.Users, repos.Matches, uow),
		Matches:   service.NewMatchService(repos.Matches, repos.Users),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, logger, cfg.JWT.Secret, services)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("address", cfg.Server.Address))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
