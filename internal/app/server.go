// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"helios-service/internal/config"
	"helios-service/internal/db"
	authHandler "helios-service/internal/handlers/auth"
	contractHandler "helios-service/internal/handlers/contract"
	customerHandler "helios-service/internal/handlers/customer"
	equipmentHandler "helios-service/internal/handlers/equipment"
	installationHandler "helios-service/internal/handlers/installation"
	jobHandler "helios-service/internal/handlers/job"
	statsHandler "helios-service/internal/handlers/stats"
	vendorHandler "helios-service/internal/handlers/vendor"
	"helios-service/internal/middleware"
	"helios-service/internal/pkg/session"
	"helios-service/internal/pkg/token"
	"helios-service/internal/repository/postgres"
	authUsecase "helios-service/internal/service/auth"
	contractsvc "helios-service/internal/service/contract"
	customersvc "helios-service/internal/service/customer"
	equipmentsvc "helios-service/internal/service/equipment"
	installationsvc "helios-service/internal/service/installation"
	jobsvc "helios-service/internal/service/job"
	vendorsvc "helios-service/internal/service/vendor"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	httpServer  *http.Server
	pool        *pgxpool.Pool
	redisClient *redis.Client
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	dbWrapper := postgres.NewDB(pool)
	if err := dbWrapper.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.redisClient = redisClient

	// ----- Tokens & Sessions -----
	tokenManager, err := token.NewManager(s.cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to build token manager: %w", err)
	}
	sessionStore := session.NewStore(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- Repositories -----
	customerRepo := postgres.NewCustomerRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	installationRepo := postgres.NewInstallationRepository(pool)
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)

	// ----- Services -----
	authService := authUsecase.NewAuthService(
		authUsecase.Credentials{
			Email:        s.cfg.AdminEmail,
			Name:         s.cfg.AdminName,
			PasswordHash: s.cfg.AdminPasswordHash,
		},
		tokenManager,
		sessionStore,
		rateLimiter,
		logger,
	)
	customerService := customersvc.NewCustomerService(customerRepo, logger)
	jobService := jobsvc.NewJobService(jobRepo, logger)
	installationService := installationsvc.NewInstallationService(installationRepo, logger)
	equipmentService := equipmentsvc.NewEquipmentService(equipmentRepo, logger)
	vendorService := vendorsvc.NewVendorService(vendorRepo, logger)
	contractService := contractsvc.NewContractService(contractRepo, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:         authHandler.NewAuthHandler(authService, logger),
		CustomerHandler:     customerHandler.NewCustomerHandler(customerService),
		JobHandler:          jobHandler.NewJobHandler(jobService),
		InstallationHandler: installationHandler.NewInstallationHandler(installationService),
		EquipmentHandler:    equipmentHandler.NewEquipmentHandler(equipmentService),
		VendorHandler:       vendorHandler.NewVendorHandler(vendorService),
		ContractHandler:     contractHandler.NewContractHandler(contractService),
		StatsHandler:        statsHandler.NewStatsHandler(jobService, equipmentService, customerService),
		AuthMiddleware:      middleware.NewAuthMiddleware(authService),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	SetupRouter(s.engine, handlers)

	s.httpServer = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the storage pools.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error

	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			firstErr = err
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}

	return firstErr
}
