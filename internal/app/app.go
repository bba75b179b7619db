package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/godilite/jii-dashboard/internal/config"
	handler "github.com/godilite/jii-dashboard/internal/grpc"
	"github.com/godilite/jii-dashboard/internal/httpapi"
	"github.com/godilite/jii-dashboard/internal/repository"
	"github.com/godilite/jii-dashboard/internal/service"
	"github.com/godilite/jii-dashboard/pkg/cache"
	dbbuilder "github.com/godilite/jii-dashboard/pkg/database"
	grpcsrv "github.com/godilite/jii-dashboard/pkg/grpc/server"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger     *zap.Logger
	db         *dbbuilder.Handle
	cache      handler.Cacher
	grpcServer *grpcsrv.Server
	httpServer *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	driver, err := dbbuilder.NormalizeDriver(cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	dbHandle := dbbuilder.NewHandle(
		dbbuilder.WithDriver(driver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithLogger(logger.Named("database")),
	)
	dbPool, err := dbHandle.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("driver", driver))

	var cacheClient handler.Cacher = cache.Nop{}
	if cfg.CacheEnabled() {
		c, err := cache.New(ctx, cache.WithAddress(cfg.RedisAddr))
		if err != nil {
			_ = dbHandle.Close()
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		cacheClient = c
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Info("REDIS_ADDR not set, response cache disabled")
	}

	cat, err := LoadCatalog(cfg.CatalogPath, logger)
	if err != nil {
		_ = dbHandle.Close()
		return nil, err
	}
	analyzers := BuildAnalyzers(cfg.LexiconEnabled, cfg.LexiconPath, logger)
	defaultMode := DefaultMode(cfg.SentimentMode, analyzers, logger)

	repo := repository.NewEventRepository(dbPool, driver)
	dashboardService := service.NewDashboardService(repo, logger.Named("dashboard"))
	surveyService := service.NewSurveyService(repo, cat, logger.Named("survey"))
	textService := service.NewTextService(repo, cat, analyzers, defaultMode, logger.Named("text"))
	exportService := service.NewExportService(repo, cat, logger.Named("export"))

	grpcHandlers := handler.NewGRPCHandlers(dashboardService, surveyService, textService, cacheClient, logger, cfg.CacheTTL)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithLogging(true),
		grpcsrv.WithMetrics(true),
	)
	if err != nil {
		_ = dbHandle.Close()
		_ = cacheClient.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(handler.ServiceName, func(s *grpc.Server) {
		handler.RegisterAnalyticsServer(s, grpcHandlers)
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpapi.NewHandler(exportService, dbPool, logger).Routes(cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return &App{
		logger:     logger,
		db:         dbHandle,
		cache:      cacheClient,
		grpcServer: grpcServer,
		httpServer: httpServer,
	}, nil
}

// Run serves gRPC and HTTP until ctx is cancelled or the HTTP server fails,
// then shuts both down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	a.grpcServer.Start()

	httpErr := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
		}
		close(httpErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-httpErr:
		if ok {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	a.logger.Info("application shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP shutdown error", zap.Error(err))
	}
	if err := a.grpcServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("gRPC shutdown error", zap.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	if runErr == nil {
		a.logger.Info("graceful shutdown completed successfully")
	}
	_ = a.logger.Sync()
	return runErr
}
