// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/api"
	"github.com/netcellhq/netcell-hub/internal/cache"
	"github.com/netcellhq/netcell-hub/internal/config"
	"github.com/netcellhq/netcell-hub/internal/database"
	"github.com/netcellhq/netcell-hub/internal/hubservice"
	"github.com/netcellhq/netcell-hub/internal/repository/sqlite"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	statsCache *cache.StatsCache
	hubservice *hubservice.HubService
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Initialize services
	svc, err := s.initializeHubService()
	if err != nil {
		return err
	}
	s.hubservice = svc

	// Mount the API router
	s.srv.Handler = api.NewRouter(s.hubservice).Handler()

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	s.statsCache.Close()
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing database: %v", err)
		}
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// initializeHubService creates and configures the hub service
func (s *Server) initializeHubService() (*hubservice.HubService, error) {
	db, err := database.NewSQLiteDB(s.config.Database.SQLite)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	samples, err := sqlite.NewSampleRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sample repository: %w", err)
	}
	presence, err := sqlite.NewPresenceRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize presence repository: %w", err)
	}

	s.statsCache = cache.New(s.config.Redis)

	svc := hubservice.New(samples, presence, s.statsCache)
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	return svc, nil
}
