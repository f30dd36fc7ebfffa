package app

import (
	"log/slog"
	"net/http"

	"github.com/liamgecko/fantasy-football/external/espn"
	"github.com/liamgecko/fantasy-football/internal/config"
	"github.com/liamgecko/fantasy-football/internal/infrastructure/snapshotstore"
	"github.com/liamgecko/fantasy-football/internal/interfaces/httpapi"
	"github.com/liamgecko/fantasy-football/internal/platform/logging"
	"github.com/liamgecko/fantasy-football/internal/platform/resilience"
	"github.com/liamgecko/fantasy-football/internal/usecase"
)

// NewESPNClient builds the stat provider gateway from runtime config.
func NewESPNClient(cfg config.Config, logger *logging.Logger) *espn.Client {
	return espn.NewClient(espn.ClientConfig{
		SiteBaseURL:   cfg.ESPNSiteBaseURL,
		CoreBaseURL:   cfg.ESPNCoreBaseURL,
		CoreV3BaseURL: cfg.ESPNCoreV3BaseURL,
		WebBaseURL:    cfg.ESPNWebBaseURL,
		Timeout:       cfg.ESPNTimeout,
		MaxRetries:    cfg.ESPNMaxRetries,
		Logger:        logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMax,
		},
	})
}

// NewSnapshotStore wires the snapshot builder and its file store.
func NewSnapshotStore(cfg config.Config, client *espn.Client, logger *logging.Logger) *snapshotstore.Store {
	builder := usecase.NewSnapshotService(client, logger, cfg.SnapshotWorkers, cfg.SnapshotBatchSize)
	return snapshotstore.New(cfg.SnapshotPath, builder, logger)
}

// NewHTTPServer assembles the full request path from config: ESPN gateway,
// snapshot store, services, handler and middleware chain.
func NewHTTPServer(cfg config.Config, logger *slog.Logger, zlogger *logging.Logger) *http.Server {
	client := NewESPNClient(cfg, zlogger)
	store := NewSnapshotStore(cfg, client, zlogger)

	teamSvc := usecase.NewTeamService(client)
	athleteSvc := usecase.NewAthleteService(client)
	playerSvc := usecase.NewPlayerService(store)

	handler := httpapi.NewHandler(teamSvc, athleteSvc, playerSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
