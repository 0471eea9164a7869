package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/team-draw/external/rosterfile"
	"github.com/riskibarqy/team-draw/internal/config"
	"github.com/riskibarqy/team-draw/internal/domain/roster"
	rostercache "github.com/riskibarqy/team-draw/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/team-draw/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/team-draw/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/team-draw/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/team-draw/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/team-draw/internal/platform/cache"
	idgen "github.com/riskibarqy/team-draw/internal/platform/id"
	"github.com/riskibarqy/team-draw/internal/platform/logging"
	"github.com/riskibarqy/team-draw/internal/platform/resilience"
	"github.com/riskibarqy/team-draw/internal/usecase"
)

// Services are the usecases shared by the HTTP server and the CLI.
type Services struct {
	Rosters *usecase.RosterService
	Draws   *usecase.DrawService
	close   func() error
}

// Close releases the roster source connection, if any.
func (s *Services) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

func NewServices(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	source, closeSource, err := OpenRosterSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		repo        roster.Repository = source
		invalidator usecase.RosterInvalidator
	)
	if cfg.CacheEnabled {
		breaker := resilience.NewCircuitBreakerFromConfig(resilience.CircuitBreakerConfig{
			Enabled:          cfg.RosterCircuitEnabled,
			FailureThreshold: cfg.RosterCircuitFailureCount,
			OpenTimeout:      cfg.RosterCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RosterCircuitHalfOpenMaxReq,
		})
		breaker.OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("roster source circuit changed",
				"source", rosterSourceName(cfg),
				"from", from.String(),
				"to", to.String(),
			)
		})
		cached := rostercache.NewRosterRepository(
			source,
			basecache.NewStore[[]roster.Player](cfg.CacheTTL),
			rosterSourceName(cfg),
			breaker,
			logger,
		)
		repo, invalidator = cached, cached
	}

	rosters := usecase.NewRosterService(repo, invalidator, logger)
	draws := usecase.NewDrawService(rosters, usecase.DrawLimits{
		MaxGoalkeepers: cfg.DrawMaxGoalkeepers,
		MaxLinePlayers: cfg.DrawMaxLinePlayers,
		MinLinePlayers: cfg.DrawMinLinePlayers,
		DefaultVariety: cfg.DrawDefaultVariety,
		MaxOptions:     cfg.DrawOptionsMax,
		Workers:        cfg.DrawWorkers,
	}, idgen.NewRandomGenerator("draw"), logger)

	logger.Info("roster source ready",
		"source", cfg.RosterSource,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL,
	)

	return &Services{Rosters: rosters, Draws: draws, close: closeSource}, nil
}

func NewHTTPServer(services *Services, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(services.Rosters, services.Draws, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// OpenRosterSource returns the configured roster repository and a closer for
// any connection it holds.
func OpenRosterSource(ctx context.Context, cfg config.Config) (roster.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.RosterSource {
	case config.RosterSourceMemory, "":
		return memory.NewRosterRepository(memory.SeedRoster()), noop, nil
	case config.RosterSourceFile:
		return rosterfile.NewRepository(cfg.RosterFile), noop, nil
	case config.RosterSourceSQLite:
		repo, err := sqlite.New(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite roster: %w", err)
		}
		return repo, repo.Close, nil
	case config.RosterSourcePostgres:
		db, err := OpenPostgres(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewRosterRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported roster source %q", cfg.RosterSource)
	}
}

func rosterSourceName(cfg config.Config) string {
	switch cfg.RosterSource {
	case config.RosterSourceFile:
		return cfg.RosterSource + ":" + cfg.RosterFile
	case config.RosterSourceSQLite:
		return cfg.RosterSource + ":" + cfg.SQLiteDSN
	case config.RosterSourcePostgres:
		return cfg.RosterSource + ":" + dbNameFromURL(cfg.DBURL)
	default:
		return cfg.RosterSource
	}
}
