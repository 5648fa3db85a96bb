package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/external/statsfeed"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/config"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/lineup"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/roster"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/scoring"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/stats"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/tournament"
	cacherepo "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/cache"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/memory"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/infrastructure/repository/postgres"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/interfaces/httpapi"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/metrics"
	basecache "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/cache"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/logging"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/resilience"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/usecase"
)

// repositories groups the persistence ports the use cases consume, whichever
// storage driver produced them.
type repositories struct {
	manager    manager.Repository
	player     player.Repository
	roster     roster.Repository
	lineup     lineup.Repository
	schedule   schedule.Repository
	stats      stats.Repository
	scoring    scoring.Repository
	tournament tournament.Repository
}

// NewHTTPServer wires storage, use cases and the HTTP layer from config. The
// returned cleanup closes whatever the wiring opened (database pool, metric
// provider) and must run after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	recorder, metricsHandler, metricsShutdown, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:     cfg.MetricsEnabled,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("setup metrics: %w", err)
	}

	var store *basecache.Store
	if cfg.CacheEnabled {
		store = basecache.NewStore(cfg.CacheTTL)
	}

	repos, closeStorage, err := buildRepositories(ctx, cfg, store, logger)
	if err != nil {
		_ = metricsShutdown(ctx)
		return nil, nil, err
	}

	managerSvc := usecase.NewManagerService(repos.manager)
	draftSvc := usecase.NewDraftService(repos.manager, repos.player, repos.roster, cfg.DraftRounds)
	lineupSvc := usecase.NewLineupService(repos.manager, repos.player, repos.roster, repos.lineup, repos.schedule, cfg.SeasonStart, cfg.SeasonEnd)
	scoringSvc := usecase.NewScoringService(repos.manager, repos.player, repos.roster, repos.lineup, repos.schedule, repos.stats, repos.scoring, nil, store)
	standingsSvc := usecase.NewStandingsService(repos.manager, repos.scoring)
	tournamentSvc := usecase.NewTournamentService(repos.manager, repos.player, repos.roster, repos.scoring, repos.tournament, standingsSvc)
	playerSvc := usecase.NewPlayerService(repos.player, repos.roster, repos.stats, repos.scoring)
	recapSvc := usecase.NewRecapService(repos.manager, repos.player, repos.roster, repos.lineup, repos.schedule, repos.scoring)
	scheduleSvc := usecase.NewScheduleService(repos.schedule)

	var provider usecase.StatsFeedProvider
	if cfg.StatsFeedEnabled {
		provider = statsfeed.NewClient(statsfeed.ClientConfig{
			BaseURL:    cfg.StatsFeedBaseURL,
			Token:      cfg.StatsFeedToken,
			Timeout:    cfg.StatsFeedTimeout,
			MaxRetries: cfg.StatsFeedMaxRetries,
			Logger:     logger,
			Metrics:    recorder,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.StatsFeedCircuitEnabled,
				FailureThreshold: cfg.StatsFeedCircuitFailureCount,
				OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenMaxReq,
			},
		})
	}
	feedSyncSvc := usecase.NewFeedSyncService(repos.schedule, scoringSvc, provider, usecase.FeedSyncConfig{
		Enabled:    cfg.StatsFeedEnabled,
		MaxWorkers: cfg.StatsFeedSyncWorkers,
	}, logger)

	handler := httpapi.NewHandler(
		draftSvc,
		managerSvc,
		lineupSvc,
		scoringSvc,
		standingsSvc,
		tournamentSvc,
		playerSvc,
		recapSvc,
		scheduleSvc,
		feedSyncSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, recorder, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, metricsHandler)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanupNow := combineCleanup(closeStorage, metricsShutdown)
		_ = cleanupNow(ctx)
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, combineCleanup(closeStorage, metricsShutdown), nil
}

func buildRepositories(ctx context.Context, cfg config.Config, store *basecache.Store, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.InfoContext(ctx, "storage ready", "driver", config.StoragePostgres, "db", dbNameFromURL(cfg.DBURL))

		repos := repositories{
			manager:    postgres.NewManagerRepository(db),
			player:     postgres.NewPlayerRepository(db),
			roster:     postgres.NewRosterRepository(db),
			lineup:     postgres.NewLineupRepository(db),
			schedule:   postgres.NewScheduleRepository(db),
			stats:      postgres.NewStatsRepository(db),
			scoring:    postgres.NewScoringRepository(db),
			tournament: postgres.NewTournamentRepository(db),
		}
		return withReadCache(repos, store), db.Close, nil
	default:
		logger.InfoContext(ctx, "storage ready", "driver", config.StorageMemory)

		repos := repositories{
			manager:    memory.NewManagerRepository(memory.SeedManagers()),
			player:     memory.NewPlayerRepository(memory.SeedPlayers()),
			roster:     memory.NewRosterRepository(),
			lineup:     memory.NewLineupRepository(),
			schedule:   memory.NewScheduleRepository(memory.SeedSchedule()),
			stats:      memory.NewStatsRepository(),
			scoring:    memory.NewScoringRepository(),
			tournament: memory.NewTournamentRepository(),
		}
		return withReadCache(repos, store), nil, nil
	}
}

// withReadCache decorates the reference data repositories. Write path repos
// stay direct so scores and lineups are never served stale.
func withReadCache(repos repositories, store *basecache.Store) repositories {
	if store == nil {
		return repos
	}

	repos.manager = cacherepo.NewManagerRepository(repos.manager, store)
	repos.player = cacherepo.NewPlayerRepository(repos.player, store)
	repos.schedule = cacherepo.NewScheduleRepository(repos.schedule, store)
	return repos
}

func combineCleanup(closeStorage func() error, metricsShutdown func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		var errs []error
		if closeStorage != nil {
			if err := closeStorage(); err != nil {
				errs = append(errs, fmt.Errorf("close storage: %w", err))
			}
		}
		if metricsShutdown != nil {
			if err := metricsShutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown metrics: %w", err))
			}
		}
		return errors.Join(errs...)
	}
}
