package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/adityabalaji97/cricket-data-thing-sub003/external/cricfeed"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/config"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/rating"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/infrastructure/repository/memory"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/infrastructure/repository/postgres"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/interfaces/httpapi"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/cache"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/logging"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/resilience"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

type repositories struct {
	matches    match.Repository
	deliveries delivery.Repository
	ratings    rating.Repository
	reference  identity.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. The returned cleanup releases storage handles and must
// be called after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if appLogger == nil {
		appLogger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}

	registry, err := usecase.BuildRegistry(ctx, repos.reference)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("build identity registry: %w", err)
	}
	holder := identity.NewHolder(registry)

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	aggregationSvc := usecase.NewAggregationService(holder, repos.matches, repos.deliveries, cacheStore)
	phaseSvc := usecase.NewPhaseStatsService(holder, repos.matches, repos.deliveries)
	ratingSvc := usecase.NewRatingService(
		holder,
		repos.matches,
		repos.ratings,
		cacheStore,
		appLogger,
		cfg.RatingBase,
		cfg.RatingKFactor,
		cfg.RecomputeMaxWorkers,
	)
	rankingSvc := usecase.NewRankingService(holder, repos.ratings, cacheStore)
	referenceSvc := usecase.NewReferenceService(repos.reference, holder, appLogger)

	var feedClient usecase.FeedClient
	if cfg.CricFeedEnabled {
		feedClient = cricfeed.NewClient(cricfeed.ClientConfig{
			BaseURL:    cfg.CricFeedBaseURL,
			Token:      cfg.CricFeedToken,
			Timeout:    cfg.CricFeedTimeout,
			MaxRetries: cfg.CricFeedMaxRetries,
			Logger:     appLogger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.CricFeedCircuitEnabled,
				FailureThreshold: cfg.CricFeedCircuitFailureCount,
				OpenTimeout:      cfg.CricFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.CricFeedCircuitHalfOpenMaxReq,
			},
		})
	}
	feedSyncSvc := usecase.NewFeedSyncService(feedClient, repos.matches, repos.deliveries, cacheStore, appLogger)

	handler := httpapi.NewHandler(aggregationSvc, phaseSvc, rankingSvc, ratingSvc, referenceSvc, feedSyncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, func(context.Context) error {
		cleanup()
		return nil
	}, nil
}

func buildRepositories(cfg config.Config) (repositories, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			matches:    postgres.NewMatchRepository(db),
			deliveries: postgres.NewDeliveryRepository(db),
			ratings:    postgres.NewRatingRepository(db),
			reference:  postgres.NewReferenceRepository(db),
		}, func() { _ = db.Close() }, nil
	default:
		matchRepo := memory.NewMatchRepository(memory.SeedMatches())
		return repositories{
			matches:    matchRepo,
			deliveries: memory.NewDeliveryRepository(matchRepo, memory.SeedDeliveries()),
			ratings:    memory.NewRatingRepository(),
			reference:  memory.NewReferenceRepository(memory.SeedTeams(), memory.SeedLeagues(), memory.SeedHandedness()),
		}, func() {}, nil
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
