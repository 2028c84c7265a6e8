package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/cache"
	idgen "github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/id"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/logging"
)

// ExternalMatch is a provider-shaped match row before domain validation.
type ExternalMatch struct {
	ExternalID    string
	Date          time.Time
	HomeLabel     string
	AwayLabel     string
	LeagueLabel   string
	Event         string
	WinnerLabel   string
	NoResult      bool
	FormatOvers   int
	International bool
}

// ExternalDelivery is a provider-shaped ball record.
type ExternalDelivery struct {
	MatchExternalID string
	Innings         int
	Over            int
	Ball            int
	Striker         string
	NonStriker      string
	Bowler          string
	BattingLabel    string
	BowlingLabel    string
	Runs            int
	Extras          int
	Wicket          bool
	Shot            string
	Line            string
	Length          string
}

// FeedClient pulls match and ball-by-ball data from the upstream provider.
type FeedClient interface {
	FetchMatches(ctx context.Context, from, to time.Time) ([]ExternalMatch, error)
	FetchDeliveries(ctx context.Context, matchExternalID string) ([]ExternalDelivery, error)
}

type SyncResult struct {
	RunID      string `json:"run_id"`
	Matches    int    `json:"matches"`
	Deliveries int    `json:"deliveries"`
	Skipped    int    `json:"skipped"`
}

type FeedSyncService struct {
	client       FeedClient
	matchRepo    match.Repository
	deliveryRepo delivery.Repository
	cache        *cache.Store
	runIDs       idgen.Generator
	logger       *logging.Logger
}

func NewFeedSyncService(
	client FeedClient,
	matchRepo match.Repository,
	deliveryRepo delivery.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *FeedSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FeedSyncService{
		client:       client,
		matchRepo:    matchRepo,
		deliveryRepo: deliveryRepo,
		cache:        cacheStore,
		runIDs:       idgen.NewRandomGenerator(),
		logger:       logger,
	}
}

// SyncWindow pulls all matches in a date window from the feed and upserts
// them with their deliveries. Rows failing domain validation are skipped and
// counted, not fatal: one malformed scorecard should not abort an ingest run.
func (s *FeedSyncService) SyncWindow(ctx context.Context, from, to time.Time) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedSyncService.SyncWindow")
	defer span.End()

	if s.client == nil {
		return SyncResult{}, fmt.Errorf("%w: feed client is not configured", ErrDependencyUnavailable)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return SyncResult{}, fmt.Errorf("%w: window end precedes start", ErrInvalidInput)
	}

	runID, err := s.runIDs.NewID()
	if err != nil {
		return SyncResult{}, fmt.Errorf("generate sync run id: %w", err)
	}
	logger := s.logger.With("run_id", runID)

	external, err := s.client.FetchMatches(ctx, from, to)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch matches: %w", err)
	}

	result := SyncResult{RunID: runID}
	matches := make([]match.Match, 0, len(external))
	for _, em := range external {
		m := match.Match{
			ID:            em.ExternalID,
			Date:          em.Date,
			HomeLabel:     em.HomeLabel,
			AwayLabel:     em.AwayLabel,
			LeagueLabel:   em.LeagueLabel,
			Event:         em.Event,
			WinnerLabel:   em.WinnerLabel,
			NoResult:      em.NoResult,
			FormatOvers:   em.FormatOvers,
			International: em.International,
		}
		if err := m.Validate(); err != nil {
			logger.WarnContext(ctx, "skipping malformed feed match", "match_id", em.ExternalID, "error", err)
			result.Skipped++
			continue
		}
		matches = append(matches, m)
	}

	if len(matches) > 0 {
		if err := s.matchRepo.UpsertMatches(ctx, matches); err != nil {
			return SyncResult{}, fmt.Errorf("upsert matches: %w", err)
		}
	}
	result.Matches = len(matches)

	for _, m := range matches {
		rows, err := s.client.FetchDeliveries(ctx, m.ID)
		if err != nil {
			return result, fmt.Errorf("fetch deliveries for match %s: %w", m.ID, err)
		}

		items := make([]delivery.Delivery, 0, len(rows))
		for _, row := range rows {
			d := delivery.Delivery{
				MatchID:      m.ID,
				Innings:      row.Innings,
				Over:         row.Over,
				Ball:         row.Ball,
				Striker:      row.Striker,
				NonStriker:   row.NonStriker,
				Bowler:       row.Bowler,
				BattingLabel: row.BattingLabel,
				BowlingLabel: row.BowlingLabel,
				Runs:         row.Runs,
				Extras:       row.Extras,
				Wicket:       row.Wicket,
				Shot:         row.Shot,
				Line:         row.Line,
				Length:       row.Length,
			}
			if err := d.Validate(); err != nil {
				logger.WarnContext(ctx, "skipping malformed feed delivery",
					"match_id", m.ID, "innings", row.Innings, "over", row.Over, "ball", row.Ball, "error", err)
				result.Skipped++
				continue
			}
			items = append(items, d)
		}
		if len(items) > 0 {
			if err := s.deliveryRepo.UpsertDeliveries(ctx, items); err != nil {
				return result, fmt.Errorf("upsert deliveries for match %s: %w", m.ID, err)
			}
		}
		result.Deliveries += len(items)
	}

	if s.cache != nil {
		s.cache.DeletePrefix(ctx, "aggregate:")
	}

	logger.InfoContext(ctx, "feed sync complete",
		"matches", result.Matches, "deliveries", result.Deliveries, "skipped", result.Skipped)
	return result, nil
}
