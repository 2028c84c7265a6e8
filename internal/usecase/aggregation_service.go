package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/stats"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/cache"
)

// AggregationResult is one aggregation run plus the audit counters callers
// need to trust the totals.
type AggregationResult struct {
	Rows                 []stats.AggregateRow
	Summaries            *stats.SummaryBlock
	Truncated            bool
	MatchCount           int
	ExcludedUnknownTeams int
}

type AggregationService struct {
	identities   *identity.Holder
	matchRepo    match.Repository
	deliveryRepo delivery.Repository
	cache        *cache.Store
}

func NewAggregationService(
	identities *identity.Holder,
	matchRepo match.Repository,
	deliveryRepo delivery.Repository,
	cacheStore *cache.Store,
) *AggregationService {
	return &AggregationService{
		identities:   identities,
		matchRepo:    matchRepo,
		deliveryRepo: deliveryRepo,
		cache:        cacheStore,
	}
}

// Aggregate computes grouped metrics for the filtered delivery set.
func (s *AggregationService) Aggregate(ctx context.Context, spec delivery.FilterSpec, groupBy []string, opts stats.Options) (AggregationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.Aggregate")
	defer span.End()

	if len(groupBy) == 0 {
		return AggregationResult{}, fmt.Errorf("%w: group_by is required", stats.ErrInvalidDimension)
	}

	key := aggregationCacheKey(spec, groupBy, opts)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if result, ok := cached.(AggregationResult); ok {
				return result, nil
			}
		}
	}

	set, err := buildFilteredSet(ctx, s.identities.Load(), s.matchRepo, s.deliveryRepo, spec)
	if err != nil {
		return AggregationResult{}, err
	}

	opts.MinSampleSize = maxInt(opts.MinSampleSize, spec.MinSampleSize)
	computed, err := stats.Aggregate(set.Deliveries, groupBy, opts)
	if err != nil {
		return AggregationResult{}, err
	}

	result := AggregationResult{
		Rows:                 computed.Rows,
		Summaries:            computed.Summaries,
		Truncated:            computed.Truncated,
		MatchCount:           set.MatchCount,
		ExcludedUnknownTeams: set.ExcludedUnknownTeams,
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}

	return result, nil
}

func aggregationCacheKey(spec delivery.FilterSpec, groupBy []string, opts stats.Options) string {
	leagues := append([]string(nil), spec.Leagues...)
	sort.Strings(leagues)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("aggregate:")
	_, _ = buf.WriteString(spec.StartDate.Format("2006-01-02"))
	_ = buf.WriteByte(':')
	_, _ = buf.WriteString(spec.EndDate.Format("2006-01-02"))
	_ = buf.WriteByte(':')
	_, _ = buf.WriteString(strings.Join(leagues, ","))
	_ = buf.WriteByte(':')
	_, _ = buf.WriteString(spec.TeamID)
	_ = buf.WriteByte(':')
	_, _ = buf.WriteString(strings.Join(groupBy, ","))
	fmt.Fprintf(buf, ":%d:%t:%t:%s:%d",
		maxInt(opts.MinSampleSize, spec.MinSampleSize),
		spec.IncludeInternational,
		opts.ShowSummaryRows,
		opts.Metric,
		opts.Limit,
	)
	return buf.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
