package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

type Handler struct {
	aggregationService *usecase.AggregationService
	phaseService       *usecase.PhaseStatsService
	rankingService     *usecase.RankingService
	ratingService      *usecase.RatingService
	referenceService   *usecase.ReferenceService
	feedSyncService    *usecase.FeedSyncService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	aggregationService *usecase.AggregationService,
	phaseService *usecase.PhaseStatsService,
	rankingService *usecase.RankingService,
	ratingService *usecase.RatingService,
	referenceService *usecase.ReferenceService,
	feedSyncService *usecase.FeedSyncService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		aggregationService: aggregationService,
		phaseService:       phaseService,
		rankingService:     rankingService,
		ratingService:      ratingService,
		referenceService:   referenceService,
		feedSyncService:    feedSyncService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// parseDateParam parses an optional YYYY-MM-DD value; empty input is a zero
// time, not an error.
func parseDateParam(name, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	out, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s %q, expected YYYY-MM-DD", usecase.ErrInvalidInput, name, value)
	}
	return out, nil
}

func parseBoolParam(name, value string) (bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	switch value {
	case "", "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid %s %q, expected true or false", usecase.ErrInvalidInput, name, value)
	}
}

func splitCSVParam(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
