package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/stats"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

type aggregateRequest struct {
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	Leagues              []string `json:"leagues" validate:"max=50,dive,required"`
	TeamID               string   `json:"team_id"`
	IncludeInternational bool     `json:"include_international"`
	GroupBy              []string `json:"group_by" validate:"required,min=1,max=5,dive,required"`
	Metric               string   `json:"metric"`
	MinSampleSize        int      `json:"min_sample_size" validate:"min=0"`
	Limit                int      `json:"limit" validate:"min=0"`
	ShowSummaryRows      bool     `json:"show_summary_rows"`
}

type aggregateResponse struct {
	Rows                 []stats.AggregateRow `json:"rows"`
	Summaries            *stats.SummaryBlock  `json:"summaries,omitempty"`
	Truncated            bool                 `json:"truncated"`
	MatchCount           int                  `json:"match_count"`
	ExcludedUnknownTeams int                  `json:"excluded_unknown_teams"`
}

func (h *Handler) AggregateStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AggregateStats")
	defer span.End()

	var req aggregateRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startDate, err := parseDateParam("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseDateParam("end_date", req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.aggregationService.Aggregate(ctx,
		delivery.FilterSpec{
			StartDate:            startDate,
			EndDate:              endDate,
			Leagues:              req.Leagues,
			TeamID:               req.TeamID,
			MinSampleSize:        req.MinSampleSize,
			IncludeInternational: req.IncludeInternational,
		},
		req.GroupBy,
		stats.Options{
			ShowSummaryRows: req.ShowSummaryRows,
			Metric:          req.Metric,
			Limit:           req.Limit,
		},
	)
	if err != nil {
		h.logger.WarnContext(ctx, "aggregate stats failed", "group_by", req.GroupBy, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, aggregateResponse{
		Rows:                 result.Rows,
		Summaries:            result.Summaries,
		Truncated:            result.Truncated,
		MatchCount:           result.MatchCount,
		ExcludedUnknownTeams: result.ExcludedUnknownTeams,
	})
}
