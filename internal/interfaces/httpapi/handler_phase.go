package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

func (h *Handler) GetTeamPhaseStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamPhaseStats")
	defer span.End()

	teamID := r.PathValue("teamID")
	query := r.URL.Query()

	startDate, err := parseDateParam("start_date", query.Get("start_date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseDateParam("end_date", query.Get("end_date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	includeInternational, err := parseBoolParam("include_international", query.Get("include_international"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	minSampleSize := 0
	if raw := query.Get("min_sample_size"); raw != "" {
		minSampleSize, err = strconv.Atoi(raw)
		if err != nil || minSampleSize < 0 {
			writeError(ctx, w, fmt.Errorf("%w: invalid min_sample_size %q", usecase.ErrInvalidInput, raw))
			return
		}
	}

	spec := delivery.FilterSpec{
		StartDate:            startDate,
		EndDate:              endDate,
		Leagues:              splitCSVParam(query.Get("leagues")),
		MinSampleSize:        minSampleSize,
		IncludeInternational: includeInternational,
	}
	benchmarkSpec := delivery.FilterSpec{
		Leagues:              splitCSVParam(query.Get("benchmark_leagues")),
		IncludeInternational: includeInternational,
	}

	report, err := h.phaseService.PhaseStats(ctx, teamID, spec, benchmarkSpec)
	if err != nil {
		h.logger.WarnContext(ctx, "get team phase stats failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
