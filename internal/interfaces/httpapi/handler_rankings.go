package httpapi

import (
	"net/http"
	"time"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/rating"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

type rankingDTO struct {
	Rank   int     `json:"rank"`
	TeamID string  `json:"team_id"`
	Name   string  `json:"name"`
	Short  string  `json:"short"`
	Rating float64 `json:"rating"`
}

type ratingSnapshotDTO struct {
	LeagueID     string  `json:"league_id"`
	MatchID      string  `json:"match_id"`
	MatchDate    string  `json:"match_date"`
	RatingBefore float64 `json:"rating_before"`
	RatingAfter  float64 `json:"rating_after"`
	Change       float64 `json:"change"`
}

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankings")
	defer span.End()

	query := r.URL.Query()
	from, err := parseDateParam("from", query.Get("from"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := parseDateParam("to", query.Get("to"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	includeInternational, err := parseBoolParam("include_international", query.Get("include_international"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.rankingService.Rankings(ctx, usecase.RankingQuery{
		League:               query.Get("league"),
		From:                 from,
		To:                   to,
		IncludeInternational: includeInternational,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list rankings failed", "league", query.Get("league"), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]rankingDTO, 0, len(rows))
	for i, row := range rows {
		items = append(items, rankingToDTO(row, i+1))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamRatingHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRatingHistory")
	defer span.End()

	teamID := r.PathValue("teamID")
	snapshots, err := h.ratingService.TeamRatingHistory(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get rating history failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]ratingSnapshotDTO, 0, len(snapshots))
	for _, snapshot := range snapshots {
		items = append(items, snapshotToDTO(snapshot))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func rankingToDTO(v rating.Ranking, rank int) rankingDTO {
	return rankingDTO{
		Rank:   rank,
		TeamID: v.TeamID,
		Name:   v.Name,
		Short:  v.Short,
		Rating: v.Rating,
	}
}

func snapshotToDTO(v rating.Snapshot) ratingSnapshotDTO {
	return ratingSnapshotDTO{
		LeagueID:     v.LeagueID,
		MatchID:      v.MatchID,
		MatchDate:    v.MatchDate.UTC().Format(time.RFC3339),
		RatingBefore: v.RatingBefore,
		RatingAfter:  v.RatingAfter,
		Change:       v.Change(),
	}
}
