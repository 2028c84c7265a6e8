package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/stats/aggregate", handler.AggregateStats)
	mux.HandleFunc("GET /v1/teams/{teamID}/phase-stats", handler.GetTeamPhaseStats)
	mux.HandleFunc("GET /v1/teams/{teamID}/rating-history", handler.GetTeamRatingHistory)
	mux.HandleFunc("GET /v1/rankings", handler.ListRankings)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recompute-ratings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeRatingsJob)))
	mux.Handle("POST /v1/internal/jobs/refresh-reference", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshReferenceJob)))
	mux.Handle("POST /v1/internal/sync/feed", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFeedSyncJob)))
}
