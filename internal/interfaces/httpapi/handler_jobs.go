package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

type recomputeRatingsRequest struct {
	Leagues              []string `json:"leagues" validate:"max=50,dive,required"`
	IncludeInternational bool     `json:"include_international"`
	MaxWorkers           int      `json:"max_workers" validate:"min=0,max=64"`
}

type syncFeedRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *Handler) RunRecomputeRatingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeRatingsJob")
	defer span.End()

	var req recomputeRatingsRequest
	if err := decodeOptionalJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ratingService.Recompute(ctx, usecase.RecomputeInput{
		Leagues:              req.Leagues,
		IncludeInternational: req.IncludeInternational,
		MaxWorkers:           req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "recompute ratings job failed", "leagues", req.Leagues, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunFeedSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFeedSyncJob")
	defer span.End()

	var req syncFeedRequest
	if err := decodeOptionalJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	from, err := parseDateParam("from", req.From)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := parseDateParam("to", req.To)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.feedSyncService.SyncWindow(ctx, from, to)
	if err != nil {
		h.logger.WarnContext(ctx, "feed sync job failed", "from", req.From, "to", req.To, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRefreshReferenceJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshReferenceJob")
	defer span.End()

	if err := h.referenceService.Refresh(ctx); err != nil {
		h.logger.WarnContext(ctx, "refresh reference job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// decodeOptionalJSONBody decodes a request body into out; an empty body is
// treated as the zero request, not an error.
func decodeOptionalJSONBody(r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
