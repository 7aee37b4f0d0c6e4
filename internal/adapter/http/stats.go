package httpadapter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Koveh/telegram-ads-collector/internal/core/port"
)

// handleMetricSnapshots returns views/clicks history for one campaign. It
// accepts optional `from`, `to` (YYYY-MM-DD, inclusive) and `limit` query
// parameters. Invalid parameters result in HTTP 400.
func (h *Handler) handleMetricSnapshots(w http.ResponseWriter, r *http.Request) {
	f, ok := h.statsFilter(w, r)
	if !ok {
		return
	}
	snaps, err := h.repo.ListMetricSnapshots(r.Context(), f)
	if err != nil {
		h.logger.Error("views stats error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, snaps)
}

// handleBudgetSnapshots returns spend history for one campaign with the
// same query parameters as handleMetricSnapshots.
func (h *Handler) handleBudgetSnapshots(w http.ResponseWriter, r *http.Request) {
	f, ok := h.statsFilter(w, r)
	if !ok {
		return
	}
	snaps, err := h.repo.ListBudgetSnapshots(r.Context(), f)
	if err != nil {
		h.logger.Error("budget stats error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, snaps)
}

func (h *Handler) statsFilter(w http.ResponseWriter, r *http.Request) (port.StatsFilter, bool) {
	f := port.StatsFilter{CampaignID: chi.URLParam(r, "campaignID")}
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			http.Error(w, "invalid 'from' date", http.StatusBadRequest)
			return f, false
		}
		f.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			http.Error(w, "invalid 'to' date", http.StatusBadRequest)
			return f, false
		}
		f.To = &t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return f, false
		}
		f.Limit = n
	}
	return f, true
}
