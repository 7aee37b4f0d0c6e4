package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Koveh/telegram-ads-collector/internal/core/port"
)

// Handler is the read-only inbound adapter consumed by the dashboard. It
// exposes the campaign registry and the two snapshot tables; filtering and
// presentation beyond simple date bounds stay on the dashboard side. A
// collection run can also be triggered over HTTP for operation without the
// external scheduler.
type Handler struct {
	repo   port.CampaignRepository
	uc     port.CollectUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(repo port.CampaignRepository, uc port.CollectUseCase, logger *slog.Logger) *Handler {
	h := &Handler{repo: repo, uc: uc, logger: logger}
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/campaigns/{campaignID}/views", h.handleMetricSnapshots)
		r.Get("/campaigns/{campaignID}/budget", h.handleBudgetSnapshots)
		r.Post("/collect", h.handleCollect)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// handleCollect triggers one synchronous collection run. Campaign
// identifiers may be passed as a comma-separated `ids` query parameter;
// without them every known campaign is collected.
func (h *Handler) handleCollect(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if raw := r.URL.Query().Get("ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	res, err := h.uc.Collect(r.Context(), ids)
	if err != nil {
		h.logger.Error("collect error", slog.Any("error", err))
		http.Error(w, "collection failed", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, res)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.repo.ListCampaigns(r.Context())
	if err != nil {
		h.logger.Error("list campaigns error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, campaigns)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
