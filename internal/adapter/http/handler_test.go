package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Koveh/telegram-ads-collector/internal/core/domain"
	"github.com/Koveh/telegram-ads-collector/internal/core/port"
	"github.com/Koveh/telegram-ads-collector/internal/series"
)

type stubRepo struct {
	campaigns []domain.Campaign
	metrics   []domain.MetricSnapshot
	budgets   []domain.BudgetSnapshot

	lastFilter port.StatsFilter
	err        error
}

func (s *stubRepo) UpsertCampaign(context.Context, domain.CampaignInfo, time.Time) error {
	return nil
}

func (s *stubRepo) SaveStats(context.Context, series.Merged) error { return nil }

func (s *stubRepo) ListCampaignIDs(context.Context, bool) ([]string, error) { return nil, nil }

func (s *stubRepo) ListCampaigns(context.Context) ([]domain.Campaign, error) {
	return s.campaigns, s.err
}

func (s *stubRepo) ListMetricSnapshots(_ context.Context, f port.StatsFilter) ([]domain.MetricSnapshot, error) {
	s.lastFilter = f
	return s.metrics, s.err
}

func (s *stubRepo) ListBudgetSnapshots(_ context.Context, f port.StatsFilter) ([]domain.BudgetSnapshot, error) {
	s.lastFilter = f
	return s.budgets, s.err
}

type stubCollector struct {
	lastIDs []string
	res     *port.CollectResult
	err     error
}

func (s *stubCollector) Collect(_ context.Context, ids []string) (*port.CollectResult, error) {
	s.lastIDs = ids
	return s.res, s.err
}

func newTestHandler(repo port.CampaignRepository, uc port.CollectUseCase) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(repo, uc, logger)
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&stubRepo{}, &stubCollector{})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListCampaigns(t *testing.T) {
	title := "Dietary Assistant"
	repo := &stubRepo{campaigns: []domain.Campaign{
		{ID: "yB38m696d4qybz4d", Title: &title, IsActive: true},
	}}
	h := newTestHandler(repo, &stubCollector{})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []domain.Campaign
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "yB38m696d4qybz4d", got[0].ID)
}

func TestMetricSnapshotsFilterParsing(t *testing.T) {
	repo := &stubRepo{}
	h := newTestHandler(repo, &stubCollector{})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/campaigns/c1/views?from=2024-01-01&to=2024-01-31&limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c1", repo.lastFilter.CampaignID)
	require.NotNil(t, repo.lastFilter.From)
	assert.Equal(t, "2024-01-01", repo.lastFilter.From.Format(time.DateOnly))
	require.NotNil(t, repo.lastFilter.To)
	assert.Equal(t, "2024-01-31", repo.lastFilter.To.Format(time.DateOnly))
	assert.Equal(t, 10, repo.lastFilter.Limit)
}

func TestStatsBadParamsRejected(t *testing.T) {
	h := newTestHandler(&stubRepo{}, &stubCollector{})

	for _, target := range []string{
		"/api/v1/campaigns/c1/views?from=January",
		"/api/v1/campaigns/c1/budget?to=2024-13-45",
		"/api/v1/campaigns/c1/views?limit=-1",
		"/api/v1/campaigns/c1/budget?limit=ten",
	} {
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestStatsRepositoryError(t *testing.T) {
	repo := &stubRepo{err: errors.New("boom")}
	h := newTestHandler(repo, &stubCollector{})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/c1/budget", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCollectSplitsIDs(t *testing.T) {
	uc := &stubCollector{res: &port.CollectResult{RunID: "r1", Processed: 2}}
	h := newTestHandler(&stubRepo{}, uc)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/v1/collect?ids=c1,%20c2,", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"c1", "c2"}, uc.lastIDs)

	var got port.CollectResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Processed)
}

func TestCollectErrorSurfacesAs500(t *testing.T) {
	uc := &stubCollector{err: errors.New("storage down")}
	h := newTestHandler(&stubRepo{}, uc)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/collect", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, uc.lastIDs)
}
