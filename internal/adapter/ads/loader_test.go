package ads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Koveh/telegram-ads-collector/internal/series"
)

func newTestServer(t *testing.T, routes map[string]string) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, "test-agent", 5*time.Second)
}

func TestFetchMetricSeries(t *testing.T) {
	_, c := newTestServer(t, map[string]string{
		"/export/views": "date\tViews\tClicks\tStarted bot\n" +
			"2024-01-01\t100\t5\t2\n" +
			"2024-01-02\t200\t8\t3\n",
	})

	got, err := c.FetchMetricSeries(context.Background(), "/export/views")

	require.NoError(t, err)
	assert.Equal(t, series.MetricSeries{
		{Date: day("2024-01-01"), Views: 100, Clicks: 5, StartedBot: 2},
		{Date: day("2024-01-02"), Views: 200, Clicks: 8, StartedBot: 3},
	}, got)
}

func TestFetchMetricSeriesSynthesizesMissingColumns(t *testing.T) {
	_, c := newTestServer(t, map[string]string{
		"/export/views": "date\tViews\n2024-01-02\t70\n",
	})

	got, err := c.FetchMetricSeries(context.Background(), "/export/views")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(70), got[0].Views)
	assert.Zero(t, got[0].Clicks)
	assert.Zero(t, got[0].StartedBot)
}

func TestFetchMetricSeriesKeepsUnparseableDateAsNullMarker(t *testing.T) {
	_, c := newTestServer(t, map[string]string{
		"/export/views": "date\tViews\tClicks\tStarted bot\n" +
			"not-a-date\t50\t1\t0\n" +
			"2024-01-03\t60\t2\t1\n",
	})

	got, err := c.FetchMetricSeries(context.Background(), "/export/views")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Date.IsZero())
	assert.Equal(t, int64(50), got[0].Views)
	assert.Equal(t, day("2024-01-03"), got[1].Date)
}

func TestFetchBudgetSeriesNormalizesCommaDecimal(t *testing.T) {
	_, c := newTestServer(t, map[string]string{
		"/export/budget": "date\tSpent budget, TON\n" +
			"2024-01-01\t1,50\n" +
			"2024-01-02\tn/a\n",
	})

	got, err := c.FetchBudgetSeries(context.Background(), "/export/budget")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 1.50, got[0].Spent, 1e-9)
	// non-numeric residue becomes zero, the row itself survives
	assert.Zero(t, got[1].Spent)
	assert.Equal(t, day("2024-01-02"), got[1].Date)
}

func TestFetchSeriesTransportFailure(t *testing.T) {
	_, c := newTestServer(t, nil)

	_, err := c.FetchMetricSeries(context.Background(), "/gone")
	assert.Error(t, err)

	_, err = c.FetchBudgetSeries(context.Background(), "/gone")
	assert.Error(t, err)
}

func TestFetchCampaignInfoOverHTTP(t *testing.T) {
	_, c := newTestServer(t, map[string]string{
		"/stats/yB38m696d4qybz4d": samplePage,
	})

	info, err := c.FetchCampaignInfo(context.Background(), "yB38m696d4qybz4d")

	require.NoError(t, err)
	assert.Equal(t, strp("Dietary Assistant"), info.Title)
	assert.Len(t, info.ExportLinks, 2)
}

func TestFetchCampaignInfoTransportFailure(t *testing.T) {
	_, c := newTestServer(t, nil)

	_, err := c.FetchCampaignInfo(context.Background(), "missing")
	assert.Error(t, err)
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
