package port

import (
	"context"

	"github.com/Koveh/telegram-ads-collector/internal/core/domain"
	"github.com/Koveh/telegram-ads-collector/internal/series"
)

// CampaignSource is the outbound port to the ad platform. Fetches are
// blocking network calls; implementations carry a bounded timeout so one
// unreachable campaign cannot stall the whole batch.
type CampaignSource interface {
	// FetchCampaignInfo downloads and parses the campaign status page.
	// Transport failures surface as errors; structural gaps in the page do
	// not, they yield nil fields on the returned record instead.
	FetchCampaignInfo(ctx context.Context, campaignID string) (*domain.CampaignInfo, error)

	// FetchMetricSeries downloads and normalizes the views export behind a
	// service-relative link.
	FetchMetricSeries(ctx context.Context, link string) (series.MetricSeries, error)

	// FetchBudgetSeries downloads and normalizes the budget export behind
	// a service-relative link.
	FetchBudgetSeries(ctx context.Context, link string) (series.BudgetSeries, error)
}
