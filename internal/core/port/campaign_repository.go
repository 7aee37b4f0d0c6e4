package port

import (
	"context"
	"time"

	"github.com/Koveh/telegram-ads-collector/internal/core/domain"
	"github.com/Koveh/telegram-ads-collector/internal/series"
)

// StatsFilter bounds the read queries exposed to the dashboard. From and To
// filter on the calendar date of each snapshot, inclusive.
type StatsFilter struct {
	CampaignID string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// CampaignRepository is the outbound persistence port for the collector. It
// is the only shared mutable resource of the pipeline; implementations must
// scope writes to explicit transactions per campaign run.
type CampaignRepository interface {
	// UpsertCampaign registers a campaign as seen at seenAt. The first
	// observation sets first_seen; every later one refreshes all metadata
	// fields and last_seen while leaving first_seen untouched.
	UpsertCampaign(ctx context.Context, info domain.CampaignInfo, seenAt time.Time) error

	// SaveStats reconciles one run's merged rows into the snapshot tables
	// within a single transaction. Every numeric column is merged with a
	// per-column maximum so that re-collection never regresses a
	// previously observed value; a side whose export was absent this run
	// is not written at all.
	SaveStats(ctx context.Context, m series.Merged) error

	// ListCampaignIDs returns known campaign identifiers, optionally only
	// the ones whose last observed status was active.
	ListCampaignIDs(ctx context.Context, activeOnly bool) ([]string, error)

	// ListCampaigns returns the full registry, most recently seen first.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)

	// ListMetricSnapshots returns views/clicks history for one campaign in
	// ascending date order.
	ListMetricSnapshots(ctx context.Context, f StatsFilter) ([]domain.MetricSnapshot, error)

	// ListBudgetSnapshots returns spend history for one campaign in
	// ascending date order.
	ListBudgetSnapshots(ctx context.Context, f StatsFilter) ([]domain.BudgetSnapshot, error)
}
