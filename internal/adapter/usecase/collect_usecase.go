package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Koveh/telegram-ads-collector/internal/core/domain"
	"github.com/Koveh/telegram-ads-collector/internal/core/port"
	"github.com/Koveh/telegram-ads-collector/internal/series"
)

// errSkipped marks per-campaign failures that are recovered locally: the
// batch logs, counts the campaign as skipped and moves on.
var errSkipped = errors.New("campaign skipped")

// CollectUseCase runs the campaign statistics reconciliation pipeline:
// extract metadata from the status page, register the campaign, load both
// exports, merge them on the date key and reconcile the result into
// storage. Campaigns are processed strictly one at a time; the pipeline
// keeps no state between runs, every run re-reads prior state from storage
// through the reconciling writes.
type CollectUseCase struct {
	source port.CampaignSource
	repo   port.CampaignRepository
	logger *slog.Logger

	now func() time.Time
}

// NewCollectUseCase creates the pipeline over the given source and
// repository ports.
func NewCollectUseCase(source port.CampaignSource, repo port.CampaignRepository, logger *slog.Logger) *CollectUseCase {
	return &CollectUseCase{source: source, repo: repo, logger: logger, now: time.Now}
}

// Collect runs the pipeline once over the given campaign identifiers, or
// over every known campaign when none are given. Transport and parse
// failures skip the affected campaign and the loop proceeds; a persistence
// failure aborts the batch and is returned so the caller decides whether
// to retry. Already reconciled campaigns stay committed either way, and
// re-running is safe because reconciliation is idempotent.
func (u *CollectUseCase) Collect(ctx context.Context, campaignIDs []string) (*port.CollectResult, error) {
	res := &port.CollectResult{RunID: uuid.NewString()}
	logger := u.logger.With(slog.String("run_id", res.RunID))

	if len(campaignIDs) == 0 {
		var err error
		campaignIDs, err = u.repo.ListCampaignIDs(ctx, false)
		if err != nil {
			return res, fmt.Errorf("list known campaigns: %w", err)
		}
	}
	if len(campaignIDs) == 0 {
		logger.Warn("no campaigns to collect")
		return res, nil
	}

	logger.Info("collection started", slog.Int("campaigns", len(campaignIDs)))
	for _, id := range campaignIDs {
		if err := u.collectOne(ctx, logger, id); err != nil {
			res.Skipped++
			if errors.Is(err, errSkipped) {
				continue
			}
			logger.Error("collection aborted",
				slog.String("campaign_id", id), slog.Any("error", err))
			return res, err
		}
		res.Processed++
	}
	logger.Info("collection finished",
		slog.Int("processed", res.Processed), slog.Int("skipped", res.Skipped))
	return res, nil
}

// collectOne is one campaign's unit of work. It returns errSkipped for
// locally recovered failures and a real error for persistence failures.
func (u *CollectUseCase) collectOne(ctx context.Context, logger *slog.Logger, campaignID string) error {
	logger = logger.With(slog.String("campaign_id", campaignID))

	info, err := u.source.FetchCampaignInfo(ctx, campaignID)
	if err != nil {
		logger.Warn("campaign page unreachable", slog.Any("error", err))
		return errSkipped
	}

	collectedAt := u.now().UTC()
	if err = u.repo.UpsertCampaign(ctx, *info, collectedAt); err != nil {
		return fmt.Errorf("register campaign: %w", err)
	}

	// The two exports are independent resources: one failing to load must
	// not block the other, and a campaign with a single export is valid.
	var metrics series.MetricSeries
	if link, ok := info.ExportLinks[domain.ExportViews]; ok {
		if metrics, err = u.source.FetchMetricSeries(ctx, link); err != nil {
			logger.Warn("views export unavailable", slog.Any("error", err))
			metrics = nil
		}
	}
	var budget series.BudgetSeries
	if link, ok := info.ExportLinks[domain.ExportBudget]; ok {
		if budget, err = u.source.FetchBudgetSeries(ctx, link); err != nil {
			logger.Warn("budget export unavailable", slog.Any("error", err))
			budget = nil
		}
	}

	merged := series.Merge(campaignID, collectedAt, metrics, budget)
	if merged.Dropped > 0 {
		logger.Warn("rows without a parseable date dropped", slog.Int("rows", merged.Dropped))
	}
	if merged.Empty() {
		logger.Warn("no statistics available")
		return errSkipped
	}

	if err = u.repo.SaveStats(ctx, merged); err != nil {
		return fmt.Errorf("reconcile stats: %w", err)
	}
	logger.Info("campaign reconciled",
		slog.Int("rows", len(merged.Rows)), slog.Bool("active", info.IsActive))
	return nil
}
