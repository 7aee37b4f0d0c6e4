package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Koveh/telegram-ads-collector/internal/core/domain"
	"github.com/Koveh/telegram-ads-collector/internal/core/port"
	"github.com/Koveh/telegram-ads-collector/internal/series"
)

// CampaignRepository implements port.CampaignRepository using pgxpool
// against the ads schema.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// UpsertCampaign registers the campaign as seen at seenAt. first_seen is
// written only by the initial insert; a later run refreshes all metadata
// fields and last_seen in place.
func (r *CampaignRepository) UpsertCampaign(ctx context.Context, info domain.CampaignInfo, seenAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO ads.campaigns
            (campaign_id, title, description, bot_link, target_channel,
             first_seen, last_seen, is_active, last_status, cpm, views)
        VALUES ($1,$2,$3,$4,$5,$6,$6,$7,$8,$9,$10)
        ON CONFLICT (campaign_id) DO UPDATE SET
            title          = EXCLUDED.title,
            description    = EXCLUDED.description,
            bot_link       = EXCLUDED.bot_link,
            target_channel = EXCLUDED.target_channel,
            last_seen      = EXCLUDED.last_seen,
            is_active      = EXCLUDED.is_active,
            last_status    = EXCLUDED.last_status,
            cpm            = EXCLUDED.cpm,
            views          = EXCLUDED.views`,
		info.CampaignID, info.Title, info.Description, info.BotLink, info.TargetChannel,
		seenAt, info.IsActive, info.Status, info.CPM, info.Views)
	if err != nil {
		return fmt.Errorf("upsert campaign %s: %w", info.CampaignID, err)
	}
	return nil
}

// Reconciliation statements. GREATEST keeps each counter monotonically
// non-decreasing per (campaign_id, date): upstream re-exports of a
// historical date can report smaller counts than a prior export, and the
// maximum is the only safe interpretation without a "final" marker from
// upstream. The conflict target is a hard unique constraint, so the
// update-to-greater is atomic and safe under concurrent runs.
const (
	upsertViewsSQL = `
        INSERT INTO ads.views_stats AS vs
            (campaign_id, date, views, clicks, started_bot, collected_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (campaign_id, date) DO UPDATE SET
            views        = GREATEST(vs.views, EXCLUDED.views),
            clicks       = GREATEST(vs.clicks, EXCLUDED.clicks),
            started_bot  = GREATEST(vs.started_bot, EXCLUDED.started_bot),
            collected_at = EXCLUDED.collected_at`

	upsertBudgetSQL = `
        INSERT INTO ads.budget_stats AS bs
            (campaign_id, date, spent_budget, collected_at)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (campaign_id, date) DO UPDATE SET
            spent_budget = GREATEST(bs.spent_budget, EXCLUDED.spent_budget),
            collected_at = EXCLUDED.collected_at`
)

// SaveStats reconciles one run's merged rows inside a single transaction.
// A side whose export was absent this run is not written at all, so a
// partial observation can never reset stored values.
func (r *CampaignRepository) SaveStats(ctx context.Context, m series.Merged) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, row := range m.Rows {
		if m.HasMetrics {
			if _, err = tx.Exec(ctx, upsertViewsSQL,
				m.CampaignID, row.Date, row.Views, row.Clicks, row.StartedBot, m.CollectedAt); err != nil {
				return fmt.Errorf("reconcile views row %s: %w", row.Date.Format(time.DateOnly), err)
			}
		}
		if m.HasBudget {
			if _, err = tx.Exec(ctx, upsertBudgetSQL,
				m.CampaignID, row.Date, row.Spent, m.CollectedAt); err != nil {
				return fmt.Errorf("reconcile budget row %s: %w", row.Date.Format(time.DateOnly), err)
			}
		}
	}
	err = tx.Commit(ctx)
	return err
}

// ListCampaignIDs returns known campaign identifiers.
func (r *CampaignRepository) ListCampaignIDs(ctx context.Context, activeOnly bool) ([]string, error) {
	q := `SELECT campaign_id FROM ads.campaigns`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY campaign_id`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// ListCampaigns returns the full registry, most recently seen first.
func (r *CampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT campaign_id, title, description, bot_link, target_channel,
               first_seen, last_seen, is_active, last_status, cpm, views
        FROM ads.campaigns
        ORDER BY last_seen DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(&c.ID, &c.Title, &c.Description, &c.BotLink, &c.TargetChannel,
			&c.FirstSeen, &c.LastSeen, &c.IsActive, &c.LastStatus, &c.CPM, &c.Views)
		return c, err
	})
}

// ListMetricSnapshots returns views/clicks history for one campaign.
func (r *CampaignRepository) ListMetricSnapshots(ctx context.Context, f port.StatsFilter) ([]domain.MetricSnapshot, error) {
	q := `SELECT id, campaign_id, collected_at, views, clicks, started_bot, date
          FROM ads.views_stats WHERE campaign_id = $1`
	q, args := applyFilter(q, f)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MetricSnapshot, error) {
		var s domain.MetricSnapshot
		err := row.Scan(&s.ID, &s.CampaignID, &s.CollectedAt, &s.Views, &s.Clicks, &s.StartedBot, &s.Date)
		return s, err
	})
}

// ListBudgetSnapshots returns spend history for one campaign.
func (r *CampaignRepository) ListBudgetSnapshots(ctx context.Context, f port.StatsFilter) ([]domain.BudgetSnapshot, error) {
	q := `SELECT id, campaign_id, collected_at, spent_budget, date
          FROM ads.budget_stats WHERE campaign_id = $1`
	q, args := applyFilter(q, f)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BudgetSnapshot, error) {
		var s domain.BudgetSnapshot
		err := row.Scan(&s.ID, &s.CampaignID, &s.CollectedAt, &s.SpentBudget, &s.Date)
		return s, err
	})
}

func applyFilter(q string, f port.StatsFilter) (string, []any) {
	args := []any{f.CampaignID}
	if f.From != nil {
		args = append(args, *f.From)
		q += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		q += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	q += " ORDER BY date"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return q, args
}
