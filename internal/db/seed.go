package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts a few demo campaigns with a month of snapshot history so
// the serve mode has data to show without a live collection run. Existing
// rows are left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	for i := 1; i <= 3; i++ {
		campaignID := fmt.Sprintf("demo%011d", i)
		title := fmt.Sprintf("Demo campaign %d", i)
		desc := "Seeded campaign for dashboard development"
		botLink := fmt.Sprintf("https://t.me/demo_bot_%d", i)
		channel := fmt.Sprintf("@demo_channel_%d", i)
		status := "Active"
		cpm := 1.0 + r.Float64()*3
		_, err := pool.Exec(ctx, `INSERT INTO ads.campaigns
    (campaign_id, title, description, bot_link, target_channel,
     first_seen, last_seen, is_active, last_status, cpm, views)
VALUES ($1,$2,$3,$4,$5,$6,$6,TRUE,$7,$8,0) ON CONFLICT DO NOTHING`,
			campaignID, title, desc, botLink, channel, now, status, cpm)
		if err != nil {
			return err
		}

		views := int64(0)
		spent := 0.0
		for d := 30; d >= 1; d-- {
			date := now.AddDate(0, 0, -d)
			dayViews := int64(r.Intn(5000))
			views += dayViews
			clicks := dayViews / int64(10+r.Intn(20))
			started := clicks / 2
			_, err = pool.Exec(ctx, `INSERT INTO ads.views_stats
    (campaign_id, date, views, clicks, started_bot, collected_at)
VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT DO NOTHING`,
				campaignID, date, dayViews, clicks, started, now)
			if err != nil {
				return err
			}

			spent += float64(dayViews) * cpm / 1000
			_, err = pool.Exec(ctx, `INSERT INTO ads.budget_stats
    (campaign_id, date, spent_budget, collected_at)
VALUES ($1,$2,$3,$4) ON CONFLICT DO NOTHING`,
				campaignID, date, spent, now)
			if err != nil {
				return err
			}
		}

		_, err = pool.Exec(ctx, `UPDATE ads.campaigns SET views = $2 WHERE campaign_id = $1`,
			campaignID, views)
		if err != nil {
			return err
		}
	}
	return nil
}
