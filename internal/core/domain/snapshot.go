package domain

import "time"

// MetricSnapshot is the persisted views/clicks row for one campaign on one
// calendar date. At most one row exists per (campaign_id, date); each
// counter only ever grows across collection runs.
type MetricSnapshot struct {
	ID          int64     `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	CollectedAt time.Time `json:"collected_at"`
	Views       int64     `json:"views"`
	Clicks      int64     `json:"clicks"`
	StartedBot  int64     `json:"started_bot"`
	Date        time.Time `json:"date"`
}

// BudgetSnapshot is the persisted spend row for one campaign on one
// calendar date, with the same uniqueness and monotonic-max rule applied
// to SpentBudget.
type BudgetSnapshot struct {
	ID          int64     `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	CollectedAt time.Time `json:"collected_at"`
	SpentBudget float64   `json:"spent_budget"`
	Date        time.Time `json:"date"`
}
