package ads

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/Koveh/telegram-ads-collector/internal/series"
)

// Export column headers as the console emits them.
const (
	colDate        = "date"
	colViews       = "Views"
	colClicks      = "Clicks"
	colStartedBot  = "Started bot"
	colSpentBudget = "Spent budget, TON"
)

// FetchMetricSeries downloads and normalizes the views export. Count
// columns missing from the export are synthesized as zero so the merge
// always sees a stable column set.
func (c *Client) FetchMetricSeries(ctx context.Context, link string) (series.MetricSeries, error) {
	rows, err := c.fetchTable(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("views export: %w", err)
	}
	out := make(series.MetricSeries, 0, len(rows))
	for _, row := range rows {
		out = append(out, series.MetricPoint{
			Date:       parseDate(row[colDate]),
			Views:      countValue(row[colViews]),
			Clicks:     countValue(row[colClicks]),
			StartedBot: countValue(row[colStartedBot]),
		})
	}
	return out, nil
}

// FetchBudgetSeries downloads and normalizes the budget export, renaming
// the "Spent budget, TON" column to the spent amount and fixing the
// comma-decimal locale artifact.
func (c *Client) FetchBudgetSeries(ctx context.Context, link string) (series.BudgetSeries, error) {
	rows, err := c.fetchTable(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("budget export: %w", err)
	}
	out := make(series.BudgetSeries, 0, len(rows))
	for _, row := range rows {
		out = append(out, series.BudgetPoint{
			Date:  parseDate(row[colDate]),
			Spent: budgetValue(row[colSpentBudget]),
		})
	}
	return out, nil
}

// fetchTable fetches a tab-delimited export and returns its data rows as
// header-keyed maps. Short rows are tolerated; their missing cells simply
// stay absent from the map.
func (c *Client) fetchTable(ctx context.Context, link string) ([]map[string]string, error) {
	body, err := c.get(ctx, link)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[strings.TrimSpace(col)] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseDate normalizes an export date to UTC calendar granularity. A value
// that does not parse becomes the zero time, the null marker dropped by
// the merge; a bad date never fails the whole load.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// countValue reads a counter cell; anything absent or non-numeric is zero.
func countValue(v string) int64 {
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(v, ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// budgetValue reads a spend cell, normalizing "1,50" to 1.50 first.
// Non-numeric residue is zero rather than an error.
func budgetValue(v string) float64 {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}
