// Package series holds the normalized per-campaign time series parsed from
// the ad console's CSV exports and the outer-join merge that reconciles
// them into a single row set keyed by calendar date.
package series

import (
	"sort"
	"time"
)

// MetricPoint is one normalized row of the views export. A point whose
// date failed to parse carries the zero time as a null marker.
type MetricPoint struct {
	Date       time.Time
	Views      int64
	Clicks     int64
	StartedBot int64
}

// BudgetPoint is one normalized row of the budget export.
type BudgetPoint struct {
	Date  time.Time
	Spent float64
}

// MetricSeries is the normalized views export. A nil series means the
// export was unavailable this run; a non-nil empty series was fetched but
// contributed no rows.
type MetricSeries []MetricPoint

// BudgetSeries is the normalized budget export, with the same nil/empty
// convention as MetricSeries.
type BudgetSeries []BudgetPoint

// Merged is one campaign's reconciled row set for a single collection run.
// CollectedAt stamps every row with the time this run re-observed it; the
// metric itself is dated by Row.Date. HasMetrics and HasBudget record which
// exports were present: an absent series must leave the corresponding
// stored columns untouched, so the writer skips that side entirely.
type Merged struct {
	CampaignID  string
	CollectedAt time.Time
	HasMetrics  bool
	HasBudget   bool
	Rows        []Row
	Dropped     int
}

// Row is one merged per-date record. Counters a source table lacked for
// this date are zero-filled.
type Row struct {
	Date       time.Time
	Views      int64
	Clicks     int64
	StartedBot int64
	Spent      float64
}

// Empty reports whether the merge produced no usable rows.
func (m Merged) Empty() bool { return len(m.Rows) == 0 }

// Merge performs a full outer join of the two series on the date key. With
// one series present the merge is the identity on that series; with none
// the result is empty. Points with the zero-time null marker cannot address
// a per-date row and are dropped, counted in Dropped. Rows come back in
// ascending date order.
func Merge(campaignID string, collectedAt time.Time, metrics MetricSeries, budget BudgetSeries) Merged {
	m := Merged{
		CampaignID:  campaignID,
		CollectedAt: collectedAt,
		HasMetrics:  metrics != nil,
		HasBudget:   budget != nil,
	}

	byDate := make(map[time.Time]*Row, len(metrics)+len(budget))
	dates := make([]time.Time, 0, len(metrics)+len(budget))
	row := func(d time.Time) *Row {
		if r, ok := byDate[d]; ok {
			return r
		}
		r := &Row{Date: d}
		byDate[d] = r
		dates = append(dates, d)
		return r
	}

	for _, p := range metrics {
		if p.Date.IsZero() {
			m.Dropped++
			continue
		}
		r := row(p.Date)
		r.Views, r.Clicks, r.StartedBot = p.Views, p.Clicks, p.StartedBot
	}
	for _, p := range budget {
		if p.Date.IsZero() {
			m.Dropped++
			continue
		}
		row(p.Date).Spent = p.Spent
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	m.Rows = make([]Row, 0, len(dates))
	for _, d := range dates {
		m.Rows = append(m.Rows, *byDate[d])
	}
	return m
}
