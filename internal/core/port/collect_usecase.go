package port

import "context"

// CollectUseCase is the single entry point the scheduling wrapper calls:
// one full pipeline pass over the given campaigns, returning when the run
// is done.
type CollectUseCase interface {
	// Collect processes the given campaign identifiers strictly one at a
	// time, or every known campaign when none are given. Per-campaign
	// transport and parse failures are recovered by skipping that
	// campaign; a persistence failure aborts the batch and is returned,
	// with previously committed campaigns left intact.
	Collect(ctx context.Context, campaignIDs []string) (*CollectResult, error)
}

// CollectResult summarizes one collection run.
type CollectResult struct {
	RunID     string `json:"run_id"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
}
