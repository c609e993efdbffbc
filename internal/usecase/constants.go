package usecase

import "time"

const (
	// trialBalanceCacheKey holds the current trial balance snapshot.
	trialBalanceCacheKey = "report:trial_balance"
	trialBalanceCacheTTL = 5 * time.Minute

	// backfillBatchSize is how many legacy rows one backfill pass reads at a
	// time. Each row commits independently so an interrupted run loses at
	// most the row in flight.
	backfillBatchSize = 200
)
