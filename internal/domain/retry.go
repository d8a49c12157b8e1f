package domain

import (
	"fmt"
	"time"
)

// SyncState is the last state successfully pushed to the platform for one
// campaign. The reconciler compares platform status against it.
type SyncState struct {
	ID               int64          `db:"id"`
	CampaignID       string         `db:"campaign_id"`
	LastSyncedStatus CampaignStatus `db:"last_synced_status"`
	LastSyncedAt     time.Time      `db:"last_synced_at"`
	TotalSynced      int64          `db:"total_synced"`
}

// RetryJob is the payload of the "retry failed syncs" background job.
type RetryJob struct {
	UserID     string `json:"userId"`
	MaxRetries *int   `json:"maxRetries,omitempty"`
}

// RetryResult is returned to the job system after one retry pass.
type RetryResult struct {
	Processed         int `json:"processed"`
	Succeeded         int `json:"succeeded"`
	Failed            int `json:"failed"`
	Skipped           int `json:"skipped"`
	PermanentFailures int `json:"permanentFailures"`
}

// MaxRetriesExceededMessage builds the permanent failure reason. Alerting
// matches on the "Max retries (N) exceeded" prefix.
func MaxRetriesExceededMessage(maxRetries int, cause string) string {
	msg := fmt.Sprintf("Max retries (%d) exceeded", maxRetries)
	if cause != "" {
		msg += ": " + cause
	}
	return msg
}
