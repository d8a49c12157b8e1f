package domain

import "time"

type SyncEventType string

const (
	SyncEventProgress  SyncEventType = "progress"
	SyncEventCompleted SyncEventType = "completed"
	SyncEventError     SyncEventType = "error"
)

// SyncEvent is published while a campaign set sync job runs.
type SyncEvent struct {
	JobID         string          `json:"jobId"`
	Type          SyncEventType   `json:"type"`
	CampaignSetID string          `json:"campaignSetId"`
	Done          int             `json:"done"`
	Total         int             `json:"total"`
	Message       string          `json:"message,omitempty"`
	Result        *DiffSyncResult `json:"result,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Terminal reports whether the event ends the job stream.
func (e SyncEvent) Terminal() bool {
	return e.Type == SyncEventCompleted || e.Type == SyncEventError
}

// Channel returns the channel the event is published on: progress ticks go
// to sync:{jobId}, terminal events to sync:{jobId}:done.
func (e SyncEvent) Channel() string {
	if e.Terminal() {
		return DoneChannel(e.JobID)
	}
	return ProgressChannel(e.JobID)
}

func ProgressChannel(jobID string) string {
	return "sync:" + jobID
}

func DoneChannel(jobID string) string {
	return "sync:" + jobID + ":done"
}
