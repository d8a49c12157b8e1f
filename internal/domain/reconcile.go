package domain

import "time"

type SyncBackOutcome string

const (
	SyncBackUpdated   SyncBackOutcome = "updated"
	SyncBackConflict  SyncBackOutcome = "conflict"
	SyncBackUnchanged SyncBackOutcome = "unchanged"
	SyncBackError     SyncBackOutcome = "error"
	// SyncBackDeleted means the platform no longer knows the campaign.
	SyncBackDeleted   SyncBackOutcome = "deleted"
)

// StatusConflict holds both sides of a field that changed locally and on
// the platform since the last sync. It is left for the caller to resolve.
type StatusConflict struct {
	Field       string         `json:"field"`
	LocalValue  CampaignStatus `json:"localValue"`
	RemoteValue CampaignStatus `json:"remoteValue"`
}

type CampaignSyncBack struct {
	CampaignID         string          `json:"campaignId"`
	CampaignSetID      string          `json:"campaignSetId"`
	PlatformCampaignID string          `json:"platformCampaignId"`
	Outcome            SyncBackOutcome `json:"outcome"`
	LocalStatus        CampaignStatus  `json:"localStatus"`
	RemoteStatus       CampaignStatus  `json:"remoteStatus,omitempty"`
	Conflict           *StatusConflict `json:"conflict,omitempty"`
	Error              string          `json:"error,omitempty"`
}

// SyncBackSummary reports the outcome of one reconciliation pass.
type SyncBackSummary struct {
	Platform  Platform           `json:"platform"`
	Checked   int                `json:"checked"`
	Updated   int                `json:"updated"`
	Conflicts int                `json:"conflicts"`
	Unchanged int                `json:"unchanged"`
	Errors    int                `json:"errors"`
	Deleted   int                `json:"deleted"`
	Results   []CampaignSyncBack `json:"results"`
	Duration  time.Duration      `json:"duration"`
}

func (s *SyncBackSummary) Add(r CampaignSyncBack) {
	s.Checked++
	switch r.Outcome {
	case SyncBackUpdated:
		s.Updated++
	case SyncBackConflict:
		s.Conflicts++
	case SyncBackUnchanged:
		s.Unchanged++
	case SyncBackError:
		s.Errors++
	case SyncBackDeleted:
		s.Deleted++
	}
	s.Results = append(s.Results, r)
}
