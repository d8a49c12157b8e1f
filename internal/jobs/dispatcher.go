// Package jobs decodes background job messages and hands them to the sync
// engine.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"

	"campaign_sync/internal/domain"
)

type Type string

const (
	TypeSyncCampaignSet  Type = "sync_campaign_set"
	TypeRetryFailedSyncs Type = "retry_failed_syncs"
)

// Envelope is the message body of every job.
type Envelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SyncPayload asks for one campaign set to be synced against a freshly
// generated campaign list.
type SyncPayload struct {
	JobID         string            `json:"jobId"`
	CampaignSetID string            `json:"campaignSetId"`
	Campaigns     []domain.Campaign `json:"campaigns"`
}

// ErrMalformed marks messages that can never be processed.
var ErrMalformed = errors.New("malformed job")

type SetSyncer interface {
	SyncCampaignSet(ctx context.Context, jobID, setID string, generated []domain.Campaign) (*domain.DiffSyncResult, error)
}

type RetryHandler interface {
	Handle(ctx context.Context, job domain.RetryJob) (*domain.RetryResult, error)
}

type Dispatcher struct {
	syncer SetSyncer
	retry  RetryHandler
	logger *slog.Logger
}

func NewDispatcher(syncer SetSyncer, retry RetryHandler, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		syncer: syncer,
		retry:  retry,
		logger: logger.With("component", "jobs"),
	}
}

// Dispatch runs the job encoded in body. Entity-level sync failures are part
// of the job result and do not produce an error.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.Type {
	case TypeSyncCampaignSet:
		var p SyncPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("%w: sync payload: %v", ErrMalformed, err)
		}
		if p.CampaignSetID == "" {
			return fmt.Errorf("%w: campaignSetId is required", ErrMalformed)
		}

		result, err := d.syncer.SyncCampaignSet(ctx, p.JobID, p.CampaignSetID, p.Campaigns)
		if err != nil {
			return fmt.Errorf("sync campaign set %s: %w", p.CampaignSetID, err)
		}
		d.logger.Info("sync job finished",
			"job_id", p.JobID,
			"campaign_set_id", p.CampaignSetID,
			"success", result.Success,
			"created", result.Created,
			"updated", result.Updated,
			"removed", result.Removed,
			"errors", len(result.Errors),
		)
		return nil

	case TypeRetryFailedSyncs:
		var job domain.RetryJob
		if err := json.Unmarshal(env.Payload, &job); err != nil {
			return fmt.Errorf("%w: retry payload: %v", ErrMalformed, err)
		}
		if job.UserID == "" {
			return fmt.Errorf("%w: userId is required", ErrMalformed)
		}

		result, err := d.retry.Handle(ctx, job)
		if err != nil {
			return fmt.Errorf("retry failed syncs for %s: %w", job.UserID, err)
		}
		d.logger.Info("retry job finished",
			"user_id", job.UserID,
			"processed", result.Processed,
			"succeeded", result.Succeeded,
			"failed", result.Failed,
			"skipped", result.Skipped,
			"permanent_failures", result.PermanentFailures,
		)
		return nil

	default:
		return fmt.Errorf("%w: unknown type %q", ErrMalformed, env.Type)
	}
}
