package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campaign_sync/internal/config"
	"campaign_sync/internal/domain"
	"campaign_sync/internal/metrics"
	"campaign_sync/internal/platform"
)

// Reconciler polls platforms for the status of synced campaigns and brings
// platform-side changes back into the local store. Conflicting edits are
// flagged and never overwritten.
type Reconciler struct {
	repo      Repository
	syncState SyncStateStore
	txManager TransactionManager
	adapters  AdapterRegistry
	breakers  BreakerRegistry
	logger    *slog.Logger
	config    config.SyncConfig
	now       func() time.Time
}

func NewReconciler(
	repo Repository,
	syncState SyncStateStore,
	txManager TransactionManager,
	adapters AdapterRegistry,
	breakers BreakerRegistry,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *Reconciler {
	return &Reconciler{
		repo:      repo,
		syncState: syncState,
		txManager: txManager,
		adapters:  adapters,
		breakers:  breakers,
		logger:    logger.With("component", "reconciler"),
		config:    cfg,
		now:       time.Now,
	}
}

// Run polls every registered platform once.
func (r *Reconciler) Run(ctx context.Context) error {
	var errs []error
	for _, p := range r.adapters.Platforms() {
		if _, err := r.Poll(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("poll %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// Poll checks all synced campaigns of one platform. Failures on a single
// campaign are recorded in the summary and polling continues.
func (r *Reconciler) Poll(ctx context.Context, platformName string) (*domain.SyncBackSummary, error) {
	startTime := time.Now()
	summary := &domain.SyncBackSummary{Platform: platformName}

	adapter, ok := r.adapters.Get(platformName)
	if !ok {
		return summary, &domain.SyncError{
			Code:     domain.ErrCodeNoAdapter,
			Platform: platformName,
			Message:  fmt.Sprintf("no adapter registered for platform %q", platformName),
		}
	}

	campaigns, err := r.repo.ListSyncedCampaigns(ctx, platformName)
	if err != nil {
		return summary, fmt.Errorf("list synced campaigns: %w", err)
	}

	r.logger.Info("polling platform", "platform", platformName, "campaigns", len(campaigns))

	cb := r.breakers.Get(platformName)
	conflictSets := make(map[string]struct{})

	for i := range campaigns {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(startTime)
			return summary, err
		}

		c := &campaigns[i]
		out := domain.CampaignSyncBack{
			CampaignID:         c.ID,
			CampaignSetID:      c.CampaignSetID,
			PlatformCampaignID: deref(c.PlatformCampaignID),
			LocalStatus:        c.Status,
		}

		if !cb.CanExecute() {
			out.Outcome = domain.SyncBackError
			out.Error = (&domain.SyncError{Code: domain.ErrCodeCircuitOpen, Platform: platformName, Message: "circuit open"}).Error()
			r.record(summary, out)
			continue
		}

		var remote domain.CampaignStatus
		err := invoke(ctx, cb, platformName, "get_campaign_status", r.config.CallTimeout, func(ctx context.Context) error {
			var err error
			remote, err = adapter.GetCampaignStatus(ctx, out.PlatformCampaignID)
			return err
		})
		if errors.Is(err, platform.ErrNotFound) {
			out.Outcome = domain.SyncBackDeleted
			msg := fmt.Sprintf("campaign %s no longer exists on %s", out.PlatformCampaignID, platformName)
			if err := r.repo.UpdateCampaignSyncStatus(ctx, c.ID, domain.SyncStatusConflict, msg); err != nil {
				r.logger.Error("failed to flag deleted campaign", "campaign_id", c.ID, "error", err)
			}
			if c.CampaignSetID != "" {
				conflictSets[c.CampaignSetID] = struct{}{}
			}
			r.record(summary, out)
			continue
		}
		if err != nil {
			out.Outcome = domain.SyncBackError
			out.Error = (&domain.SyncError{Code: domain.ErrCodeFetchFailed, Platform: platformName, Message: err.Error()}).Error()
			r.record(summary, out)
			continue
		}
		out.RemoteStatus = remote

		out.Outcome = classify(c, remote)
		switch out.Outcome {
		case domain.SyncBackUpdated:
			if err := r.applyRemote(ctx, c, remote); err != nil {
				out.Outcome = domain.SyncBackError
				out.Error = err.Error()
			}
		case domain.SyncBackConflict:
			out.Conflict = &domain.StatusConflict{
				Field:       "status",
				LocalValue:  c.Status,
				RemoteValue: remote,
			}
			msg := fmt.Sprintf("status changed locally to %s and on %s to %s", c.Status, platformName, remote)
			if err := r.repo.UpdateCampaignSyncStatus(ctx, c.ID, domain.SyncStatusConflict, msg); err != nil {
				r.logger.Error("failed to flag conflict", "campaign_id", c.ID, "error", err)
			}
			if c.CampaignSetID != "" {
				conflictSets[c.CampaignSetID] = struct{}{}
			}
		}

		r.record(summary, out)
	}

	for setID := range conflictSets {
		if err := r.repo.UpdateCampaignSetSyncStatus(ctx, setID, domain.SyncStatusConflict); err != nil {
			r.logger.Error("failed to flag campaign set conflict", "campaign_set_id", setID, "error", err)
		}
	}

	summary.Duration = time.Since(startTime)

	r.logger.Info("platform poll completed",
		"platform", platformName,
		"checked", summary.Checked,
		"updated", summary.Updated,
		"conflicts", summary.Conflicts,
		"unchanged", summary.Unchanged,
		"deleted", summary.Deleted,
		"errors", summary.Errors,
		"duration", summary.Duration,
	)

	return summary, nil
}

// classify compares the platform status with the last status we know the
// platform had: the recorded snapshot, or the local status when there is
// none.
func classify(c *domain.Campaign, remote domain.CampaignStatus) domain.SyncBackOutcome {
	lastKnown := c.Status
	if c.LastSyncedStatus != nil {
		lastKnown = *c.LastSyncedStatus
	}

	switch {
	case remote == lastKnown:
		return domain.SyncBackUnchanged
	case c.HasPendingStatusEdit() && c.Status != remote:
		return domain.SyncBackConflict
	default:
		return domain.SyncBackUpdated
	}
}

// applyRemote writes the platform status locally together with the new
// snapshot.
func (r *Reconciler) applyRemote(ctx context.Context, c *domain.Campaign, remote domain.CampaignStatus) error {
	return r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := r.repo.UpdateCampaignStatus(txCtx, c.ID, remote); err != nil {
			return fmt.Errorf("update campaign status: %w", err)
		}
		if err := r.syncState.Record(txCtx, c.ID, remote, r.now()); err != nil {
			return fmt.Errorf("record sync state: %w", err)
		}
		if err := r.repo.UpdateCampaignSyncStatus(txCtx, c.ID, domain.SyncStatusSynced, ""); err != nil {
			return fmt.Errorf("update sync status: %w", err)
		}
		return nil
	})
}

func (r *Reconciler) record(summary *domain.SyncBackSummary, out domain.CampaignSyncBack) {
	summary.Add(out)
	metrics.SyncBackOutcomes.WithLabelValues(summary.Platform, string(out.Outcome)).Inc()

	if out.Outcome == domain.SyncBackError {
		r.logger.Warn("sync-back failed",
			"platform", summary.Platform,
			"campaign_id", out.CampaignID,
			"error", out.Error,
		)
	}
}
