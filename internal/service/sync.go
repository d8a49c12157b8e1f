package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"campaign_sync/internal/config"
	"campaign_sync/internal/diff"
	"campaign_sync/internal/domain"
	"campaign_sync/internal/metrics"
	"campaign_sync/internal/validation"
)

// SyncService runs one campaign set sync job: it validates the generated
// hierarchy, diffs it against the persisted one, persists it and pushes the
// difference to the platforms.
type SyncService struct {
	repo      Repository
	txManager TransactionManager
	validator *validation.Validator
	applier   *DiffApplier
	publisher EventPublisher
	logger    *slog.Logger
	config    config.SyncConfig
}

func NewSyncService(
	repo Repository,
	txManager TransactionManager,
	validator *validation.Validator,
	applier *DiffApplier,
	publisher EventPublisher,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *SyncService {
	return &SyncService{
		repo:      repo,
		txManager: txManager,
		validator: validator,
		applier:   applier,
		publisher: publisher,
		logger:    logger.With("component", "sync"),
		config:    cfg,
	}
}

// SyncCampaignSet syncs set setID to the generated hierarchy. Campaigns that
// fail validation are left out of the push and reported as VALIDATION_FAILED;
// removals are applied regardless.
func (s *SyncService) SyncCampaignSet(ctx context.Context, jobID, setID string, generated []domain.Campaign) (*domain.DiffSyncResult, error) {
	if jobID == "" {
		jobID = uuid.NewString()
	}
	startTime := time.Now()
	logger := s.logger.With("job_id", jobID, "campaign_set_id", setID)

	if s.repo == nil || s.txManager == nil || s.applier == nil || s.validator == nil {
		err := &domain.SyncError{Code: domain.ErrCodeServiceNotConfigured, Message: "sync service is not configured"}
		s.fail(ctx, jobID, setID, err)
		return nil, err
	}

	current, err := s.repo.GetCampaignSetWithRelations(ctx, setID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && current == nil) {
		serr := &domain.SyncError{Code: domain.ErrCodeCampaignSetNotFound, Message: fmt.Sprintf("campaign set %s not found", setID)}
		s.fail(ctx, jobID, setID, serr)
		return nil, serr
	}
	if err != nil {
		s.fail(ctx, jobID, setID, err)
		return nil, fmt.Errorf("load campaign set: %w", err)
	}

	logger.Info("starting campaign set sync",
		"current_campaigns", len(current.Campaigns),
		"generated_campaigns", len(generated),
	)

	if err := s.repo.UpdateCampaignSetSyncStatus(ctx, setID, domain.SyncStatusSyncing); err != nil {
		logger.Warn("failed to mark campaign set syncing", "error", err)
	}

	invalid, validationErrs := s.validate(generated)
	if len(invalid) > 0 {
		logger.Warn("campaigns failed validation", "count", len(invalid))
	}

	d := diff.Calculate(current.Campaigns, generated)
	d = withoutCampaigns(d, invalid)

	valid := make([]domain.Campaign, 0, len(generated))
	for _, c := range generated {
		if _, bad := invalid[c.ID]; !bad {
			valid = append(valid, c)
		}
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.UpsertCampaignTree(txCtx, setID, valid)
	})
	if err != nil {
		s.fail(ctx, jobID, setID, err)
		return nil, fmt.Errorf("persist campaign tree: %w", err)
	}

	result, err := s.applier.ApplyDiff(ctx, setID, d,
		WithHeldCampaigns(invalid),
		WithProgress(func(done, total int) {
			s.publish(ctx, domain.SyncEvent{
				JobID:         jobID,
				Type:          domain.SyncEventProgress,
				CampaignSetID: setID,
				Done:          done,
				Total:         total,
			})
		}),
	)
	if err != nil {
		s.fail(ctx, jobID, setID, err)
		return result, err
	}

	for _, verr := range validationErrs {
		result.Add(verr)
		if existsIn(current, verr.EntityID) {
			if err := s.repo.UpdateCampaignSyncStatus(ctx, verr.EntityID, domain.SyncStatusFailed, verr.Message); err != nil {
				logger.Error("failed to update campaign sync status", "campaign_id", verr.EntityID, "error", err)
			}
		}
	}
	result.Finalize()

	status := setSyncStatus(result)
	if err := s.repo.UpdateCampaignSetSyncStatus(ctx, setID, status); err != nil {
		logger.Error("failed to update campaign set sync status", "error", err)
	}
	metrics.SyncJobsTotal.WithLabelValues(string(status)).Inc()

	s.publish(ctx, domain.SyncEvent{
		JobID:         jobID,
		Type:          domain.SyncEventCompleted,
		CampaignSetID: setID,
		Done:          d.Size(),
		Total:         d.Size(),
		Result:        result,
	})

	logger.Info("campaign set sync completed",
		"success", result.Success,
		"created", result.Created,
		"updated", result.Updated,
		"removed", result.Removed,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
		"duration", time.Since(startTime),
	)

	return result, nil
}

// validate returns the ids of invalid campaigns and one VALIDATION_FAILED
// error per such campaign, covering its whole subtree.
func (s *SyncService) validate(generated []domain.Campaign) (map[string]struct{}, []domain.SyncError) {
	invalid := make(map[string]struct{})
	var errs []domain.SyncError

	for i := range generated {
		c := &generated[i]
		res := s.validator.ValidateCampaign(c, c.Platform)
		if res.Valid() {
			continue
		}

		invalid[c.ID] = struct{}{}

		var serr *domain.SyncError
		if errors.As(res.Err(), &serr) {
			serr.EntityType = domain.EntityCampaign
			serr.EntityID = c.ID
			serr.Platform = c.Platform
			errs = append(errs, *serr)
		}
	}
	return invalid, errs
}

func (s *SyncService) fail(ctx context.Context, jobID, setID string, err error) {
	metrics.SyncJobsTotal.WithLabelValues(string(domain.SyncStatusFailed)).Inc()
	s.logger.Error("campaign set sync failed", "job_id", jobID, "campaign_set_id", setID, "error", err)

	if s.repo != nil && !domain.IsCode(err, domain.ErrCodeCampaignSetNotFound) {
		if uerr := s.repo.UpdateCampaignSetSyncStatus(ctx, setID, domain.SyncStatusFailed); uerr != nil {
			s.logger.Error("failed to update campaign set sync status", "campaign_set_id", setID, "error", uerr)
		}
	}

	s.publish(ctx, domain.SyncEvent{
		JobID:         jobID,
		Type:          domain.SyncEventError,
		CampaignSetID: setID,
		Message:       err.Error(),
	})
}

func (s *SyncService) publish(ctx context.Context, event domain.SyncEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = time.Now()
	if err := s.publisher.PublishSyncEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish sync event",
			"job_id", event.JobID,
			"type", event.Type,
			"error", err,
		)
	}
}

// withoutCampaigns drops additions and updates that belong to the given
// campaigns. Removals are kept.
func withoutCampaigns(d domain.CampaignSetDiff, ids map[string]struct{}) domain.CampaignSetDiff {
	if len(ids) == 0 {
		return d
	}
	skip := func(id string) bool {
		_, ok := ids[id]
		return ok
	}

	out := domain.CampaignSetDiff{
		CampaignsToRemove: d.CampaignsToRemove,
		AdGroupsToRemove:  d.AdGroupsToRemove,
		AdsToRemove:       d.AdsToRemove,
		KeywordsToRemove:  d.KeywordsToRemove,
	}
	for _, c := range d.CampaignsToAdd {
		if !skip(c.ID) {
			out.CampaignsToAdd = append(out.CampaignsToAdd, c)
		}
	}
	for _, u := range d.CampaignsToUpdate {
		if !skip(u.Campaign.ID) {
			out.CampaignsToUpdate = append(out.CampaignsToUpdate, u)
		}
	}
	for _, g := range d.AdGroupsToAdd {
		if !skip(g.CampaignID) {
			out.AdGroupsToAdd = append(out.AdGroupsToAdd, g)
		}
	}
	for _, g := range d.AdGroupsToUpdate {
		if !skip(g.CampaignID) {
			out.AdGroupsToUpdate = append(out.AdGroupsToUpdate, g)
		}
	}
	for _, a := range d.AdsToAdd {
		if !skip(a.CampaignID) {
			out.AdsToAdd = append(out.AdsToAdd, a)
		}
	}
	for _, a := range d.AdsToUpdate {
		if !skip(a.CampaignID) {
			out.AdsToUpdate = append(out.AdsToUpdate, a)
		}
	}
	for _, k := range d.KeywordsToAdd {
		if !skip(k.CampaignID) {
			out.KeywordsToAdd = append(out.KeywordsToAdd, k)
		}
	}
	for _, k := range d.KeywordsToUpdate {
		if !skip(k.CampaignID) {
			out.KeywordsToUpdate = append(out.KeywordsToUpdate, k)
		}
	}
	return out
}

// setSyncStatus is failed when anything failed and pending while pushes are
// deferred behind an open breaker.
func setSyncStatus(result *domain.DiffSyncResult) domain.SyncStatus {
	switch {
	case !result.Success:
		return domain.SyncStatusFailed
	case result.Skipped > 0:
		return domain.SyncStatusPending
	default:
		return domain.SyncStatusSynced
	}
}

func existsIn(set *domain.CampaignSet, campaignID string) bool {
	for _, c := range set.Campaigns {
		if c.ID == campaignID {
			return true
		}
	}
	return false
}
