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

// ProgressFunc is called after each planned operation finishes.
type ProgressFunc func(done, total int)

type applyOptions struct {
	progress ProgressFunc
	held     map[string]struct{}
}

type ApplyOption func(*applyOptions)

// WithProgress reports progress after every operation.
func WithProgress(fn ProgressFunc) ApplyOption {
	return func(o *applyOptions) {
		o.progress = fn
	}
}

// WithHeldCampaigns keeps the given campaigns and their subtrees out of the
// push. Removals that name them still run.
func WithHeldCampaigns(ids map[string]struct{}) ApplyOption {
	return func(o *applyOptions) {
		o.held = ids
	}
}

// DiffApplier pushes a diff to the platforms. It is a best-effort batch
// executor: entity failures are collected on the result and never stop the
// batch. Only a missing set or missing collaborators abort.
type DiffApplier struct {
	repo      Repository
	syncState SyncStateStore
	adapters  AdapterRegistry
	breakers  BreakerRegistry
	logger    *slog.Logger
	config    config.SyncConfig
	now       func() time.Time
}

func NewDiffApplier(
	repo Repository,
	syncState SyncStateStore,
	adapters AdapterRegistry,
	breakers BreakerRegistry,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *DiffApplier {
	return &DiffApplier{
		repo:      repo,
		syncState: syncState,
		adapters:  adapters,
		breakers:  breakers,
		logger:    logger.With("component", "applier"),
		config:    cfg,
		now:       time.Now,
	}
}

// applyState carries what the batch has learned so far: platform ids of
// parents created earlier in the batch and the outcome per campaign.
type applyState struct {
	setID     string
	result    *domain.DiffSyncResult
	platforms map[string]string

	campaignIDs map[string]string
	adGroupIDs  map[string]string
	adIDs       map[string]string
	keywordIDs  map[string]string

	// deferred holds entities whose push was skipped by an open breaker.
	deferred map[string]struct{}

	outcomes map[string]*campaignOutcome
	order    []string
}

type campaignOutcome struct {
	synced   bool
	skipped  bool
	failures []string
}

func (st *applyState) outcome(campaignID string) *campaignOutcome {
	o, ok := st.outcomes[campaignID]
	if !ok {
		o = &campaignOutcome{}
		st.outcomes[campaignID] = o
		st.order = append(st.order, campaignID)
	}
	return o
}

func (st *applyState) fail(code domain.ErrorCode, entityType domain.EntityType, entityID, campaignID, msg string) {
	st.result.AddError(code, entityType, entityID, st.platforms[campaignID], msg)
	o := st.outcome(campaignID)
	o.failures = append(o.failures, fmt.Sprintf("%s %s: %s", entityType, entityID, msg))
}

func (st *applyState) postpone(op domain.SyncOperation, campaignID string) {
	st.result.Skipped++
	st.deferred[op.EntityID()] = struct{}{}
	st.outcome(campaignID).skipped = true
}

// ApplyDiff executes diff against the platforms of set setID. Entities of
// the set that never reached their platform are pushed as well.
func (a *DiffApplier) ApplyDiff(ctx context.Context, setID string, diff domain.CampaignSetDiff, opts ...ApplyOption) (*domain.DiffSyncResult, error) {
	var o applyOptions
	for _, opt := range opts {
		opt(&o)
	}

	result := &domain.DiffSyncResult{}

	if a == nil || a.repo == nil || a.adapters == nil || a.breakers == nil {
		err := &domain.SyncError{Code: domain.ErrCodeServiceNotConfigured, Message: "sync service is not configured"}
		result.Add(*err)
		result.Finalize()
		return result, err
	}

	set, err := a.repo.GetCampaignSetWithRelations(ctx, setID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && set == nil) {
		serr := &domain.SyncError{Code: domain.ErrCodeCampaignSetNotFound, Message: fmt.Sprintf("campaign set %s not found", setID)}
		result.Add(*serr)
		result.Finalize()
		return result, serr
	}
	if err != nil {
		return nil, fmt.Errorf("load campaign set %s: %w", setID, err)
	}

	st := newApplyState(setID, set, diff, result)
	plan := BuildPlan(set, diff, o.held)

	a.logger.Info("applying diff",
		"campaign_set_id", setID,
		"operations", len(plan),
	)

	for i, op := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a.execute(ctx, op, st)

		if o.progress != nil {
			o.progress(i+1, len(plan))
		}
	}

	a.settleCampaigns(ctx, st)
	result.Finalize()

	a.logger.Info("diff applied",
		"campaign_set_id", setID,
		"created", result.Created,
		"updated", result.Updated,
		"removed", result.Removed,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)

	return result, nil
}

func (a *DiffApplier) ApplyDiffWithProgress(ctx context.Context, setID string, diff domain.CampaignSetDiff, progress ProgressFunc) (*domain.DiffSyncResult, error) {
	return a.ApplyDiff(ctx, setID, diff, WithProgress(progress))
}

func newApplyState(setID string, set *domain.CampaignSet, diff domain.CampaignSetDiff, result *domain.DiffSyncResult) *applyState {
	st := &applyState{
		setID:       setID,
		result:      result,
		platforms:   make(map[string]string),
		campaignIDs: make(map[string]string),
		adGroupIDs:  make(map[string]string),
		adIDs:       make(map[string]string),
		keywordIDs:  make(map[string]string),
		deferred:    make(map[string]struct{}),
		outcomes:    make(map[string]*campaignOutcome),
	}

	for i := range set.Campaigns {
		c := &set.Campaigns[i]
		st.platforms[c.ID] = c.Platform
		if c.PlatformCampaignID != nil {
			st.campaignIDs[c.ID] = *c.PlatformCampaignID
		}
		for _, g := range c.AdGroups {
			if g.PlatformAdGroupID != nil {
				st.adGroupIDs[g.ID] = *g.PlatformAdGroupID
			}
			for _, ad := range g.Ads {
				if ad.PlatformAdID != nil {
					st.adIDs[ad.ID] = *ad.PlatformAdID
				}
			}
			for _, k := range g.Keywords {
				if k.PlatformKeywordID != nil {
					st.keywordIDs[k.ID] = *k.PlatformKeywordID
				}
			}
		}
	}

	// Campaigns that only exist in the diff still need a platform.
	for _, c := range diff.CampaignsToAdd {
		st.platforms[c.ID] = c.Platform
	}
	for _, u := range diff.CampaignsToUpdate {
		st.platforms[u.Campaign.ID] = u.Campaign.Platform
	}

	return st
}

func (a *DiffApplier) execute(ctx context.Context, op domain.SyncOperation, st *applyState) {
	switch op := op.(type) {
	case domain.DeleteOperation:
		a.executeDelete(ctx, op, st)
	case domain.CreateOperation:
		a.executeCreate(ctx, op, st)
	case domain.UpdateOperation:
		a.executeUpdate(ctx, op, st)
	default:
		a.logger.Error("unknown sync operation", "type", fmt.Sprintf("%T", op))
	}
}

// admit resolves the adapter and checks the breaker for the campaign's
// platform. It records NO_ADAPTER or a skip and returns false when the
// operation must not run.
func (a *DiffApplier) admit(op domain.SyncOperation, campaignID string, st *applyState) (platform.Adapter, bool) {
	p := st.platforms[campaignID]

	adapter, ok := a.adapters.Get(p)
	if !ok {
		st.fail(domain.ErrCodeNoAdapter, op.Entity(), op.EntityID(), campaignID, fmt.Sprintf("no adapter registered for platform %q", p))
		return nil, false
	}

	if !a.breakers.Get(p).CanExecute() {
		st.postpone(op, campaignID)
		metrics.PlatformOperations.WithLabelValues(p, string(op.Entity()), string(op.Kind()), "skipped").Inc()
		a.logger.Warn("circuit open, skipping operation",
			"platform", p,
			"operation", op.Kind(),
			"entity_type", op.Entity(),
			"entity_id", op.EntityID(),
		)
		return nil, false
	}

	return adapter, true
}

func (a *DiffApplier) executeDelete(ctx context.Context, op domain.DeleteOperation, st *applyState) {
	if op.PlatformID == "" {
		// Never reached the platform; only the local row goes.
		a.deleteLocal(ctx, op)
		return
	}

	adapter, ok := a.admit(op, op.CampaignID, st)
	if !ok {
		return
	}
	p := adapter.Platform()

	err := invoke(ctx, a.breakers.Get(p), p, "delete_"+string(op.Type), a.config.CallTimeout, func(ctx context.Context) error {
		switch op.Type {
		case domain.EntityCampaign:
			return adapter.DeleteCampaign(ctx, op.PlatformID)
		case domain.EntityAdGroup:
			return adapter.DeleteAdGroup(ctx, op.PlatformID)
		case domain.EntityAd:
			return adapter.DeleteAd(ctx, op.PlatformID)
		case domain.EntityKeyword:
			return adapter.DeleteKeyword(ctx, op.PlatformID)
		}
		return fmt.Errorf("unknown entity type %q", op.Type)
	})
	if err != nil {
		metrics.PlatformOperations.WithLabelValues(p, string(op.Type), "delete", "failed").Inc()
		st.fail(domain.ErrCodeDeleteFailed, op.Type, op.ID, op.CampaignID, err.Error())
		return
	}

	metrics.PlatformOperations.WithLabelValues(p, string(op.Type), "delete", "success").Inc()
	st.result.Removed++

	a.deleteLocal(ctx, op)
}

func (a *DiffApplier) deleteLocal(ctx context.Context, op domain.DeleteOperation) {
	if op.KeepLocal {
		return
	}
	if err := a.repo.DeleteEntity(ctx, op.Type, op.ID); err != nil {
		a.logger.Error("failed to delete local entity", "entity_type", op.Type, "entity_id", op.ID, "error", err)
	}
}

func (a *DiffApplier) executeCreate(ctx context.Context, op domain.CreateOperation, st *applyState) {
	// Parents resolve before the breaker so an unsynced parent is reported
	// as such even while the platform is healthy.
	var parentID string
	switch op.Type {
	case domain.EntityAdGroup:
		parentID = st.campaignIDs[op.CampaignID]
	case domain.EntityAd, domain.EntityKeyword:
		parentID = st.adGroupIDs[op.ParentID]
	}
	if op.Type != domain.EntityCampaign && parentID == "" {
		if _, ok := st.deferred[op.ParentID]; ok {
			st.postpone(op, op.CampaignID)
			return
		}
		st.fail(domain.ErrCodeParentNotSynced, op.Type, op.EntityID(), op.CampaignID,
			fmt.Sprintf("parent %s has no platform id", op.ParentID))
		return
	}

	adapter, ok := a.admit(op, op.CampaignID, st)
	if !ok {
		return
	}
	p := adapter.Platform()

	var res platform.CreateResult
	err := invoke(ctx, a.breakers.Get(p), p, "create_"+string(op.Type), a.config.CallTimeout, func(ctx context.Context) error {
		var err error
		switch op.Type {
		case domain.EntityCampaign:
			res, err = adapter.CreateCampaign(ctx, op.Campaign)
		case domain.EntityAdGroup:
			res, err = adapter.CreateAdGroup(ctx, op.AdGroup, parentID)
		case domain.EntityAd:
			res, err = adapter.CreateAd(ctx, op.Ad, parentID)
		case domain.EntityKeyword:
			res, err = adapter.CreateKeyword(ctx, op.Keyword, parentID)
		default:
			err = fmt.Errorf("unknown entity type %q", op.Type)
		}
		return err
	})
	if err != nil {
		metrics.PlatformOperations.WithLabelValues(p, string(op.Type), "create", "exception").Inc()
		st.fail(domain.ErrCodeCreateException, op.Type, op.EntityID(), op.CampaignID, err.Error())
		return
	}
	if !res.Success {
		metrics.PlatformOperations.WithLabelValues(p, string(op.Type), "create", "failed").Inc()
		st.fail(domain.ErrCodeCreateFailed, op.Type, op.EntityID(), op.CampaignID, res.Error)
		return
	}

	metrics.PlatformOperations.WithLabelValues(p, string(op.Type), "create", "success").Inc()
	st.result.Created++

	var persistErr error
	switch op.Type {
	case domain.EntityCampaign:
		st.campaignIDs[op.Campaign.ID] = res.PlatformID
		persistErr = a.repo.UpdateCampaignPlatformID(ctx, op.Campaign.ID, res.PlatformID)
		if persistErr == nil {
			a.recordSynced(ctx, op.Campaign, st)
		}
	case domain.EntityAdGroup:
		st.adGroupIDs[op.AdGroup.ID] = res.PlatformID
		persistErr = a.repo.UpdateAdGroupPlatformID(ctx, op.AdGroup.ID, res.PlatformID)
	case domain.EntityAd:
		st.adIDs[op.Ad.ID] = res.PlatformID
		persistErr = a.repo.UpdateAdPlatformID(ctx, op.Ad.ID, res.PlatformID)
	case domain.EntityKeyword:
		st.keywordIDs[op.Keyword.ID] = res.PlatformID
		persistErr = a.repo.UpdateKeywordPlatformID(ctx, op.Keyword.ID, res.PlatformID)
	}
	if persistErr != nil {
		st.fail(domain.ErrCodeCreateException, op.Type, op.EntityID(), op.CampaignID,
			fmt.Sprintf("created as %s but failed to persist platform id: %v", res.PlatformID, persistErr))
		return
	}

	st.outcome(op.CampaignID).synced = true
}

func (a *DiffApplier) executeUpdate(ctx context.Context, op domain.UpdateOperation, st *applyState) {
	var platformID string
	switch op.Type {
	case domain.EntityCampaign:
		platformID = st.campaignIDs[op.CampaignID]
	case domain.EntityAdGroup:
		platformID = st.adGroupIDs[op.AdGroup.ID]
	case domain.EntityAd:
		platformID = st.adIDs[op.Ad.ID]
	case domain.EntityKeyword:
		platformID = st.keywordIDs[op.Keyword.ID]
	}
	if platformID == "" {
		// Never created remotely; it is not ours to update.
		st.result.Skipped++
		a.logger.Debug("skipping update of unsynced entity", "entity_type", op.Type, "entity_id", op.EntityID())
		return
	}

	adapter, ok := a.admit(op, op.CampaignID, st)
	if !ok {
		return
	}
	p := adapter.Platform()

	var res platform.Result
	err := invoke(ctx, a.breakers.Get(p), p, "update_"+string(op.Type), a.config.CallTimeout, func(ctx context.Context) error {
		var err error
		switch op.Type {
		case domain.EntityCampaign:
			res, err = adapter.UpdateCampaign(ctx, op.Campaign, platformID)
		case domain.EntityAdGroup:
			res, err = adapter.UpdateAdGroup(ctx, op.AdGroup, platformID)
		case domain.EntityAd:
			res, err = adapter.UpdateAd(ctx, op.Ad, platformID)
		case domain.EntityKeyword:
			res, err = adapter.UpdateKeyword(ctx, op.Keyword, platformID)
		default:
			err = fmt.Errorf("unknown entity type %q", op.Type)
		}
		return err
	})
	if err != nil {
		metrics.PlatformOperations.WithLabelValues(p, string(op.Type), "update", "exception").Inc()
		st.fail(domain.ErrCodeUpdateException, op.Type, op.EntityID(), op.CampaignID, err.Error())
		return
	}
	if !res.Success {
		metrics.PlatformOperations.WithLabelValues(p, string(op.Type), "update", "failed").Inc()
		st.fail(domain.ErrCodeUpdateFailed, op.Type, op.EntityID(), op.CampaignID, res.Error)
		return
	}

	metrics.PlatformOperations.WithLabelValues(p, string(op.Type), "update", "success").Inc()
	st.result.Updated++

	if op.Type == domain.EntityCampaign {
		a.recordSynced(ctx, op.Campaign, st)
	}
	st.outcome(op.CampaignID).synced = true
}

// recordSynced stores the status just pushed as the last known platform
// state of the campaign.
func (a *DiffApplier) recordSynced(ctx context.Context, c *domain.Campaign, st *applyState) {
	if a.syncState == nil {
		return
	}
	if err := a.syncState.Record(ctx, c.ID, c.Status, a.now()); err != nil {
		a.logger.Error("failed to record sync state",
			"campaign_set_id", st.setID,
			"campaign_id", c.ID,
			"error", err,
		)
	}
}

// settleCampaigns writes the per-campaign sync status. A campaign with
// operations skipped by an open breaker is marked failed so the retry pass
// picks it up.
func (a *DiffApplier) settleCampaigns(ctx context.Context, st *applyState) {
	for _, id := range st.order {
		o := st.outcomes[id]

		status, msg := domain.SyncStatusSynced, ""
		switch {
		case len(o.failures) > 0:
			status, msg = domain.SyncStatusFailed, o.failures[0]
		case o.skipped:
			status, msg = domain.SyncStatusFailed, fmt.Sprintf("deferred: circuit open for platform %s", st.platforms[id])
		case !o.synced:
			continue
		}

		if err := a.repo.UpdateCampaignSyncStatus(ctx, id, status, msg); err != nil && !errors.Is(err, domain.ErrNotFound) {
			a.logger.Error("failed to update campaign sync status",
				"campaign_set_id", st.setID,
				"campaign_id", id,
				"error", err,
			)
		}
	}
}
