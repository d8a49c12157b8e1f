package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campaign_sync/internal/circuitbreaker"
	"campaign_sync/internal/config"
	"campaign_sync/internal/domain"
	"campaign_sync/internal/metrics"
	"campaign_sync/internal/platform"
	"campaign_sync/internal/validation"
)

// RetryHandler re-attempts campaigns whose last sync failed. Each campaign
// gets one attempt per pass; after MaxRetries failed passes it is marked as
// permanently failed.
type RetryHandler struct {
	repo      Repository
	syncState SyncStateStore
	validator *validation.Validator
	adapters  AdapterRegistry
	breakers  BreakerRegistry
	logger    *slog.Logger
	config    config.SyncConfig
	now       func() time.Time
}

func NewRetryHandler(
	repo Repository,
	syncState SyncStateStore,
	validator *validation.Validator,
	adapters AdapterRegistry,
	breakers BreakerRegistry,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *RetryHandler {
	return &RetryHandler{
		repo:      repo,
		syncState: syncState,
		validator: validator,
		adapters:  adapters,
		breakers:  breakers,
		logger:    logger.With("component", "retry"),
		config:    cfg,
		now:       time.Now,
	}
}

// Run handles every user that has retryable failures.
func (h *RetryHandler) Run(ctx context.Context) error {
	users, err := h.repo.ListUsersWithFailedSyncs(ctx, h.config.MaxRetries)
	if err != nil {
		return fmt.Errorf("list users with failed syncs: %w", err)
	}

	var errs []error
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := h.Handle(ctx, domain.RetryJob{UserID: userID}); err != nil {
			errs = append(errs, fmt.Errorf("retry user %s: %w", userID, err))
		}
	}
	return errors.Join(errs...)
}

// Handle runs one retry pass over the failed campaigns of job.UserID. Each
// campaign is pushed with its whole subtree.
//
// A platform whose breaker refuses a call is skipped for the rest of the
// pass, so one outage does not burn retry budget on every campaign.
func (h *RetryHandler) Handle(ctx context.Context, job domain.RetryJob) (*domain.RetryResult, error) {
	maxRetries := h.config.MaxRetries
	if job.MaxRetries != nil && *job.MaxRetries > 0 {
		maxRetries = *job.MaxRetries
	}
	logger := h.logger.With("user_id", job.UserID, "max_retries", maxRetries)

	campaigns, err := h.repo.GetFailedCampaignsForRetry(ctx, job.UserID, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("get failed campaigns: %w", err)
	}

	logger.Info("retrying failed campaigns", "count", len(campaigns))

	result := &domain.RetryResult{}
	stopped := make(map[string]bool)

	for i := range campaigns {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		c := &campaigns[i]

		if stopped[c.Platform] {
			h.skip(result)
			continue
		}

		adapter, ok := h.adapters.Get(c.Platform)
		if !ok {
			logger.Warn("no adapter for platform, skipping", "campaign_id", c.ID, "platform", c.Platform)
			h.skip(result)
			continue
		}

		// Invalid campaigns fail without touching the platform or its breaker.
		if res := h.validator.ValidateEntity(domain.EntityCampaign, c.ID, c, c.Platform); !res.Valid() {
			result.Processed++
			h.fail(ctx, result, c, res.Err().Error(), maxRetries)
			continue
		}

		cb := h.breakers.Get(c.Platform)
		if !cb.CanExecute() {
			logger.Warn("circuit open, skipping platform for this pass", "platform", c.Platform)
			stopped[c.Platform] = true
			h.skip(result)
			continue
		}

		result.Processed++

		cause := h.attempt(ctx, adapter, cb, c)
		if cause == "" {
			result.Succeeded++
			metrics.RetryOutcomes.WithLabelValues("succeeded").Inc()
			continue
		}
		h.fail(ctx, result, c, cause, maxRetries)
	}

	logger.Info("retry pass completed",
		"processed", result.Processed,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"permanent_failures", result.PermanentFailures,
	)

	return result, nil
}

func (h *RetryHandler) skip(result *domain.RetryResult) {
	result.Skipped++
	metrics.RetryOutcomes.WithLabelValues("skipped").Inc()
}

func (h *RetryHandler) fail(ctx context.Context, result *domain.RetryResult, c *domain.Campaign, cause string, maxRetries int) {
	result.Failed++
	metrics.RetryOutcomes.WithLabelValues("failed").Inc()

	if h.recordFailure(ctx, c, cause, maxRetries) {
		result.PermanentFailures++
		metrics.RetryOutcomes.WithLabelValues("permanent_failure").Inc()
	}
}

// attempt pushes c and its subtree and returns the failure cause, or "" on
// success. The caller has already been admitted by cb for the first call.
func (h *RetryHandler) attempt(ctx context.Context, adapter platform.Adapter, cb circuitbreaker.CircuitBreaker, c *domain.Campaign) string {
	if err := h.repo.ResetSyncForRetry(ctx, c.ID); err != nil {
		cb.Release()
		return fmt.Sprintf("reset sync state: %v", err)
	}

	campaignPID, cause := h.push(ctx, cb, c.Platform, true, entityPush{
		entity:     domain.EntityCampaign,
		platformID: deref(c.PlatformCampaignID),
		create: func(ctx context.Context) (platform.CreateResult, error) {
			return adapter.CreateCampaign(ctx, c)
		},
		update: func(ctx context.Context, platformID string) (platform.Result, error) {
			return adapter.UpdateCampaign(ctx, c, platformID)
		},
		persist: func(ctx context.Context, platformID string) error {
			return h.repo.UpdateCampaignPlatformID(ctx, c.ID, platformID)
		},
	})
	if cause != "" {
		return cause
	}

	if cause := h.pushChildren(ctx, adapter, cb, c, campaignPID); cause != "" {
		return cause
	}

	if err := h.repo.UpdateCampaignSyncStatus(ctx, c.ID, domain.SyncStatusSynced, ""); err != nil {
		h.logger.Error("failed to mark campaign synced", "campaign_id", c.ID, "error", err)
	}
	if h.syncState != nil {
		if err := h.syncState.Record(ctx, c.ID, c.Status, h.now()); err != nil {
			h.logger.Error("failed to record sync state", "campaign_id", c.ID, "error", err)
		}
	}
	return ""
}

// pushChildren creates the descendants of c that never reached the platform
// and updates the rest. It stops at the first failure.
func (h *RetryHandler) pushChildren(ctx context.Context, adapter platform.Adapter, cb circuitbreaker.CircuitBreaker, c *domain.Campaign, campaignPID string) string {
	for i := range c.AdGroups {
		g := &c.AdGroups[i]
		groupPID, cause := h.push(ctx, cb, c.Platform, false, entityPush{
			entity:     domain.EntityAdGroup,
			platformID: deref(g.PlatformAdGroupID),
			create: func(ctx context.Context) (platform.CreateResult, error) {
				return adapter.CreateAdGroup(ctx, g, campaignPID)
			},
			update: func(ctx context.Context, platformID string) (platform.Result, error) {
				return adapter.UpdateAdGroup(ctx, g, platformID)
			},
			persist: func(ctx context.Context, platformID string) error {
				return h.repo.UpdateAdGroupPlatformID(ctx, g.ID, platformID)
			},
		})
		if cause != "" {
			return fmt.Sprintf("%s %s: %s", domain.EntityAdGroup, g.ID, cause)
		}

		for j := range g.Ads {
			ad := &g.Ads[j]
			_, cause := h.push(ctx, cb, c.Platform, false, entityPush{
				entity:     domain.EntityAd,
				platformID: deref(ad.PlatformAdID),
				create: func(ctx context.Context) (platform.CreateResult, error) {
					return adapter.CreateAd(ctx, ad, groupPID)
				},
				update: func(ctx context.Context, platformID string) (platform.Result, error) {
					return adapter.UpdateAd(ctx, ad, platformID)
				},
				persist: func(ctx context.Context, platformID string) error {
					return h.repo.UpdateAdPlatformID(ctx, ad.ID, platformID)
				},
			})
			if cause != "" {
				return fmt.Sprintf("%s %s: %s", domain.EntityAd, ad.ID, cause)
			}
		}

		for j := range g.Keywords {
			kw := &g.Keywords[j]
			_, cause := h.push(ctx, cb, c.Platform, false, entityPush{
				entity:     domain.EntityKeyword,
				platformID: deref(kw.PlatformKeywordID),
				create: func(ctx context.Context) (platform.CreateResult, error) {
					return adapter.CreateKeyword(ctx, kw, groupPID)
				},
				update: func(ctx context.Context, platformID string) (platform.Result, error) {
					return adapter.UpdateKeyword(ctx, kw, platformID)
				},
				persist: func(ctx context.Context, platformID string) error {
					return h.repo.UpdateKeywordPlatformID(ctx, kw.ID, platformID)
				},
			})
			if cause != "" {
				return fmt.Sprintf("%s %s: %s", domain.EntityKeyword, kw.ID, cause)
			}
		}
	}
	return ""
}

// entityPush describes one entity to push: a create when it has no platform
// id yet, otherwise an update.
type entityPush struct {
	entity     domain.EntityType
	platformID string
	create     func(ctx context.Context) (platform.CreateResult, error)
	update     func(ctx context.Context, platformID string) (platform.Result, error)
	persist    func(ctx context.Context, platformID string) error
}

// push runs one guarded call and returns the entity's platform id or the
// failure cause. admitted means cb.CanExecute already returned true for it.
func (h *RetryHandler) push(ctx context.Context, cb circuitbreaker.CircuitBreaker, platformName string, admitted bool, p entityPush) (string, string) {
	if !admitted && !cb.CanExecute() {
		return "", fmt.Sprintf("circuit open for platform %s", platformName)
	}

	if p.platformID == "" {
		var res platform.CreateResult
		err := invoke(ctx, cb, platformName, "create_"+string(p.entity), h.config.CallTimeout, func(ctx context.Context) error {
			var err error
			res, err = p.create(ctx)
			return err
		})
		switch {
		case err != nil:
			return "", err.Error()
		case !res.Success:
			return "", res.Error
		}
		if err := p.persist(ctx, res.PlatformID); err != nil {
			return "", fmt.Sprintf("created as %s but failed to persist platform id: %v", res.PlatformID, err)
		}
		return res.PlatformID, ""
	}

	var res platform.Result
	err := invoke(ctx, cb, platformName, "update_"+string(p.entity), h.config.CallTimeout, func(ctx context.Context) error {
		var err error
		res, err = p.update(ctx, p.platformID)
		return err
	})
	switch {
	case err != nil:
		return "", err.Error()
	case !res.Success:
		return "", res.Error
	}
	return p.platformID, ""
}

// recordFailure stores the failed attempt and reports whether the campaign
// ran out of retries.
func (h *RetryHandler) recordFailure(ctx context.Context, c *domain.Campaign, cause string, maxRetries int) bool {
	if err := h.repo.UpdateCampaignSyncStatus(ctx, c.ID, domain.SyncStatusFailed, cause); err != nil {
		h.logger.Error("failed to update campaign sync status", "campaign_id", c.ID, "error", err)
	}

	count, err := h.repo.IncrementRetryCount(ctx, c.ID)
	if err != nil {
		h.logger.Error("failed to increment retry count", "campaign_id", c.ID, "error", err)
		return false
	}
	if count < maxRetries {
		return false
	}

	reason := domain.MaxRetriesExceededMessage(maxRetries, cause)
	if err := h.repo.MarkPermanentFailure(ctx, c.ID, reason); err != nil {
		h.logger.Error("failed to mark permanent failure", "campaign_id", c.ID, "error", err)
		return false
	}

	h.logger.Warn("campaign marked as permanently failed",
		"campaign_id", c.ID,
		"platform", c.Platform,
		"retry_count", count,
		"cause", cause,
	)
	return true
}
