package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"campaign_sync/internal/domain"
)

func (s *CampaignStore) UpdateCampaignPlatformID(ctx context.Context, campaignID, platformID string) error {
	return execOne(ctx, GetExecutor(ctx, s.db),
		`UPDATE campaigns SET platform_campaign_id = $2, updated_at = NOW() WHERE id = $1`,
		campaignID, platformID,
	)
}

func (s *CampaignStore) UpdateAdGroupPlatformID(ctx context.Context, adGroupID, platformID string) error {
	return execOne(ctx, GetExecutor(ctx, s.db),
		`UPDATE ad_groups SET platform_ad_group_id = $2 WHERE id = $1`,
		adGroupID, platformID,
	)
}

func (s *CampaignStore) UpdateAdPlatformID(ctx context.Context, adID, platformID string) error {
	return execOne(ctx, GetExecutor(ctx, s.db),
		`UPDATE ads SET platform_ad_id = $2 WHERE id = $1`,
		adID, platformID,
	)
}

func (s *CampaignStore) UpdateKeywordPlatformID(ctx context.Context, keywordID, platformID string) error {
	return execOne(ctx, GetExecutor(ctx, s.db),
		`UPDATE keywords SET platform_keyword_id = $2 WHERE id = $1`,
		keywordID, platformID,
	)
}

var entityTables = map[domain.EntityType]string{
	domain.EntityCampaign: "campaigns",
	domain.EntityAdGroup:  "ad_groups",
	domain.EntityAd:       "ads",
	domain.EntityKeyword:  "keywords",
}

// DeleteEntity removes one entity and, through cascading keys, its
// children. Deleting a row that is already gone is not an error.
func (s *CampaignStore) DeleteEntity(ctx context.Context, entityType domain.EntityType, id string) error {
	table, ok := entityTables[entityType]
	if !ok {
		return fmt.Errorf("unknown entity type %q", entityType)
	}

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	return err
}

// UpdateCampaignSyncStatus records the outcome of a sync attempt. A
// successful sync clears the error and the retry counter.
func (s *CampaignStore) UpdateCampaignSyncStatus(ctx context.Context, campaignID string, status domain.SyncStatus, syncErr string) error {
	return execOne(ctx, GetExecutor(ctx, s.db), `
		UPDATE campaigns SET
			sync_status = $2,
			sync_error = NULLIF($3, ''),
			retry_count = CASE WHEN $2 = 'synced' THEN 0 ELSE retry_count END,
			permanent_failure = CASE WHEN $2 = 'synced' THEN FALSE ELSE permanent_failure END,
			last_sync_attempt_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`,
		campaignID, string(status), syncErr,
	)
}

func (s *CampaignStore) UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus) error {
	return execOne(ctx, GetExecutor(ctx, s.db),
		`UPDATE campaigns SET status = $2, updated_at = NOW() WHERE id = $1`,
		campaignID, status,
	)
}

// ListSyncedCampaigns returns the campaigns of platformName that exist on
// the platform.
func (s *CampaignStore) ListSyncedCampaigns(ctx context.Context, platformName string) ([]domain.Campaign, error) {
	return s.selectCampaigns(ctx, GetExecutor(ctx, s.db),
		`WHERE c.platform = $1 AND c.platform_campaign_id IS NOT NULL ORDER BY c.campaign_set_id, c.order_index, c.id`,
		platformName,
	)
}

// GetFailedCampaignsForRetry returns the retryable failed campaigns of one
// user with their children, least recently attempted first.
func (s *CampaignStore) GetFailedCampaignsForRetry(ctx context.Context, userID string, maxRetries int) ([]domain.Campaign, error) {
	exec := GetExecutor(ctx, s.db)

	campaigns, err := s.selectCampaigns(ctx, exec, `
		JOIN campaign_sets cs ON cs.id = c.campaign_set_id
		WHERE cs.user_id = $1
			AND c.sync_status = 'failed'
			AND NOT c.permanent_failure
			AND c.retry_count < $2
		ORDER BY c.last_sync_attempt_at NULLS FIRST, c.id`,
		userID, maxRetries,
	)
	if err != nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, exec, campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (s *CampaignStore) ListUsersWithFailedSyncs(ctx context.Context, maxRetries int) ([]string, error) {
	var users []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &users, `
		SELECT DISTINCT cs.user_id
		FROM campaigns c
		JOIN campaign_sets cs ON cs.id = c.campaign_set_id
		WHERE c.sync_status = 'failed'
			AND NOT c.permanent_failure
			AND c.retry_count < $1
		ORDER BY cs.user_id`, maxRetries)
	return users, err
}

func (s *CampaignStore) IncrementRetryCount(ctx context.Context, campaignID string) (int, error) {
	var count int
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx,
		`UPDATE campaigns SET retry_count = retry_count + 1, updated_at = NOW() WHERE id = $1 RETURNING retry_count`,
		campaignID,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return count, err
}

// MarkPermanentFailure takes the campaign out of automatic retries.
func (s *CampaignStore) MarkPermanentFailure(ctx context.Context, campaignID, reason string) error {
	return execOne(ctx, GetExecutor(ctx, s.db), `
		UPDATE campaigns SET
			sync_status = 'failed',
			sync_error = $2,
			permanent_failure = TRUE,
			updated_at = NOW()
		WHERE id = $1`,
		campaignID, reason,
	)
}

func (s *CampaignStore) ResetSyncForRetry(ctx context.Context, campaignID string) error {
	return execOne(ctx, GetExecutor(ctx, s.db), `
		UPDATE campaigns SET
			sync_status = 'pending',
			sync_error = NULL,
			last_sync_attempt_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`,
		campaignID,
	)
}
