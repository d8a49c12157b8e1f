package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"campaign_sync/internal/domain"
)

// CampaignStore persists campaign sets and their campaign hierarchies.
// All methods join the transaction carried by ctx, if any.
type CampaignStore struct {
	db *sqlx.DB
}

func NewCampaignStore(db *sqlx.DB) *CampaignStore {
	return &CampaignStore{db: db}
}

const campaignColumns = `
	c.id, c.campaign_set_id, c.name, c.platform, c.objective, c.order_index,
	c.status, c.sync_status, c.platform_campaign_id, c.platform_data,
	c.campaign_data, c.budget, c.sync_error, c.retry_count,
	ss.last_synced_status, ss.last_synced_at`

const campaignFrom = `
	FROM campaigns c
	LEFT JOIN campaign_sync_state ss ON ss.campaign_id = c.id`

func (s *CampaignStore) CreateCampaignSet(ctx context.Context, set *domain.CampaignSet) error {
	config, err := toJSONB(set.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	query := `
		INSERT INTO campaign_sets (id, user_id, name, config, status, sync_status)
		VALUES ($1, $2, $3, COALESCE($4, '{}'::jsonb), $5, $6)
		RETURNING created_at, updated_at`

	status := set.Status
	if status == "" {
		status = domain.CampaignSetStatusDraft
	}
	syncStatus := set.SyncStatus
	if syncStatus == "" {
		syncStatus = domain.SyncStatusPending
	}

	exec := GetExecutor(ctx, s.db)
	return exec.QueryRowxContext(ctx, query,
		set.ID,
		set.UserID,
		set.Name,
		config,
		status,
		syncStatus,
	).Scan(&set.CreatedAt, &set.UpdatedAt)
}

// GetCampaignSetWithRelations loads the set with its full hierarchy, each
// level ordered by order_index. Campaigns carry their last synced status.
func (s *CampaignStore) GetCampaignSetWithRelations(ctx context.Context, setID string) (*domain.CampaignSet, error) {
	exec := GetExecutor(ctx, s.db)

	var setRow campaignSetRow
	err := sqlx.GetContext(ctx, exec, &setRow, `
		SELECT id, user_id, name, config, status, sync_status, created_at, updated_at
		FROM campaign_sets
		WHERE id = $1`, setID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign set: %w", err)
	}

	set, err := setRow.toDomain()
	if err != nil {
		return nil, err
	}

	campaigns, err := s.selectCampaigns(ctx, exec,
		`WHERE c.campaign_set_id = $1 ORDER BY c.order_index, c.id`, setID)
	if err != nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, exec, campaigns); err != nil {
		return nil, err
	}

	set.Campaigns = campaigns
	return &set, nil
}

func (s *CampaignStore) selectCampaigns(ctx context.Context, exec sqlx.ExtContext, where string, args ...any) ([]domain.Campaign, error) {
	var rows []campaignRow
	if err := sqlx.SelectContext(ctx, exec, &rows, "SELECT "+campaignColumns+campaignFrom+" "+where, args...); err != nil {
		return nil, fmt.Errorf("select campaigns: %w", err)
	}

	campaigns := make([]domain.Campaign, 0, len(rows))
	for _, r := range rows {
		c, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (s *CampaignStore) loadChildren(ctx context.Context, exec sqlx.ExtContext, campaigns []domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	campaignIDs := make([]string, len(campaigns))
	for i, c := range campaigns {
		campaignIDs[i] = c.ID
	}

	var groupRows []adGroupRow
	err := sqlx.SelectContext(ctx, exec, &groupRows, `
		SELECT id, campaign_id, name, order_index, status, bid_strategy, settings, platform_ad_group_id
		FROM ad_groups
		WHERE campaign_id = ANY($1)
		ORDER BY order_index, id`, pq.Array(campaignIDs))
	if err != nil {
		return fmt.Errorf("select ad groups: %w", err)
	}
	if len(groupRows) == 0 {
		return nil
	}

	groupIDs := make([]string, len(groupRows))
	for i, g := range groupRows {
		groupIDs[i] = g.ID
	}

	var adRows []adRow
	err = sqlx.SelectContext(ctx, exec, &adRows, `
		SELECT id, ad_group_id, order_index, headline, description, display_url,
			final_url, call_to_action, assets, platform_ad_id, status
		FROM ads
		WHERE ad_group_id = ANY($1)
		ORDER BY order_index, id`, pq.Array(groupIDs))
	if err != nil {
		return fmt.Errorf("select ads: %w", err)
	}

	var keywordRows []keywordRow
	err = sqlx.SelectContext(ctx, exec, &keywordRows, `
		SELECT id, ad_group_id, keyword, match_type, bid, platform_keyword_id, status
		FROM keywords
		WHERE ad_group_id = ANY($1)
		ORDER BY id`, pq.Array(groupIDs))
	if err != nil {
		return fmt.Errorf("select keywords: %w", err)
	}

	ads := make(map[string][]domain.Ad)
	for _, r := range adRows {
		a, err := r.toDomain()
		if err != nil {
			return err
		}
		ads[r.AdGroupID] = append(ads[r.AdGroupID], a)
	}
	keywords := make(map[string][]domain.Keyword)
	for _, r := range keywordRows {
		keywords[r.AdGroupID] = append(keywords[r.AdGroupID], r.toDomain())
	}

	groups := make(map[string][]domain.AdGroup)
	for _, r := range groupRows {
		g, err := r.toDomain()
		if err != nil {
			return err
		}
		g.Ads = ads[g.ID]
		g.Keywords = keywords[g.ID]
		groups[r.CampaignID] = append(groups[r.CampaignID], g)
	}

	for i := range campaigns {
		campaigns[i].AdGroups = groups[campaigns[i].ID]
	}
	return nil
}

// UpsertCampaignTree writes the given campaigns and their children under
// setID. Platform ids and sync bookkeeping of existing rows are kept, except
// for rows that moved to another parent: those lose their platform id along
// with their descendants. Entities missing from campaigns are not touched.
func (s *CampaignStore) UpsertCampaignTree(ctx context.Context, setID string, campaigns []domain.Campaign) error {
	exec := GetExecutor(ctx, s.db)

	for i := range campaigns {
		c := &campaigns[i]
		if err := upsertCampaign(ctx, exec, setID, c); err != nil {
			return fmt.Errorf("upsert campaign %s: %w", c.ID, err)
		}

		for j := range c.AdGroups {
			g := &c.AdGroups[j]
			if err := upsertAdGroup(ctx, exec, c.ID, g); err != nil {
				return fmt.Errorf("upsert ad group %s: %w", g.ID, err)
			}
			for k := range g.Ads {
				if err := upsertAd(ctx, exec, g.ID, &g.Ads[k]); err != nil {
					return fmt.Errorf("upsert ad %s: %w", g.Ads[k].ID, err)
				}
			}
			for k := range g.Keywords {
				if err := upsertKeyword(ctx, exec, g.ID, &g.Keywords[k]); err != nil {
					return fmt.Errorf("upsert keyword %s: %w", g.Keywords[k].ID, err)
				}
			}
		}
	}
	return nil
}

func upsertCampaign(ctx context.Context, exec sqlx.ExtContext, setID string, c *domain.Campaign) error {
	platformData, err := toJSONB(c.PlatformData)
	if err != nil {
		return err
	}
	campaignData, err := toJSONB(c.CampaignData)
	if err != nil {
		return err
	}
	budget, err := toJSONB(c.Budget)
	if err != nil {
		return err
	}

	status := c.Status
	if status == "" {
		status = domain.CampaignStatusDraft
	}

	_, err = exec.ExecContext(ctx, `
		INSERT INTO campaigns (
			id, campaign_set_id, name, platform, objective, order_index, status,
			platform_data, campaign_data, budget
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			platform = EXCLUDED.platform,
			objective = EXCLUDED.objective,
			order_index = EXCLUDED.order_index,
			status = EXCLUDED.status,
			platform_data = EXCLUDED.platform_data,
			campaign_data = EXCLUDED.campaign_data,
			budget = EXCLUDED.budget,
			updated_at = NOW()`,
		c.ID,
		setID,
		c.Name,
		c.Platform,
		c.Objective,
		c.OrderIndex,
		status,
		platformData,
		campaignData,
		budget,
	)
	return err
}

func upsertAdGroup(ctx context.Context, exec sqlx.ExtContext, campaignID string, g *domain.AdGroup) error {
	settings, err := toJSONB(g.Settings)
	if err != nil {
		return err
	}

	status := g.Status
	if status == "" {
		status = domain.AdGroupStatusActive
	}

	moved, err := reparent(ctx, exec,
		`UPDATE ad_groups SET campaign_id = $2, platform_ad_group_id = NULL WHERE id = $1 AND campaign_id <> $2`,
		g.ID, campaignID)
	if err != nil {
		return err
	}
	if moved {
		if _, err := exec.ExecContext(ctx, `UPDATE ads SET platform_ad_id = NULL WHERE ad_group_id = $1`, g.ID); err != nil {
			return err
		}
		if _, err := exec.ExecContext(ctx, `UPDATE keywords SET platform_keyword_id = NULL WHERE ad_group_id = $1`, g.ID); err != nil {
			return err
		}
	}

	_, err = exec.ExecContext(ctx, `
		INSERT INTO ad_groups (id, campaign_id, name, order_index, status, bid_strategy, settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			order_index = EXCLUDED.order_index,
			status = EXCLUDED.status,
			bid_strategy = EXCLUDED.bid_strategy,
			settings = EXCLUDED.settings`,
		g.ID,
		campaignID,
		g.Name,
		g.OrderIndex,
		status,
		g.BidStrategy,
		settings,
	)
	return err
}

func upsertAd(ctx context.Context, exec sqlx.ExtContext, adGroupID string, a *domain.Ad) error {
	assets, err := toJSONB(a.Assets)
	if err != nil {
		return err
	}

	status := a.Status
	if status == "" {
		status = domain.CampaignStatusDraft
	}

	if _, err := reparent(ctx, exec,
		`UPDATE ads SET ad_group_id = $2, platform_ad_id = NULL WHERE id = $1 AND ad_group_id <> $2`,
		a.ID, adGroupID); err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx, `
		INSERT INTO ads (
			id, ad_group_id, order_index, headline, description, display_url,
			final_url, call_to_action, assets, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			order_index = EXCLUDED.order_index,
			headline = EXCLUDED.headline,
			description = EXCLUDED.description,
			display_url = EXCLUDED.display_url,
			final_url = EXCLUDED.final_url,
			call_to_action = EXCLUDED.call_to_action,
			assets = EXCLUDED.assets,
			status = EXCLUDED.status`,
		a.ID,
		adGroupID,
		a.OrderIndex,
		a.Headline,
		a.Description,
		a.DisplayURL,
		a.FinalURL,
		a.CallToAction,
		assets,
		status,
	)
	return err
}

func upsertKeyword(ctx context.Context, exec sqlx.ExtContext, adGroupID string, k *domain.Keyword) error {
	status := k.Status
	if status == "" {
		status = domain.CampaignStatusDraft
	}
	matchType := k.MatchType
	if matchType == "" {
		matchType = domain.MatchTypeBroad
	}

	if _, err := reparent(ctx, exec,
		`UPDATE keywords SET ad_group_id = $2, platform_keyword_id = NULL WHERE id = $1 AND ad_group_id <> $2`,
		k.ID, adGroupID); err != nil {
		return err
	}

	_, err := exec.ExecContext(ctx, `
		INSERT INTO keywords (id, ad_group_id, keyword, match_type, bid, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			keyword = EXCLUDED.keyword,
			match_type = EXCLUDED.match_type,
			bid = EXCLUDED.bid,
			status = EXCLUDED.status`,
		k.ID,
		adGroupID,
		k.Keyword,
		matchType,
		k.Bid,
		status,
	)
	return err
}

func (s *CampaignStore) UpdateCampaignSetSyncStatus(ctx context.Context, setID string, status domain.SyncStatus) error {
	return execOne(ctx, GetExecutor(ctx, s.db),
		`UPDATE campaign_sets SET sync_status = $2, updated_at = NOW() WHERE id = $1`,
		setID, status,
	)
}

// reparent runs a statement that moves one existing row to a new parent and
// reports whether the row moved.
func reparent(ctx context.Context, exec sqlx.ExtContext, query, id, parentID string) (bool, error) {
	res, err := exec.ExecContext(ctx, query, id, parentID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// execOne runs a single-row statement and maps zero affected rows to
// domain.ErrNotFound.
func execOne(ctx context.Context, exec sqlx.ExtContext, query string, args ...any) error {
	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
