package postgres

import (
	"fmt"
	"time"

	"campaign_sync/internal/domain"
)

type campaignSetRow struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Name       string    `db:"name"`
	Config     []byte    `db:"config"`
	Status     string    `db:"status"`
	SyncStatus string    `db:"sync_status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r campaignSetRow) toDomain() (domain.CampaignSet, error) {
	set := domain.CampaignSet{
		ID:         r.ID,
		UserID:     r.UserID,
		Name:       r.Name,
		Status:     domain.CampaignSetStatus(r.Status),
		SyncStatus: domain.SyncStatus(r.SyncStatus),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if err := fromJSONB(r.Config, &set.Config); err != nil {
		return set, fmt.Errorf("decode config of campaign set %s: %w", r.ID, err)
	}
	return set, nil
}

type campaignRow struct {
	ID                 string     `db:"id"`
	CampaignSetID      string     `db:"campaign_set_id"`
	Name               string     `db:"name"`
	Platform           string     `db:"platform"`
	Objective          string     `db:"objective"`
	OrderIndex         int        `db:"order_index"`
	Status             string     `db:"status"`
	SyncStatus         string     `db:"sync_status"`
	PlatformCampaignID *string    `db:"platform_campaign_id"`
	PlatformData       []byte     `db:"platform_data"`
	CampaignData       []byte     `db:"campaign_data"`
	Budget             []byte     `db:"budget"`
	SyncError          *string    `db:"sync_error"`
	RetryCount         int        `db:"retry_count"`
	LastSyncedStatus   *string    `db:"last_synced_status"`
	LastSyncedAt       *time.Time `db:"last_synced_at"`
}

func (r campaignRow) toDomain() (domain.Campaign, error) {
	c := domain.Campaign{
		ID:                 r.ID,
		CampaignSetID:      r.CampaignSetID,
		Name:               r.Name,
		Platform:           r.Platform,
		Objective:          r.Objective,
		OrderIndex:         r.OrderIndex,
		Status:             domain.CampaignStatus(r.Status),
		SyncStatus:         domain.SyncStatus(r.SyncStatus),
		PlatformCampaignID: r.PlatformCampaignID,
		SyncError:          r.SyncError,
		RetryCount:         r.RetryCount,
		LastSyncedAt:       r.LastSyncedAt,
	}
	if r.LastSyncedStatus != nil {
		status := domain.CampaignStatus(*r.LastSyncedStatus)
		c.LastSyncedStatus = &status
	}
	if err := fromJSONB(r.PlatformData, &c.PlatformData); err != nil {
		return c, fmt.Errorf("decode platform_data of campaign %s: %w", r.ID, err)
	}
	if err := fromJSONB(r.CampaignData, &c.CampaignData); err != nil {
		return c, fmt.Errorf("decode campaign_data of campaign %s: %w", r.ID, err)
	}
	if len(r.Budget) > 0 {
		c.Budget = &domain.Budget{}
		if err := fromJSONB(r.Budget, c.Budget); err != nil {
			return c, fmt.Errorf("decode budget of campaign %s: %w", r.ID, err)
		}
	}
	return c, nil
}

type adGroupRow struct {
	ID                string  `db:"id"`
	CampaignID        string  `db:"campaign_id"`
	Name              string  `db:"name"`
	OrderIndex        int     `db:"order_index"`
	Status            string  `db:"status"`
	BidStrategy       string  `db:"bid_strategy"`
	Settings          []byte  `db:"settings"`
	PlatformAdGroupID *string `db:"platform_ad_group_id"`
}

func (r adGroupRow) toDomain() (domain.AdGroup, error) {
	g := domain.AdGroup{
		ID:                r.ID,
		CampaignID:        r.CampaignID,
		Name:              r.Name,
		OrderIndex:        r.OrderIndex,
		Status:            domain.AdGroupStatus(r.Status),
		BidStrategy:       r.BidStrategy,
		PlatformAdGroupID: r.PlatformAdGroupID,
	}
	if err := fromJSONB(r.Settings, &g.Settings); err != nil {
		return g, fmt.Errorf("decode settings of ad group %s: %w", r.ID, err)
	}
	return g, nil
}

type adRow struct {
	ID           string  `db:"id"`
	AdGroupID    string  `db:"ad_group_id"`
	OrderIndex   int     `db:"order_index"`
	Headline     string  `db:"headline"`
	Description  string  `db:"description"`
	DisplayURL   *string `db:"display_url"`
	FinalURL     *string `db:"final_url"`
	CallToAction *string `db:"call_to_action"`
	Assets       []byte  `db:"assets"`
	PlatformAdID *string `db:"platform_ad_id"`
	Status       string  `db:"status"`
}

func (r adRow) toDomain() (domain.Ad, error) {
	a := domain.Ad{
		ID:           r.ID,
		AdGroupID:    r.AdGroupID,
		OrderIndex:   r.OrderIndex,
		Headline:     r.Headline,
		Description:  r.Description,
		DisplayURL:   r.DisplayURL,
		FinalURL:     r.FinalURL,
		CallToAction: r.CallToAction,
		PlatformAdID: r.PlatformAdID,
		Status:       domain.CampaignStatus(r.Status),
	}
	if len(r.Assets) > 0 {
		a.Assets = &domain.AdAssets{}
		if err := fromJSONB(r.Assets, a.Assets); err != nil {
			return a, fmt.Errorf("decode assets of ad %s: %w", r.ID, err)
		}
	}
	return a, nil
}

type keywordRow struct {
	ID                string   `db:"id"`
	AdGroupID         string   `db:"ad_group_id"`
	Keyword           string   `db:"keyword"`
	MatchType         string   `db:"match_type"`
	Bid               *float64 `db:"bid"`
	PlatformKeywordID *string  `db:"platform_keyword_id"`
	Status            string   `db:"status"`
}

func (r keywordRow) toDomain() domain.Keyword {
	return domain.Keyword{
		ID:                r.ID,
		AdGroupID:         r.AdGroupID,
		Keyword:           r.Keyword,
		MatchType:         domain.MatchType(r.MatchType),
		Bid:               r.Bid,
		PlatformKeywordID: r.PlatformKeywordID,
		Status:            domain.CampaignStatus(r.Status),
	}
}
