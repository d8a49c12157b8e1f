// Package reddit maps campaigns onto the Reddit Ads API.
package reddit

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"campaign_sync/internal/domain"
	"campaign_sync/internal/platform"
	"campaign_sync/internal/platform/rest"
)

const Platform = domain.PlatformReddit

type Adapter struct {
	client    *rest.Client
	accountID string
	defaults  *platform.DefaultsResolver
}

func New(client *rest.Client, accountID string, defaults *platform.DefaultsResolver) *Adapter {
	return &Adapter{
		client:    client,
		accountID: accountID,
		defaults:  defaults,
	}
}

func (a *Adapter) Platform() string {
	return Platform
}

type createResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (r *createResponse) PlatformID() string {
	return r.Data.ID
}

type campaignPayload struct {
	Name             string `json:"name"`
	Objective        string `json:"objective"`
	ConfiguredStatus string `json:"configured_status"`
	SpendCap         *int64 `json:"spend_cap,omitempty"`
	GoalType         string `json:"goal_type,omitempty"`
}

type adGroupPayload struct {
	CampaignID       string         `json:"campaign_id,omitempty"`
	Name             string         `json:"name"`
	BidStrategy      string         `json:"bid_strategy"`
	ConfiguredStatus string         `json:"configured_status"`
	Targeting        map[string]any `json:"targeting,omitempty"`
}

type adPayload struct {
	AdGroupID        string   `json:"ad_group_id,omitempty"`
	Name             string   `json:"name"`
	Headline         string   `json:"headline"`
	Body             string   `json:"body"`
	ClickURL         string   `json:"click_url,omitempty"`
	DisplayURL       string   `json:"display_url,omitempty"`
	CallToAction     string   `json:"call_to_action"`
	ImageURLs        []string `json:"image_urls,omitempty"`
	ConfiguredStatus string   `json:"configured_status"`
}

type keywordPayload struct {
	AdGroupID string `json:"ad_group_id,omitempty"`
	Keyword   string `json:"keyword"`
	MatchType string `json:"match_type"`
	Bid       *int64 `json:"bid_micros,omitempty"`
	Paused    bool   `json:"paused"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (a *Adapter) campaignPayload(c *domain.Campaign) campaignPayload {
	p := campaignPayload{
		Name:             c.Name,
		Objective:        c.Objective,
		ConfiguredStatus: configuredStatus(c.Status),
	}
	if p.Objective == "" {
		p.Objective = a.defaults.GetDefaultString(Platform, domain.EntityCampaign, "objective", platform.RedditDefaultObjective)
	}
	if c.Budget != nil {
		spend := toMicros(c.Budget.Amount)
		p.SpendCap = &spend
		if c.Budget.Type == domain.BudgetTypeLifetime {
			p.GoalType = "LIFETIME_SPEND"
		} else {
			p.GoalType = "DAILY_SPEND"
		}
	}
	return p
}

func (a *Adapter) CreateCampaign(ctx context.Context, c *domain.Campaign) (platform.CreateResult, error) {
	path := fmt.Sprintf("/api/v3/ad_accounts/%s/campaigns", url.PathEscape(a.accountID))
	key := rest.IdempotencyKey(Platform, "create", c.ID)
	return a.client.Create(ctx, path, key, envelope[campaignPayload]{Data: a.campaignPayload(c)}, &createResponse{})
}

func (a *Adapter) UpdateCampaign(ctx context.Context, c *domain.Campaign, platformCampaignID string) (platform.Result, error) {
	path := "/api/v3/campaigns/" + url.PathEscape(platformCampaignID)
	key := rest.IdempotencyKey(Platform, "update", c.ID)
	return a.client.Update(ctx, http.MethodPatch, path, key, envelope[campaignPayload]{Data: a.campaignPayload(c)})
}

func (a *Adapter) DeleteCampaign(ctx context.Context, platformCampaignID string) error {
	path := "/api/v3/campaigns/" + url.PathEscape(platformCampaignID)
	return a.client.Delete(ctx, path, rest.IdempotencyKey(Platform, "delete", platformCampaignID))
}

func (a *Adapter) adGroupPayload(g *domain.AdGroup) adGroupPayload {
	p := adGroupPayload{
		Name:             g.Name,
		BidStrategy:      g.BidStrategy,
		ConfiguredStatus: adGroupStatus(g.Status),
		Targeting:        g.Settings,
	}
	if p.BidStrategy == "" {
		p.BidStrategy = a.defaults.GetDefaultString(Platform, domain.EntityAdGroup, "bidStrategy", platform.RedditDefaultBidStrategy)
	}
	return p
}

func (a *Adapter) CreateAdGroup(ctx context.Context, g *domain.AdGroup, platformCampaignID string) (platform.CreateResult, error) {
	path := fmt.Sprintf("/api/v3/ad_accounts/%s/ad_groups", url.PathEscape(a.accountID))
	p := a.adGroupPayload(g)
	p.CampaignID = platformCampaignID
	return a.client.Create(ctx, path, rest.IdempotencyKey(Platform, "create", g.ID), envelope[adGroupPayload]{Data: p}, &createResponse{})
}

func (a *Adapter) UpdateAdGroup(ctx context.Context, g *domain.AdGroup, platformAdGroupID string) (platform.Result, error) {
	path := "/api/v3/ad_groups/" + url.PathEscape(platformAdGroupID)
	return a.client.Update(ctx, http.MethodPatch, path, rest.IdempotencyKey(Platform, "update", g.ID), envelope[adGroupPayload]{Data: a.adGroupPayload(g)})
}

func (a *Adapter) DeleteAdGroup(ctx context.Context, platformAdGroupID string) error {
	path := "/api/v3/ad_groups/" + url.PathEscape(platformAdGroupID)
	return a.client.Delete(ctx, path, rest.IdempotencyKey(Platform, "delete", platformAdGroupID))
}

func (a *Adapter) adPayload(ad *domain.Ad) adPayload {
	p := adPayload{
		Name:             ad.Headline,
		Headline:         ad.Headline,
		Body:             ad.Description,
		ConfiguredStatus: configuredStatus(ad.Status),
	}
	if ad.FinalURL != nil {
		p.ClickURL = *ad.FinalURL
	}
	if ad.DisplayURL != nil {
		p.DisplayURL = *ad.DisplayURL
	}
	if ad.CallToAction != nil && *ad.CallToAction != "" {
		p.CallToAction = *ad.CallToAction
	} else {
		p.CallToAction = a.defaults.GetDefaultString(Platform, domain.EntityAd, "callToAction", platform.RedditDefaultCallToAction)
	}
	if ad.Assets != nil {
		p.ImageURLs = ad.Assets.Images
	}
	return p
}

func (a *Adapter) CreateAd(ctx context.Context, ad *domain.Ad, platformAdGroupID string) (platform.CreateResult, error) {
	path := fmt.Sprintf("/api/v3/ad_accounts/%s/ads", url.PathEscape(a.accountID))
	p := a.adPayload(ad)
	p.AdGroupID = platformAdGroupID
	return a.client.Create(ctx, path, rest.IdempotencyKey(Platform, "create", ad.ID), envelope[adPayload]{Data: p}, &createResponse{})
}

func (a *Adapter) UpdateAd(ctx context.Context, ad *domain.Ad, platformAdID string) (platform.Result, error) {
	path := "/api/v3/ads/" + url.PathEscape(platformAdID)
	return a.client.Update(ctx, http.MethodPatch, path, rest.IdempotencyKey(Platform, "update", ad.ID), envelope[adPayload]{Data: a.adPayload(ad)})
}

func (a *Adapter) DeleteAd(ctx context.Context, platformAdID string) error {
	path := "/api/v3/ads/" + url.PathEscape(platformAdID)
	return a.client.Delete(ctx, path, rest.IdempotencyKey(Platform, "delete", platformAdID))
}

func keywordPayloadFor(k *domain.Keyword) keywordPayload {
	p := keywordPayload{
		Keyword:   k.Keyword,
		MatchType: string(k.MatchType),
		Paused:    k.Status == domain.CampaignStatusPaused,
	}
	if p.MatchType == "" {
		p.MatchType = string(domain.MatchTypeBroad)
	}
	if k.Bid != nil {
		bid := toMicros(*k.Bid)
		p.Bid = &bid
	}
	return p
}

func (a *Adapter) CreateKeyword(ctx context.Context, k *domain.Keyword, platformAdGroupID string) (platform.CreateResult, error) {
	path := fmt.Sprintf("/api/v3/ad_groups/%s/keywords", url.PathEscape(platformAdGroupID))
	p := keywordPayloadFor(k)
	p.AdGroupID = platformAdGroupID
	return a.client.Create(ctx, path, rest.IdempotencyKey(Platform, "create", k.ID), envelope[keywordPayload]{Data: p}, &createResponse{})
}

func (a *Adapter) UpdateKeyword(ctx context.Context, k *domain.Keyword, platformKeywordID string) (platform.Result, error) {
	path := "/api/v3/keywords/" + url.PathEscape(platformKeywordID)
	return a.client.Update(ctx, http.MethodPatch, path, rest.IdempotencyKey(Platform, "update", k.ID), envelope[keywordPayload]{Data: keywordPayloadFor(k)})
}

func (a *Adapter) DeleteKeyword(ctx context.Context, platformKeywordID string) error {
	path := "/api/v3/keywords/" + url.PathEscape(platformKeywordID)
	return a.client.Delete(ctx, path, rest.IdempotencyKey(Platform, "delete", platformKeywordID))
}

func (a *Adapter) GetCampaignStatus(ctx context.Context, platformCampaignID string) (domain.CampaignStatus, error) {
	var resp envelope[struct {
		ConfiguredStatus string `json:"configured_status"`
		EffectiveStatus  string `json:"effective_status"`
	}]
	if err := a.client.Get(ctx, "/api/v3/campaigns/"+url.PathEscape(platformCampaignID), &resp); err != nil {
		return "", fmt.Errorf("get campaign %s: %w", platformCampaignID, err)
	}

	switch resp.Data.ConfiguredStatus {
	case "ACTIVE":
		if resp.Data.EffectiveStatus == "COMPLETED" {
			return domain.CampaignStatusCompleted, nil
		}
		return domain.CampaignStatusActive, nil
	case "PAUSED":
		return domain.CampaignStatusPaused, nil
	case "ARCHIVED", "DELETED":
		return domain.CampaignStatusCompleted, nil
	default:
		return "", fmt.Errorf("get campaign %s: unknown status %q", platformCampaignID, resp.Data.ConfiguredStatus)
	}
}

// configuredStatus maps a local status onto Reddit's configured_status.
// Anything not yet live is pushed paused.
func configuredStatus(s domain.CampaignStatus) string {
	switch s {
	case domain.CampaignStatusActive:
		return "ACTIVE"
	case domain.CampaignStatusCompleted:
		return "ARCHIVED"
	default:
		return "PAUSED"
	}
}

func adGroupStatus(s domain.AdGroupStatus) string {
	switch s {
	case domain.AdGroupStatusActive:
		return "ACTIVE"
	case domain.AdGroupStatusRemoved:
		return "ARCHIVED"
	default:
		return "PAUSED"
	}
}

func toMicros(amount float64) int64 {
	return int64(math.Round(amount * 1_000_000))
}
