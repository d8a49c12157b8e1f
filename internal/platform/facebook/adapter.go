// Package facebook maps campaigns onto the Meta Marketing API.
package facebook

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"campaign_sync/internal/domain"
	"campaign_sync/internal/platform"
	"campaign_sync/internal/platform/rest"
)

const (
	Platform   = domain.PlatformFacebook
	apiVersion = "v19.0"
)

// ErrKeywordsUnsupported is reported for keyword operations; Facebook has
// no keyword targeting.
var ErrKeywordsUnsupported = errors.New("keywords are not supported by facebook")

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

type idResponse struct {
	ID string `json:"id"`
}

func (r *idResponse) PlatformID() string {
	return r.ID
}

type campaignParams struct {
	Name                string   `json:"name"`
	Objective           string   `json:"objective,omitempty"`
	Status              string   `json:"status"`
	SpecialAdCategories []string `json:"special_ad_categories"`
	DailyBudget         *int64   `json:"daily_budget,omitempty"`
	LifetimeBudget      *int64   `json:"lifetime_budget,omitempty"`
}

type adSetParams struct {
	CampaignID  string         `json:"campaign_id,omitempty"`
	Name        string         `json:"name"`
	Status      string         `json:"status"`
	BidStrategy string         `json:"bid_strategy"`
	Targeting   map[string]any `json:"targeting,omitempty"`
}

type adParams struct {
	AdSetID  string         `json:"adset_id,omitempty"`
	Name     string         `json:"name"`
	Status   string         `json:"status"`
	Creative map[string]any `json:"creative"`
}

func (a *Adapter) path(parts ...string) string {
	p := "/" + apiVersion
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func campaignFor(c *domain.Campaign) campaignParams {
	p := campaignParams{
		Name:                c.Name,
		Objective:           c.Objective,
		Status:              entityStatus(c.Status),
		SpecialAdCategories: []string{},
	}
	if c.Budget != nil {
		cents := toMinorUnits(c.Budget.Amount)
		if c.Budget.Type == domain.BudgetTypeLifetime {
			p.LifetimeBudget = &cents
		} else {
			p.DailyBudget = &cents
		}
	}
	return p
}

func (a *Adapter) CreateCampaign(ctx context.Context, c *domain.Campaign) (platform.CreateResult, error) {
	return a.client.Create(ctx, a.path("act_"+a.accountID, "campaigns"), rest.IdempotencyKey(Platform, "create", c.ID), campaignFor(c), &idResponse{})
}

func (a *Adapter) UpdateCampaign(ctx context.Context, c *domain.Campaign, platformCampaignID string) (platform.Result, error) {
	p := campaignFor(c)
	// Objective is immutable once the campaign exists.
	p.Objective = ""
	return a.client.Update(ctx, http.MethodPost, a.path(platformCampaignID), rest.IdempotencyKey(Platform, "update", c.ID), p)
}

func (a *Adapter) DeleteCampaign(ctx context.Context, platformCampaignID string) error {
	return a.client.Delete(ctx, a.path(platformCampaignID), rest.IdempotencyKey(Platform, "delete", platformCampaignID))
}

func (a *Adapter) adSetFor(g *domain.AdGroup) adSetParams {
	p := adSetParams{
		Name:        g.Name,
		Status:      adSetStatus(g.Status),
		BidStrategy: g.BidStrategy,
		Targeting:   g.Settings,
	}
	if p.BidStrategy == "" {
		p.BidStrategy = a.defaults.GetDefaultString(Platform, domain.EntityAdGroup, "bidStrategy", platform.FacebookDefaultBidStrategy)
	}
	return p
}

func (a *Adapter) CreateAdGroup(ctx context.Context, g *domain.AdGroup, platformCampaignID string) (platform.CreateResult, error) {
	p := a.adSetFor(g)
	p.CampaignID = platformCampaignID
	return a.client.Create(ctx, a.path("act_"+a.accountID, "adsets"), rest.IdempotencyKey(Platform, "create", g.ID), p, &idResponse{})
}

func (a *Adapter) UpdateAdGroup(ctx context.Context, g *domain.AdGroup, platformAdGroupID string) (platform.Result, error) {
	return a.client.Update(ctx, http.MethodPost, a.path(platformAdGroupID), rest.IdempotencyKey(Platform, "update", g.ID), a.adSetFor(g))
}

func (a *Adapter) DeleteAdGroup(ctx context.Context, platformAdGroupID string) error {
	return a.client.Delete(ctx, a.path(platformAdGroupID), rest.IdempotencyKey(Platform, "delete", platformAdGroupID))
}

func (a *Adapter) adFor(ad *domain.Ad) adParams {
	cta := a.defaults.GetDefaultString(Platform, domain.EntityAd, "callToAction", platform.FacebookDefaultCallToAction)
	if ad.CallToAction != nil && *ad.CallToAction != "" {
		cta = *ad.CallToAction
	}

	link := map[string]any{
		"message":        ad.Description,
		"name":           ad.Headline,
		"call_to_action": map[string]any{"type": cta},
	}
	if ad.FinalURL != nil {
		link["link"] = *ad.FinalURL
	}
	if ad.Assets != nil && len(ad.Assets.Images) > 0 {
		link["picture"] = ad.Assets.Images[0]
	}

	return adParams{
		Name:   ad.Headline,
		Status: entityStatus(ad.Status),
		Creative: map[string]any{
			"object_story_spec": map[string]any{"link_data": link},
		},
	}
}

func (a *Adapter) CreateAd(ctx context.Context, ad *domain.Ad, platformAdGroupID string) (platform.CreateResult, error) {
	p := a.adFor(ad)
	p.AdSetID = platformAdGroupID
	return a.client.Create(ctx, a.path("act_"+a.accountID, "ads"), rest.IdempotencyKey(Platform, "create", ad.ID), p, &idResponse{})
}

func (a *Adapter) UpdateAd(ctx context.Context, ad *domain.Ad, platformAdID string) (platform.Result, error) {
	return a.client.Update(ctx, http.MethodPost, a.path(platformAdID), rest.IdempotencyKey(Platform, "update", ad.ID), a.adFor(ad))
}

func (a *Adapter) DeleteAd(ctx context.Context, platformAdID string) error {
	return a.client.Delete(ctx, a.path(platformAdID), rest.IdempotencyKey(Platform, "delete", platformAdID))
}

func (a *Adapter) CreateKeyword(context.Context, *domain.Keyword, string) (platform.CreateResult, error) {
	return platform.CreateResult{Success: false, Error: ErrKeywordsUnsupported.Error()}, nil
}

func (a *Adapter) UpdateKeyword(context.Context, *domain.Keyword, string) (platform.Result, error) {
	return platform.Result{Success: false, Error: ErrKeywordsUnsupported.Error()}, nil
}

func (a *Adapter) DeleteKeyword(context.Context, string) error {
	return ErrKeywordsUnsupported
}

func (a *Adapter) GetCampaignStatus(ctx context.Context, platformCampaignID string) (domain.CampaignStatus, error) {
	var resp struct {
		Status          string `json:"status"`
		EffectiveStatus string `json:"effective_status"`
	}
	if err := a.client.Get(ctx, a.path(platformCampaignID)+"?fields=status,effective_status", &resp); err != nil {
		return "", fmt.Errorf("get campaign %s: %w", platformCampaignID, err)
	}

	switch resp.Status {
	case "ACTIVE":
		return domain.CampaignStatusActive, nil
	case "PAUSED":
		return domain.CampaignStatusPaused, nil
	case "ARCHIVED", "DELETED":
		return domain.CampaignStatusCompleted, nil
	default:
		return "", fmt.Errorf("get campaign %s: unknown status %q", platformCampaignID, resp.Status)
	}
}

func entityStatus(s domain.CampaignStatus) string {
	switch s {
	case domain.CampaignStatusActive:
		return "ACTIVE"
	case domain.CampaignStatusCompleted:
		return "ARCHIVED"
	default:
		return "PAUSED"
	}
}

func adSetStatus(s domain.AdGroupStatus) string {
	switch s {
	case domain.AdGroupStatusActive:
		return "ACTIVE"
	case domain.AdGroupStatusRemoved:
		return "DELETED"
	default:
		return "PAUSED"
	}
}

// toMinorUnits converts an amount to cents, the unit budgets are sent in.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
