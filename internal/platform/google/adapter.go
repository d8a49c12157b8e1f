// Package google maps campaigns onto Google Ads mutate operations.
// Platform ids are Google resource names.
package google

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"campaign_sync/internal/domain"
	"campaign_sync/internal/platform"
	"campaign_sync/internal/platform/rest"
)

const (
	Platform   = domain.PlatformGoogle
	apiVersion = "v17"
)

type Adapter struct {
	client     *rest.Client
	customerID string
	defaults   *platform.DefaultsResolver
}

func New(client *rest.Client, customerID string, defaults *platform.DefaultsResolver) *Adapter {
	return &Adapter{
		client:     client,
		customerID: strings.ReplaceAll(customerID, "-", ""),
		defaults:   defaults,
	}
}

func (a *Adapter) Platform() string {
	return Platform
}

type operation struct {
	Create     any    `json:"create,omitempty"`
	Update     any    `json:"update,omitempty"`
	UpdateMask string `json:"updateMask,omitempty"`
	Remove     string `json:"remove,omitempty"`
}

type mutateRequest struct {
	Operations []operation `json:"operations"`
}

type mutateResponse struct {
	Results []struct {
		ResourceName string `json:"resourceName"`
	} `json:"results"`
}

func (r *mutateResponse) PlatformID() string {
	if len(r.Results) == 0 {
		return ""
	}
	return r.Results[0].ResourceName
}

type campaignBudget struct {
	AmountMicros   int64  `json:"amountMicros"`
	DeliveryMethod string `json:"deliveryMethod"`
	Period         string `json:"period"`
}

type campaignResource struct {
	ResourceName           string          `json:"resourceName,omitempty"`
	Name                   string          `json:"name"`
	Status                 string          `json:"status"`
	AdvertisingChannelType string          `json:"advertisingChannelType,omitempty"`
	Budget                 *campaignBudget `json:"campaignBudget,omitempty"`
}

type adGroupResource struct {
	ResourceName string `json:"resourceName,omitempty"`
	Campaign     string `json:"campaign,omitempty"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Type         string `json:"type,omitempty"`
	BidStrategy  string `json:"biddingStrategyType,omitempty"`
}

type adResource struct {
	ResourceName string `json:"resourceName,omitempty"`
	AdGroup      string `json:"adGroup,omitempty"`
	Status       string `json:"status"`
	Ad           struct {
		FinalURLs        []string `json:"finalUrls,omitempty"`
		DisplayURL       string   `json:"displayUrl,omitempty"`
		ResponsiveSearch struct {
			Headlines    []textAsset `json:"headlines"`
			Descriptions []textAsset `json:"descriptions"`
		} `json:"responsiveSearchAd"`
	} `json:"ad"`
}

type textAsset struct {
	Text string `json:"text"`
}

type criterionResource struct {
	ResourceName string `json:"resourceName,omitempty"`
	AdGroup      string `json:"adGroup,omitempty"`
	Status       string `json:"status"`
	CPCBidMicros *int64 `json:"cpcBidMicros,omitempty"`
	Keyword      struct {
		Text      string `json:"text"`
		MatchType string `json:"matchType"`
	} `json:"keyword"`
}

func (a *Adapter) mutatePath(resource string) string {
	return fmt.Sprintf("/%s/customers/%s/%s:mutate", apiVersion, a.customerID, resource)
}

func (a *Adapter) create(ctx context.Context, resource, entityID string, body any) (platform.CreateResult, error) {
	req := mutateRequest{Operations: []operation{{Create: body}}}
	return a.client.Create(ctx, a.mutatePath(resource), rest.IdempotencyKey(Platform, "create", entityID), req, &mutateResponse{})
}

func (a *Adapter) update(ctx context.Context, resource, entityID, mask string, body any) (platform.Result, error) {
	req := mutateRequest{Operations: []operation{{Update: body, UpdateMask: mask}}}
	return a.client.Update(ctx, http.MethodPost, a.mutatePath(resource), rest.IdempotencyKey(Platform, "update", entityID), req)
}

func (a *Adapter) remove(ctx context.Context, resource, resourceName string) error {
	req := mutateRequest{Operations: []operation{{Remove: resourceName}}}
	err := a.client.Do(ctx, http.MethodPost, a.mutatePath(resource), rest.IdempotencyKey(Platform, "delete", resourceName), req, nil)
	if err != nil {
		return fmt.Errorf("remove %s: %w", resourceName, err)
	}
	return nil
}

func campaignFor(c *domain.Campaign) campaignResource {
	r := campaignResource{
		Name:                   c.Name,
		Status:                 entityStatus(c.Status),
		AdvertisingChannelType: "SEARCH",
	}
	if c.Budget != nil {
		r.Budget = &campaignBudget{
			AmountMicros:   toMicros(c.Budget.Amount),
			DeliveryMethod: "STANDARD",
			Period:         "DAILY",
		}
		if c.Budget.Type == domain.BudgetTypeLifetime {
			r.Budget.Period = "CUSTOM_PERIOD"
		}
	}
	return r
}

func (a *Adapter) CreateCampaign(ctx context.Context, c *domain.Campaign) (platform.CreateResult, error) {
	return a.create(ctx, "campaigns", c.ID, campaignFor(c))
}

func (a *Adapter) UpdateCampaign(ctx context.Context, c *domain.Campaign, platformCampaignID string) (platform.Result, error) {
	r := campaignFor(c)
	r.ResourceName = platformCampaignID
	r.AdvertisingChannelType = ""
	return a.update(ctx, "campaigns", c.ID, "name,status,campaignBudget", r)
}

func (a *Adapter) DeleteCampaign(ctx context.Context, platformCampaignID string) error {
	return a.remove(ctx, "campaigns", platformCampaignID)
}

func (a *Adapter) adGroupFor(g *domain.AdGroup) adGroupResource {
	r := adGroupResource{
		Name:        g.Name,
		Status:      adGroupStatus(g.Status),
		BidStrategy: g.BidStrategy,
	}
	if r.BidStrategy == "" {
		r.BidStrategy = a.defaults.GetDefaultString(Platform, domain.EntityAdGroup, "bidStrategy", platform.GoogleDefaultBidStrategy)
	}
	return r
}

func (a *Adapter) CreateAdGroup(ctx context.Context, g *domain.AdGroup, platformCampaignID string) (platform.CreateResult, error) {
	r := a.adGroupFor(g)
	r.Campaign = platformCampaignID
	r.Type = "SEARCH_STANDARD"
	return a.create(ctx, "adGroups", g.ID, r)
}

func (a *Adapter) UpdateAdGroup(ctx context.Context, g *domain.AdGroup, platformAdGroupID string) (platform.Result, error) {
	r := a.adGroupFor(g)
	r.ResourceName = platformAdGroupID
	return a.update(ctx, "adGroups", g.ID, "name,status", r)
}

func (a *Adapter) DeleteAdGroup(ctx context.Context, platformAdGroupID string) error {
	return a.remove(ctx, "adGroups", platformAdGroupID)
}

func adFor(ad *domain.Ad) adResource {
	var r adResource
	r.Status = entityStatus(ad.Status)
	if ad.FinalURL != nil {
		r.Ad.FinalURLs = []string{*ad.FinalURL}
	}
	if ad.DisplayURL != nil {
		r.Ad.DisplayURL = *ad.DisplayURL
	}
	r.Ad.ResponsiveSearch.Headlines = []textAsset{{Text: ad.Headline}}
	r.Ad.ResponsiveSearch.Descriptions = []textAsset{{Text: ad.Description}}
	return r
}

func (a *Adapter) CreateAd(ctx context.Context, ad *domain.Ad, platformAdGroupID string) (platform.CreateResult, error) {
	r := adFor(ad)
	r.AdGroup = platformAdGroupID
	return a.create(ctx, "adGroupAds", ad.ID, r)
}

func (a *Adapter) UpdateAd(ctx context.Context, ad *domain.Ad, platformAdID string) (platform.Result, error) {
	r := adFor(ad)
	r.ResourceName = platformAdID
	return a.update(ctx, "adGroupAds", ad.ID, "status,ad.finalUrls,ad.responsiveSearchAd", r)
}

func (a *Adapter) DeleteAd(ctx context.Context, platformAdID string) error {
	return a.remove(ctx, "adGroupAds", platformAdID)
}

func (a *Adapter) criterionFor(k *domain.Keyword) criterionResource {
	var r criterionResource
	r.Status = entityStatus(k.Status)
	r.Keyword.Text = k.Keyword
	r.Keyword.MatchType = strings.ToUpper(string(k.MatchType))
	if r.Keyword.MatchType == "" {
		r.Keyword.MatchType = strings.ToUpper(a.defaults.GetDefaultString(Platform, domain.EntityKeyword, "matchType", platform.GoogleDefaultMatchType))
	}
	if k.Bid != nil {
		bid := toMicros(*k.Bid)
		r.CPCBidMicros = &bid
	}
	return r
}

func (a *Adapter) CreateKeyword(ctx context.Context, k *domain.Keyword, platformAdGroupID string) (platform.CreateResult, error) {
	r := a.criterionFor(k)
	r.AdGroup = platformAdGroupID
	return a.create(ctx, "adGroupCriteria", k.ID, r)
}

func (a *Adapter) UpdateKeyword(ctx context.Context, k *domain.Keyword, platformKeywordID string) (platform.Result, error) {
	r := a.criterionFor(k)
	r.ResourceName = platformKeywordID
	return a.update(ctx, "adGroupCriteria", k.ID, "status,cpcBidMicros", r)
}

func (a *Adapter) DeleteKeyword(ctx context.Context, platformKeywordID string) error {
	return a.remove(ctx, "adGroupCriteria", platformKeywordID)
}

type searchResponse struct {
	Results []struct {
		Campaign struct {
			Status        string `json:"status"`
			ServingStatus string `json:"servingStatus"`
		} `json:"campaign"`
	} `json:"results"`
}

func (a *Adapter) GetCampaignStatus(ctx context.Context, platformCampaignID string) (domain.CampaignStatus, error) {
	path := fmt.Sprintf("/%s/customers/%s/googleAds:search", apiVersion, a.customerID)
	query := map[string]string{
		"query": fmt.Sprintf(
			"SELECT campaign.status, campaign.serving_status FROM campaign WHERE campaign.resource_name = '%s'",
			strings.ReplaceAll(platformCampaignID, "'", ""),
		),
	}

	var resp searchResponse
	if err := a.client.Do(ctx, http.MethodPost, path, "", query, &resp); err != nil {
		return "", fmt.Errorf("get campaign %s: %w", platformCampaignID, err)
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("get campaign %s: %w", platformCampaignID, platform.ErrNotFound)
	}

	c := resp.Results[0].Campaign
	switch c.Status {
	case "ENABLED":
		if c.ServingStatus == "ENDED" {
			return domain.CampaignStatusCompleted, nil
		}
		return domain.CampaignStatusActive, nil
	case "PAUSED":
		return domain.CampaignStatusPaused, nil
	case "REMOVED":
		return domain.CampaignStatusCompleted, nil
	default:
		return "", fmt.Errorf("get campaign %s: unknown status %q", platformCampaignID, c.Status)
	}
}

func entityStatus(s domain.CampaignStatus) string {
	if s == domain.CampaignStatusActive {
		return "ENABLED"
	}
	return "PAUSED"
}

func adGroupStatus(s domain.AdGroupStatus) string {
	switch s {
	case domain.AdGroupStatusActive:
		return "ENABLED"
	case domain.AdGroupStatusRemoved:
		return "REMOVED"
	default:
		return "PAUSED"
	}
}

func toMicros(amount float64) int64 {
	return int64(math.Round(amount * 1_000_000))
}
