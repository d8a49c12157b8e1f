package domain

import "time"

// Platform identifies an external ad platform. It is an open set: adapters
// and defaults can be registered for platforms not listed in KnownPlatforms.
type Platform = string

const (
	PlatformReddit   Platform = "reddit"
	PlatformGoogle   Platform = "google"
	PlatformFacebook Platform = "facebook"
)

// KnownPlatforms lists the platforms that ship built-in defaults.
var KnownPlatforms = []Platform{PlatformReddit, PlatformGoogle, PlatformFacebook}

type CampaignSetStatus string

const (
	CampaignSetStatusDraft     CampaignSetStatus = "draft"
	CampaignSetStatusPending   CampaignSetStatus = "pending"
	CampaignSetStatusSyncing   CampaignSetStatus = "syncing"
	CampaignSetStatusActive    CampaignSetStatus = "active"
	CampaignSetStatusPaused    CampaignSetStatus = "paused"
	CampaignSetStatusCompleted CampaignSetStatus = "completed"
	CampaignSetStatusArchived  CampaignSetStatus = "archived"
	CampaignSetStatusError     CampaignSetStatus = "error"
)

type SyncStatus string

const (
	SyncStatusPending  SyncStatus = "pending"
	SyncStatusSyncing  SyncStatus = "syncing"
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusFailed   SyncStatus = "failed"
	SyncStatusConflict SyncStatus = "conflict"
)

// CampaignStatus is the lifecycle status of a campaign, ad or keyword.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusPending   CampaignStatus = "pending"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusError     CampaignStatus = "error"
)

type AdGroupStatus string

const (
	AdGroupStatusActive  AdGroupStatus = "active"
	AdGroupStatusPaused  AdGroupStatus = "paused"
	AdGroupStatusRemoved AdGroupStatus = "removed"
)

type MatchType string

const (
	MatchTypeBroad  MatchType = "broad"
	MatchTypePhrase MatchType = "phrase"
	MatchTypeExact  MatchType = "exact"
)

type BudgetType string

const (
	BudgetTypeDaily    BudgetType = "daily"
	BudgetTypeLifetime BudgetType = "lifetime"
	BudgetTypeShared   BudgetType = "shared"
)

type Budget struct {
	Type     BudgetType `json:"type" validate:"required,oneof=daily lifetime shared"`
	Amount   float64    `json:"amount" validate:"gt=0"`
	Currency string     `json:"currency" validate:"required,len=3"`
}

// SetConfig is the generation recipe a campaign set was built from.
type SetConfig struct {
	DataSourceID     string                `json:"dataSourceId"`
	Platforms        []Platform            `json:"platforms"`
	AdTypes          map[Platform][]string `json:"adTypes,omitempty"`
	CampaignTemplate map[string]any        `json:"campaignTemplate,omitempty"`
	AdGroupTemplate  map[string]any        `json:"adGroupTemplate,omitempty"`
	AdTemplate       map[string]any        `json:"adTemplate,omitempty"`
	BudgetTemplate   *Budget               `json:"budgetTemplate,omitempty"`
	Targeting        map[string]any        `json:"targeting,omitempty"`
	Schedule         map[string]any        `json:"schedule,omitempty"`
}

type CampaignSet struct {
	ID         string            `json:"id" db:"id"`
	UserID     string            `json:"userId" db:"user_id"`
	Name       string            `json:"name" db:"name"`
	Config     SetConfig         `json:"config" db:"-"`
	Campaigns  []Campaign        `json:"campaigns" db:"-"`
	Status     CampaignSetStatus `json:"status" db:"status"`
	SyncStatus SyncStatus        `json:"syncStatus" db:"sync_status"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time         `json:"updatedAt" db:"updated_at"`
}

// Campaign is the root of a platform-side hierarchy.
// PlatformCampaignID is set iff the campaign was created on the platform.
type Campaign struct {
	ID                 string          `json:"id" validate:"required"`
	CampaignSetID      string          `json:"campaignSetId"`
	Name               string          `json:"name" validate:"required"`
	Platform           Platform        `json:"platform" validate:"required"`
	Objective          string          `json:"objective" validate:"required"`
	OrderIndex         int             `json:"orderIndex"`
	Status             CampaignStatus  `json:"status" validate:"omitempty,oneof=draft pending active paused completed error"`
	SyncStatus         SyncStatus      `json:"syncStatus"`
	PlatformCampaignID *string         `json:"platformCampaignId,omitempty"`
	PlatformData       map[string]any  `json:"platformData,omitempty"`
	CampaignData       map[string]any  `json:"campaignData,omitempty"`
	Budget             *Budget         `json:"budget,omitempty" validate:"omitempty"`
	SyncError          *string         `json:"syncError,omitempty"`
	RetryCount         int             `json:"retryCount"`
	LastSyncedStatus   *CampaignStatus `json:"lastSyncedStatus,omitempty"`
	LastSyncedAt       *time.Time      `json:"lastSyncedAt,omitempty"`
	AdGroups           []AdGroup       `json:"adGroups" validate:"-"`
}

// HasPendingStatusEdit reports whether the local status differs from the
// status last pushed to the platform.
func (c *Campaign) HasPendingStatusEdit() bool {
	return c.LastSyncedStatus != nil && *c.LastSyncedStatus != c.Status
}

type AdGroup struct {
	ID                string         `json:"id" validate:"required"`
	CampaignID        string         `json:"campaignId"`
	Name              string         `json:"name" validate:"required"`
	OrderIndex        int            `json:"orderIndex"`
	Status            AdGroupStatus  `json:"status" validate:"omitempty,oneof=active paused removed"`
	BidStrategy       string         `json:"bidStrategy" validate:"required"`
	Settings          map[string]any `json:"settings,omitempty"`
	PlatformAdGroupID *string        `json:"platformAdGroupId,omitempty"`
	Ads               []Ad           `json:"ads" validate:"-"`
	Keywords          []Keyword      `json:"keywords" validate:"-"`
}

type AdAssets struct {
	Images       []string `json:"images,omitempty"`
	Videos       []string `json:"videos,omitempty"`
	Logos        []string `json:"logos,omitempty"`
	CustomAssets []string `json:"customAssets,omitempty"`
}

type Ad struct {
	ID           string         `json:"id" validate:"required"`
	AdGroupID    string         `json:"adGroupId"`
	OrderIndex   int            `json:"orderIndex"`
	Headline     string         `json:"headline" validate:"required"`
	Description  string         `json:"description" validate:"required"`
	DisplayURL   *string        `json:"displayUrl,omitempty"`
	FinalURL     *string        `json:"finalUrl,omitempty" validate:"omitempty,url"`
	CallToAction *string        `json:"callToAction,omitempty"`
	Assets       *AdAssets      `json:"assets,omitempty" validate:"-"`
	PlatformAdID *string        `json:"platformAdId,omitempty"`
	Status       CampaignStatus `json:"status" validate:"omitempty,oneof=draft pending active paused completed error"`
}

type Keyword struct {
	ID                string         `json:"id" validate:"required"`
	AdGroupID         string         `json:"adGroupId"`
	Keyword           string         `json:"keyword" validate:"required"`
	MatchType         MatchType      `json:"matchType" validate:"required,oneof=broad phrase exact"`
	Bid               *float64       `json:"bid,omitempty" validate:"omitempty,gt=0"`
	PlatformKeywordID *string        `json:"platformKeywordId,omitempty"`
	Status            CampaignStatus `json:"status" validate:"omitempty,oneof=draft pending active paused completed error"`
}
