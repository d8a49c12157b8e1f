package domain

// FieldChange describes one tracked field that differs between the
// persisted and the generated version of an entity.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

type CampaignUpdate struct {
	Campaign Campaign      `json:"campaign"`
	Changes  []FieldChange `json:"changes"`
}

type AdGroupChange struct {
	AdGroup    AdGroup       `json:"adGroup"`
	CampaignID string        `json:"campaignId"`
	Changes    []FieldChange `json:"changes,omitempty"`
}

type AdChange struct {
	Ad         Ad            `json:"ad"`
	AdGroupID  string        `json:"adGroupId"`
	CampaignID string        `json:"campaignId"`
	Changes    []FieldChange `json:"changes,omitempty"`
}

type KeywordChange struct {
	Keyword    Keyword       `json:"keyword"`
	AdGroupID  string        `json:"adGroupId"`
	CampaignID string        `json:"campaignId"`
	Changes    []FieldChange `json:"changes,omitempty"`
}

// EntityRemoval identifies an entity that leaves its persisted position,
// either dropped from the generated tree or moved to another parent.
// ParentID is the owning campaign for ad groups and the owning ad group for
// ads and keywords. PlatformID is the id persisted before the sync.
type EntityRemoval struct {
	ID         string `json:"id"`
	ParentID   string `json:"parentId,omitempty"`
	CampaignID string `json:"campaignId,omitempty"`
	PlatformID string `json:"platformId,omitempty"`
}

// CampaignSetDiff is the set of changes that turn the persisted hierarchy
// into the generated one.
type CampaignSetDiff struct {
	CampaignsToAdd    []Campaign       `json:"campaignsToAdd"`
	CampaignsToUpdate []CampaignUpdate `json:"campaignsToUpdate"`
	CampaignsToRemove []string         `json:"campaignsToRemove"`

	AdGroupsToAdd    []AdGroupChange `json:"adGroupsToAdd"`
	AdGroupsToUpdate []AdGroupChange `json:"adGroupsToUpdate"`
	AdGroupsToRemove []EntityRemoval `json:"adGroupsToRemove"`

	AdsToAdd    []AdChange      `json:"adsToAdd"`
	AdsToUpdate []AdChange      `json:"adsToUpdate"`
	AdsToRemove []EntityRemoval `json:"adsToRemove"`

	KeywordsToAdd    []KeywordChange `json:"keywordsToAdd"`
	KeywordsToUpdate []KeywordChange `json:"keywordsToUpdate"`
	KeywordsToRemove []EntityRemoval `json:"keywordsToRemove"`
}

// IsEmpty reports whether applying the diff would be a no-op.
func (d *CampaignSetDiff) IsEmpty() bool {
	return d.Size() == 0
}

// Size returns the total number of entity changes in the diff.
func (d *CampaignSetDiff) Size() int {
	return len(d.CampaignsToAdd) + len(d.CampaignsToUpdate) + len(d.CampaignsToRemove) +
		len(d.AdGroupsToAdd) + len(d.AdGroupsToUpdate) + len(d.AdGroupsToRemove) +
		len(d.AdsToAdd) + len(d.AdsToUpdate) + len(d.AdsToRemove) +
		len(d.KeywordsToAdd) + len(d.KeywordsToUpdate) + len(d.KeywordsToRemove)
}
