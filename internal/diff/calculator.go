// Package diff computes the changes between the persisted campaign tree of
// a set and a freshly generated one. Entities are matched by local id only.
package diff

import (
	"campaign_sync/internal/domain"
)

type adGroupRef struct {
	adGroup    *domain.AdGroup
	campaignID string
}

type adRef struct {
	ad         *domain.Ad
	adGroupID  string
	campaignID string
}

type keywordRef struct {
	keyword    *domain.Keyword
	adGroupID  string
	campaignID string
}

// index is a flattened campaign tree keyed by local id, one map per level.
type index struct {
	campaigns map[string]*domain.Campaign
	adGroups  map[string]adGroupRef
	ads       map[string]adRef
	keywords  map[string]keywordRef
}

func buildIndex(campaigns []domain.Campaign) index {
	idx := index{
		campaigns: make(map[string]*domain.Campaign, len(campaigns)),
		adGroups:  make(map[string]adGroupRef),
		ads:       make(map[string]adRef),
		keywords:  make(map[string]keywordRef),
	}

	for i := range campaigns {
		c := &campaigns[i]
		idx.campaigns[c.ID] = c

		for j := range c.AdGroups {
			g := &c.AdGroups[j]
			idx.adGroups[g.ID] = adGroupRef{adGroup: g, campaignID: c.ID}

			for k := range g.Ads {
				idx.ads[g.Ads[k].ID] = adRef{ad: &g.Ads[k], adGroupID: g.ID, campaignID: c.ID}
			}
			for k := range g.Keywords {
				idx.keywords[g.Keywords[k].ID] = keywordRef{keyword: &g.Keywords[k], adGroupID: g.ID, campaignID: c.ID}
			}
		}
	}

	return idx
}

// Calculate returns the diff that turns current into generated. It does no
// I/O. Lists follow the order of the generated tree for additions and
// updates and the order of the current tree for removals.
func Calculate(current []domain.Campaign, generated []domain.Campaign) domain.CampaignSetDiff {
	oldIdx := buildIndex(current)
	newIdx := buildIndex(generated)

	var d domain.CampaignSetDiff

	for i := range generated {
		c := &generated[i]
		if old, ok := oldIdx.campaigns[c.ID]; ok {
			if changes := campaignChanges(old, c); len(changes) > 0 {
				d.CampaignsToUpdate = append(d.CampaignsToUpdate, domain.CampaignUpdate{Campaign: withoutChildren(c), Changes: changes})
			}
		} else {
			d.CampaignsToAdd = append(d.CampaignsToAdd, withoutChildren(c))
		}

		for j := range c.AdGroups {
			g := &c.AdGroups[j]
			oldGroup, existed := oldIdx.adGroups[g.ID]
			// A group under a new campaign is recreated along with its children.
			moved := existed && oldGroup.campaignID != c.ID
			if existed && !moved {
				if changes := adGroupChanges(oldGroup.adGroup, g); len(changes) > 0 {
					d.AdGroupsToUpdate = append(d.AdGroupsToUpdate, domain.AdGroupChange{AdGroup: adGroupWithoutChildren(g), CampaignID: c.ID, Changes: changes})
				}
			} else {
				d.AdGroupsToAdd = append(d.AdGroupsToAdd, domain.AdGroupChange{AdGroup: adGroupWithoutChildren(g), CampaignID: c.ID})
			}

			for k := range g.Ads {
				ad := g.Ads[k]
				if old, ok := oldIdx.ads[ad.ID]; ok && !moved && old.adGroupID == g.ID {
					if changes := adChanges(old.ad, &ad); len(changes) > 0 {
						d.AdsToUpdate = append(d.AdsToUpdate, domain.AdChange{Ad: ad, AdGroupID: g.ID, CampaignID: c.ID, Changes: changes})
					}
				} else {
					d.AdsToAdd = append(d.AdsToAdd, domain.AdChange{Ad: ad, AdGroupID: g.ID, CampaignID: c.ID})
				}
			}

			for k := range g.Keywords {
				kw := g.Keywords[k]
				if old, ok := oldIdx.keywords[kw.ID]; ok && !moved && old.adGroupID == g.ID {
					if changes := keywordChanges(old.keyword, &kw); len(changes) > 0 {
						d.KeywordsToUpdate = append(d.KeywordsToUpdate, domain.KeywordChange{Keyword: kw, AdGroupID: g.ID, CampaignID: c.ID, Changes: changes})
					}
				} else {
					d.KeywordsToAdd = append(d.KeywordsToAdd, domain.KeywordChange{Keyword: kw, AdGroupID: g.ID, CampaignID: c.ID})
				}
			}
		}
	}

	for i := range current {
		c := &current[i]
		if _, ok := newIdx.campaigns[c.ID]; !ok {
			d.CampaignsToRemove = append(d.CampaignsToRemove, c.ID)
		}

		for j := range c.AdGroups {
			g := &c.AdGroups[j]
			if ref, ok := newIdx.adGroups[g.ID]; !ok || ref.campaignID != c.ID {
				d.AdGroupsToRemove = append(d.AdGroupsToRemove, domain.EntityRemoval{ID: g.ID, ParentID: c.ID, CampaignID: c.ID, PlatformID: deref(g.PlatformAdGroupID)})
			}
			for _, ad := range g.Ads {
				if ref, ok := newIdx.ads[ad.ID]; !ok || ref.adGroupID != g.ID {
					d.AdsToRemove = append(d.AdsToRemove, domain.EntityRemoval{ID: ad.ID, ParentID: g.ID, CampaignID: c.ID, PlatformID: deref(ad.PlatformAdID)})
				}
			}
			for _, kw := range g.Keywords {
				if ref, ok := newIdx.keywords[kw.ID]; !ok || ref.adGroupID != g.ID {
					d.KeywordsToRemove = append(d.KeywordsToRemove, domain.EntityRemoval{ID: kw.ID, ParentID: g.ID, CampaignID: c.ID, PlatformID: deref(kw.PlatformKeywordID)})
				}
			}
		}
	}

	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func withoutChildren(c *domain.Campaign) domain.Campaign {
	out := *c
	out.AdGroups = nil
	return out
}

func adGroupWithoutChildren(g *domain.AdGroup) domain.AdGroup {
	out := *g
	out.Ads = nil
	out.Keywords = nil
	return out
}

type changeList []domain.FieldChange

func (l *changeList) compare(field string, oldValue, newValue any) {
	if Equal(oldValue, newValue) {
		return
	}
	*l = append(*l, domain.FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
}

func campaignChanges(old, cur *domain.Campaign) []domain.FieldChange {
	var l changeList
	l.compare("name", old.Name, cur.Name)
	l.compare("status", old.Status, cur.Status)
	l.compare("objective", old.Objective, cur.Objective)
	l.compare("budget", old.Budget, cur.Budget)
	l.compare("campaignData", old.CampaignData, cur.CampaignData)
	l.compare("platformData", old.PlatformData, cur.PlatformData)
	return l
}

func adGroupChanges(old, cur *domain.AdGroup) []domain.FieldChange {
	var l changeList
	l.compare("name", old.Name, cur.Name)
	l.compare("status", old.Status, cur.Status)
	l.compare("bidStrategy", old.BidStrategy, cur.BidStrategy)
	l.compare("settings", old.Settings, cur.Settings)
	return l
}

func adChanges(old, cur *domain.Ad) []domain.FieldChange {
	var l changeList
	l.compare("headline", old.Headline, cur.Headline)
	l.compare("description", old.Description, cur.Description)
	l.compare("displayUrl", old.DisplayURL, cur.DisplayURL)
	l.compare("finalUrl", old.FinalURL, cur.FinalURL)
	l.compare("callToAction", old.CallToAction, cur.CallToAction)
	l.compare("assets", old.Assets, cur.Assets)
	l.compare("status", old.Status, cur.Status)
	return l
}

func keywordChanges(old, cur *domain.Keyword) []domain.FieldChange {
	var l changeList
	l.compare("keyword", old.Keyword, cur.Keyword)
	l.compare("matchType", old.MatchType, cur.MatchType)
	l.compare("bid", old.Bid, cur.Bid)
	l.compare("status", old.Status, cur.Status)
	return l
}
