package service

import (
	"campaign_sync/internal/domain"
)

// BuildPlan orders a diff into platform operations: deletes first, then
// creates parent before child, then updates parent before child.
//
// Child removals are dropped when an ancestor is removed too, since the
// platform removes the subtree with it. Removals of entities that never
// reached the platform become deletes with an empty PlatformID. An entity
// that moved to another parent is deleted on the platform only and created
// again under its new parent.
//
// Entities of current that never reached the platform are created even when
// the diff does not mention them, so a push that was skipped or failed is
// picked up by the next one. Updates of such entities become creates.
// Campaigns in held, and everything under them, are neither swept nor
// created.
func BuildPlan(current *domain.CampaignSet, diff domain.CampaignSetDiff, held map[string]struct{}) []domain.SyncOperation {
	idx := indexSet(current)
	added := addedIDs(diff)

	removed := make(map[string]struct{})
	removedCampaigns := make(map[string]struct{}, len(diff.CampaignsToRemove))
	for _, id := range diff.CampaignsToRemove {
		removedCampaigns[id] = struct{}{}
		removed[id] = struct{}{}
	}
	// Groups that are removed for good take their children with them on the
	// platform. Moved groups do too, but their children rows stay.
	removedAdGroups := make(map[string]struct{}, len(diff.AdGroupsToRemove))
	movedAdGroups := make(map[string]struct{})
	for _, r := range diff.AdGroupsToRemove {
		removed[r.ID] = struct{}{}
		if _, ok := added[r.ID]; ok {
			movedAdGroups[r.ID] = struct{}{}
		} else {
			removedAdGroups[r.ID] = struct{}{}
		}
	}
	for _, r := range diff.AdsToRemove {
		removed[r.ID] = struct{}{}
	}
	for _, r := range diff.KeywordsToRemove {
		removed[r.ID] = struct{}{}
	}

	ops := make([]domain.SyncOperation, 0, diff.Size())

	remove := func(entityType domain.EntityType, r domain.EntityRemoval, persisted *string) {
		if _, ok := removedCampaigns[r.CampaignID]; ok {
			return
		}
		if _, ok := removedAdGroups[r.ParentID]; ok && entityType != domain.EntityAdGroup {
			return
		}

		platformID := r.PlatformID
		if platformID == "" {
			platformID = deref(persisted)
		}
		if _, ok := movedAdGroups[r.ParentID]; ok && entityType != domain.EntityAdGroup {
			// Gone from the platform with its moved parent.
			platformID = ""
		}

		_, keep := added[r.ID]
		if keep && platformID == "" {
			return
		}
		ops = append(ops, domain.DeleteOperation{
			Type:       entityType,
			ID:         r.ID,
			CampaignID: r.CampaignID,
			PlatformID: platformID,
			KeepLocal:  keep,
		})
	}

	for _, r := range diff.KeywordsToRemove {
		remove(domain.EntityKeyword, r, idx.keywordPlatformIDs[r.ID])
	}
	for _, r := range diff.AdsToRemove {
		remove(domain.EntityAd, r, idx.adPlatformIDs[r.ID])
	}
	for _, r := range diff.AdGroupsToRemove {
		remove(domain.EntityAdGroup, r, idx.adGroupPlatformIDs[r.ID])
	}
	for _, id := range diff.CampaignsToRemove {
		var platformID string
		if c, ok := idx.campaigns[id]; ok {
			platformID = deref(c.PlatformCampaignID)
		}
		ops = append(ops, domain.DeleteOperation{
			Type:       domain.EntityCampaign,
			ID:         id,
			CampaignID: id,
			PlatformID: platformID,
		})
	}

	creates, updates := splitUpdates(idx, diff)
	creates.sweep(current, held, removed)
	ops = append(ops, creates.ops()...)
	ops = append(ops, updates...)

	return ops
}

// createSet collects create operations per level, first come first kept.
type createSet struct {
	seen     map[string]struct{}
	campaign []domain.SyncOperation
	adGroup  []domain.SyncOperation
	ad       []domain.SyncOperation
	keyword  []domain.SyncOperation
}

func (cs *createSet) add(op domain.CreateOperation) {
	key := string(op.Type) + ":" + op.EntityID()
	if _, ok := cs.seen[key]; ok {
		return
	}
	cs.seen[key] = struct{}{}

	switch op.Type {
	case domain.EntityCampaign:
		cs.campaign = append(cs.campaign, op)
	case domain.EntityAdGroup:
		cs.adGroup = append(cs.adGroup, op)
	case domain.EntityAd:
		cs.ad = append(cs.ad, op)
	case domain.EntityKeyword:
		cs.keyword = append(cs.keyword, op)
	}
}

func (cs *createSet) ops() []domain.SyncOperation {
	out := make([]domain.SyncOperation, 0, len(cs.campaign)+len(cs.adGroup)+len(cs.ad)+len(cs.keyword))
	out = append(out, cs.campaign...)
	out = append(out, cs.adGroup...)
	out = append(out, cs.ad...)
	return append(out, cs.keyword...)
}

// splitUpdates turns the diff's additions into creates and its updates into
// updates, or into creates when the entity is known to have no platform id.
func splitUpdates(idx setIndex, diff domain.CampaignSetDiff) (*createSet, []domain.SyncOperation) {
	creates := &createSet{seen: make(map[string]struct{})}
	var updates []domain.SyncOperation

	for i := range diff.CampaignsToAdd {
		c := &diff.CampaignsToAdd[i]
		creates.add(domain.CreateOperation{Type: domain.EntityCampaign, CampaignID: c.ID, Campaign: c})
	}
	for i := range diff.AdGroupsToAdd {
		g := &diff.AdGroupsToAdd[i]
		creates.add(domain.CreateOperation{Type: domain.EntityAdGroup, CampaignID: g.CampaignID, ParentID: g.CampaignID, AdGroup: &g.AdGroup})
	}
	for i := range diff.AdsToAdd {
		a := &diff.AdsToAdd[i]
		creates.add(domain.CreateOperation{Type: domain.EntityAd, CampaignID: a.CampaignID, ParentID: a.AdGroupID, Ad: &a.Ad})
	}
	for i := range diff.KeywordsToAdd {
		k := &diff.KeywordsToAdd[i]
		creates.add(domain.CreateOperation{Type: domain.EntityKeyword, CampaignID: k.CampaignID, ParentID: k.AdGroupID, Keyword: &k.Keyword})
	}

	for i := range diff.CampaignsToUpdate {
		u := &diff.CampaignsToUpdate[i]
		if c, ok := idx.campaigns[u.Campaign.ID]; ok && c.PlatformCampaignID == nil {
			creates.add(domain.CreateOperation{Type: domain.EntityCampaign, CampaignID: u.Campaign.ID, Campaign: &u.Campaign})
			continue
		}
		updates = append(updates, domain.UpdateOperation{Type: domain.EntityCampaign, CampaignID: u.Campaign.ID, Changes: u.Changes, Campaign: &u.Campaign})
	}
	for i := range diff.AdGroupsToUpdate {
		g := &diff.AdGroupsToUpdate[i]
		if pid, ok := idx.adGroupPlatformIDs[g.AdGroup.ID]; ok && pid == nil {
			creates.add(domain.CreateOperation{Type: domain.EntityAdGroup, CampaignID: g.CampaignID, ParentID: g.CampaignID, AdGroup: &g.AdGroup})
			continue
		}
		updates = append(updates, domain.UpdateOperation{Type: domain.EntityAdGroup, CampaignID: g.CampaignID, ParentID: g.CampaignID, Changes: g.Changes, AdGroup: &g.AdGroup})
	}
	for i := range diff.AdsToUpdate {
		a := &diff.AdsToUpdate[i]
		if pid, ok := idx.adPlatformIDs[a.Ad.ID]; ok && pid == nil {
			creates.add(domain.CreateOperation{Type: domain.EntityAd, CampaignID: a.CampaignID, ParentID: a.AdGroupID, Ad: &a.Ad})
			continue
		}
		updates = append(updates, domain.UpdateOperation{Type: domain.EntityAd, CampaignID: a.CampaignID, ParentID: a.AdGroupID, Changes: a.Changes, Ad: &a.Ad})
	}
	for i := range diff.KeywordsToUpdate {
		k := &diff.KeywordsToUpdate[i]
		if pid, ok := idx.keywordPlatformIDs[k.Keyword.ID]; ok && pid == nil {
			creates.add(domain.CreateOperation{Type: domain.EntityKeyword, CampaignID: k.CampaignID, ParentID: k.AdGroupID, Keyword: &k.Keyword})
			continue
		}
		updates = append(updates, domain.UpdateOperation{Type: domain.EntityKeyword, CampaignID: k.CampaignID, ParentID: k.AdGroupID, Changes: k.Changes, Keyword: &k.Keyword})
	}

	return creates, updates
}

// sweep adds a create for every persisted entity without a platform id.
func (cs *createSet) sweep(current *domain.CampaignSet, held, removed map[string]struct{}) {
	if current == nil {
		return
	}
	skip := func(id string) bool {
		if _, ok := removed[id]; ok {
			return true
		}
		_, ok := held[id]
		return ok
	}

	for i := range current.Campaigns {
		c := &current.Campaigns[i]
		if skip(c.ID) {
			continue
		}
		if c.PlatformCampaignID == nil {
			cs.add(domain.CreateOperation{Type: domain.EntityCampaign, CampaignID: c.ID, Campaign: c})
		}

		for j := range c.AdGroups {
			g := &c.AdGroups[j]
			if skip(g.ID) {
				continue
			}
			if g.PlatformAdGroupID == nil {
				cs.add(domain.CreateOperation{Type: domain.EntityAdGroup, CampaignID: c.ID, ParentID: c.ID, AdGroup: g})
			}
			for k := range g.Ads {
				a := &g.Ads[k]
				if a.PlatformAdID == nil && !skip(a.ID) {
					cs.add(domain.CreateOperation{Type: domain.EntityAd, CampaignID: c.ID, ParentID: g.ID, Ad: a})
				}
			}
			for k := range g.Keywords {
				kw := &g.Keywords[k]
				if kw.PlatformKeywordID == nil && !skip(kw.ID) {
					cs.add(domain.CreateOperation{Type: domain.EntityKeyword, CampaignID: c.ID, ParentID: g.ID, Keyword: kw})
				}
			}
		}
	}
}

func addedIDs(diff domain.CampaignSetDiff) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, c := range diff.CampaignsToAdd {
		ids[c.ID] = struct{}{}
	}
	for _, g := range diff.AdGroupsToAdd {
		ids[g.AdGroup.ID] = struct{}{}
	}
	for _, a := range diff.AdsToAdd {
		ids[a.Ad.ID] = struct{}{}
	}
	for _, k := range diff.KeywordsToAdd {
		ids[k.Keyword.ID] = struct{}{}
	}
	return ids
}

// setIndex resolves persisted platform ids by local id.
type setIndex struct {
	campaigns          map[string]*domain.Campaign
	adGroupPlatformIDs map[string]*string
	adPlatformIDs      map[string]*string
	keywordPlatformIDs map[string]*string
}

func indexSet(set *domain.CampaignSet) setIndex {
	idx := setIndex{
		campaigns:          make(map[string]*domain.Campaign),
		adGroupPlatformIDs: make(map[string]*string),
		adPlatformIDs:      make(map[string]*string),
		keywordPlatformIDs: make(map[string]*string),
	}
	if set == nil {
		return idx
	}

	for i := range set.Campaigns {
		c := &set.Campaigns[i]
		idx.campaigns[c.ID] = c
		for j := range c.AdGroups {
			g := &c.AdGroups[j]
			idx.adGroupPlatformIDs[g.ID] = g.PlatformAdGroupID
			for _, a := range g.Ads {
				idx.adPlatformIDs[a.ID] = a.PlatformAdID
			}
			for _, k := range g.Keywords {
				idx.keywordPlatformIDs[k.ID] = k.PlatformKeywordID
			}
		}
	}
	return idx
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
