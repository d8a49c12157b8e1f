package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign_sync/internal/domain"
	"campaign_sync/internal/testutil"
)

func planSet() *domain.CampaignSet {
	return &domain.CampaignSet{
		ID: "set-1",
		Campaigns: []domain.Campaign{
			{
				ID:                 "c1",
				PlatformCampaignID: testutil.Ptr("rc_1"),
				AdGroups: []domain.AdGroup{
					{
						ID:                "g1",
						CampaignID:        "c1",
						PlatformAdGroupID: testutil.Ptr("rg_1"),
						Ads:               []domain.Ad{{ID: "a1", AdGroupID: "g1", PlatformAdID: testutil.Ptr("ra_1")}},
						Keywords:          []domain.Keyword{{ID: "k1", AdGroupID: "g1"}},
					},
					{
						ID:                "g2",
						CampaignID:        "c1",
						PlatformAdGroupID: testutil.Ptr("rg_2"),
						Ads:               []domain.Ad{{ID: "a2", AdGroupID: "g2", PlatformAdID: testutil.Ptr("ra_2")}},
					},
				},
			},
			{ID: "c2", PlatformCampaignID: testutil.Ptr("rc_2")},
		},
	}
}

func kinds(ops []domain.SyncOperation) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = string(op.Kind()) + ":" + string(op.Entity()) + ":" + op.EntityID()
	}
	return out
}

func TestBuildPlan_Ordering(t *testing.T) {
	diff := domain.CampaignSetDiff{
		KeywordsToAdd:     []domain.KeywordChange{{Keyword: domain.Keyword{ID: "k9"}, AdGroupID: "g9", CampaignID: "c9"}},
		AdsToAdd:          []domain.AdChange{{Ad: domain.Ad{ID: "a9"}, AdGroupID: "g9", CampaignID: "c9"}},
		AdGroupsToAdd:     []domain.AdGroupChange{{AdGroup: domain.AdGroup{ID: "g9"}, CampaignID: "c9"}},
		CampaignsToAdd:    []domain.Campaign{{ID: "c9"}},
		AdsToUpdate:       []domain.AdChange{{Ad: domain.Ad{ID: "a1"}, AdGroupID: "g1", CampaignID: "c1"}},
		CampaignsToUpdate: []domain.CampaignUpdate{{Campaign: domain.Campaign{ID: "c1"}}},
		KeywordsToRemove:  []domain.EntityRemoval{{ID: "k1", ParentID: "g1", CampaignID: "c1"}},
		CampaignsToRemove: []string{"c2"},
	}

	ops := BuildPlan(planSet(), diff, nil)

	assert.Equal(t, []string{
		"delete:keyword:k1",
		"delete:campaign:c2",
		"create:campaign:c9",
		"create:adGroup:g9",
		"create:ad:a9",
		"create:keyword:k9",
		"update:campaign:c1",
		"update:ad:a1",
	}, kinds(ops))
}

func TestBuildPlan_DropsChildRemovalsUnderRemovedParent(t *testing.T) {
	diff := domain.CampaignSetDiff{
		CampaignsToRemove: []string{"c1"},
		AdGroupsToRemove:  []domain.EntityRemoval{{ID: "g1", ParentID: "c1", CampaignID: "c1"}},
		AdsToRemove: []domain.EntityRemoval{
			{ID: "a1", ParentID: "g1", CampaignID: "c1"},
		},
	}

	ops := BuildPlan(planSet(), diff, nil)

	require.Len(t, ops, 1)
	del, ok := ops[0].(domain.DeleteOperation)
	require.True(t, ok)
	assert.Equal(t, domain.EntityCampaign, del.Type)
	assert.Equal(t, "rc_1", del.PlatformID)
}

func TestBuildPlan_RemovalUnderSurvivingParentKeepsPlatformID(t *testing.T) {
	diff := domain.CampaignSetDiff{
		AdGroupsToRemove: []domain.EntityRemoval{{ID: "g2", ParentID: "c1", CampaignID: "c1"}},
		AdsToRemove:      []domain.EntityRemoval{{ID: "a2", ParentID: "g2", CampaignID: "c1"}},
		KeywordsToRemove: []domain.EntityRemoval{{ID: "k1", ParentID: "g1", CampaignID: "c1"}},
	}

	ops := BuildPlan(planSet(), diff, nil)

	require.Len(t, ops, 2)
	keyword := ops[0].(domain.DeleteOperation)
	assert.Equal(t, "k1", keyword.ID)
	assert.Empty(t, keyword.PlatformID, "keyword never reached the platform")

	group := ops[1].(domain.DeleteOperation)
	assert.Equal(t, domain.EntityAdGroup, group.Type)
	assert.Equal(t, "rg_2", group.PlatformID)
}

func TestBuildPlan_Empty(t *testing.T) {
	assert.Empty(t, BuildPlan(nil, domain.CampaignSetDiff{}, nil))
}

func TestBuildPlan_SweepsEntitiesThatNeverReachedThePlatform(t *testing.T) {
	set := planSet()
	set.Campaigns = append(set.Campaigns, domain.Campaign{
		ID: "c3",
		AdGroups: []domain.AdGroup{{
			ID:       "g3",
			Ads:      []domain.Ad{{ID: "a3"}},
			Keywords: []domain.Keyword{{ID: "k3"}},
		}},
	})

	ops := BuildPlan(set, domain.CampaignSetDiff{}, nil)

	assert.Equal(t, []string{
		"create:campaign:c3",
		"create:adGroup:g3",
		"create:ad:a3",
		"create:keyword:k1",
		"create:keyword:k3",
	}, kinds(ops))

	create := ops[3].(domain.CreateOperation)
	assert.Equal(t, "g1", create.ParentID)
	assert.Equal(t, "c1", create.CampaignID)
}

func TestBuildPlan_UpdateOfUnsyncedEntityBecomesCreate(t *testing.T) {
	set := planSet()
	set.Campaigns = append(set.Campaigns, domain.Campaign{ID: "c3", Name: "Old"})

	ops := BuildPlan(set, domain.CampaignSetDiff{
		CampaignsToUpdate: []domain.CampaignUpdate{{Campaign: domain.Campaign{ID: "c3", Name: "New"}}},
		KeywordsToUpdate:  []domain.KeywordChange{{Keyword: domain.Keyword{ID: "k1", Keyword: "boots"}, AdGroupID: "g1", CampaignID: "c1"}},
	}, nil)

	require.Equal(t, []string{"create:campaign:c3", "create:keyword:k1"}, kinds(ops))
	assert.Equal(t, "New", ops[0].(domain.CreateOperation).Campaign.Name, "the generated version wins")
	assert.Equal(t, "boots", ops[1].(domain.CreateOperation).Keyword.Keyword)
}

func TestBuildPlan_HeldCampaignIsLeftAlone(t *testing.T) {
	set := planSet()
	set.Campaigns = append(set.Campaigns, domain.Campaign{
		ID:       "c3",
		AdGroups: []domain.AdGroup{{ID: "g3"}},
	})

	ops := BuildPlan(set, domain.CampaignSetDiff{}, map[string]struct{}{"c3": {}, "c1": {}})

	assert.Empty(t, ops)
}

func TestBuildPlan_MovedAdGroupIsRecreatedUnderNewParent(t *testing.T) {
	diff := domain.CampaignSetDiff{
		AdGroupsToRemove: []domain.EntityRemoval{{ID: "g2", ParentID: "c1", CampaignID: "c1", PlatformID: "rg_2"}},
		AdGroupsToAdd:    []domain.AdGroupChange{{AdGroup: domain.AdGroup{ID: "g2"}, CampaignID: "c2"}},
		AdsToAdd:         []domain.AdChange{{Ad: domain.Ad{ID: "a2"}, AdGroupID: "g2", CampaignID: "c2"}},
		KeywordsToRemove: []domain.EntityRemoval{{ID: "k1", ParentID: "g1", CampaignID: "c1"}},
	}

	ops := BuildPlan(planSet(), diff, nil)

	require.Equal(t, []string{
		"delete:keyword:k1",
		"delete:adGroup:g2",
		"create:adGroup:g2",
		"create:ad:a2",
	}, kinds(ops))

	del := ops[1].(domain.DeleteOperation)
	assert.Equal(t, "rg_2", del.PlatformID)
	assert.True(t, del.KeepLocal)
	assert.False(t, ops[0].(domain.DeleteOperation).KeepLocal)

	create := ops[2].(domain.CreateOperation)
	assert.Equal(t, "c2", create.ParentID)
}

func TestBuildPlan_ChildRemovedFromMovedGroupIsLocalOnly(t *testing.T) {
	diff := domain.CampaignSetDiff{
		AdGroupsToRemove: []domain.EntityRemoval{{ID: "g2", ParentID: "c1", CampaignID: "c1", PlatformID: "rg_2"}},
		AdGroupsToAdd:    []domain.AdGroupChange{{AdGroup: domain.AdGroup{ID: "g2"}, CampaignID: "c2"}},
		AdsToRemove:      []domain.EntityRemoval{{ID: "a2", ParentID: "g2", CampaignID: "c1", PlatformID: "ra_2"}},
		KeywordsToRemove: []domain.EntityRemoval{{ID: "k1", ParentID: "g1", CampaignID: "c1"}},
	}

	ops := BuildPlan(planSet(), diff, nil)

	require.Equal(t, []string{
		"delete:keyword:k1",
		"delete:ad:a2",
		"delete:adGroup:g2",
		"create:adGroup:g2",
	}, kinds(ops))

	ad := ops[1].(domain.DeleteOperation)
	assert.Empty(t, ad.PlatformID, "the platform copy went with the old group")
	assert.False(t, ad.KeepLocal)
}
