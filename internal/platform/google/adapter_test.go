package google

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign_sync/internal/domain"
	"campaign_sync/internal/platform"
	"campaign_sync/internal/platform/rest"
	"campaign_sync/internal/testutil"
)

func newAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := rest.New(Platform, rest.Config{BaseURL: srv.URL, Timeout: time.Second}, testutil.DiscardLogger())
	return New(client, "123-456-7890", platform.NewDefaultsResolver())
}

func TestCreateCampaign(t *testing.T) {
	var got struct {
		Operations []struct {
			Create campaignResource `json:"create"`
		} `json:"operations"`
	}

	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v17/customers/1234567890/campaigns:mutate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"results":[{"resourceName":"customers/1234567890/campaigns/9"}]}`)
	})

	res, err := a.CreateCampaign(context.Background(), &domain.Campaign{
		ID:     "c1",
		Name:   "Search",
		Status: domain.CampaignStatusActive,
		Budget: &domain.Budget{Type: domain.BudgetTypeDaily, Amount: 3, Currency: "USD"},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "customers/1234567890/campaigns/9", res.PlatformID)

	require.Len(t, got.Operations, 1)
	assert.Equal(t, "ENABLED", got.Operations[0].Create.Status)
	require.NotNil(t, got.Operations[0].Create.Budget)
	assert.EqualValues(t, 3_000_000, got.Operations[0].Create.Budget.AmountMicros)
}

func TestCreateKeyword_DefaultsMatchType(t *testing.T) {
	var got struct {
		Operations []struct {
			Create criterionResource `json:"create"`
		} `json:"operations"`
	}

	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"results":[{"resourceName":"customers/1/adGroupCriteria/5~7"}]}`)
	})

	res, err := a.CreateKeyword(context.Background(), &domain.Keyword{ID: "k1", Keyword: "running shoes"}, "customers/1/adGroups/5")
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, got.Operations, 1)
	assert.Equal(t, "BROAD", got.Operations[0].Create.Keyword.MatchType)
	assert.Equal(t, "customers/1/adGroups/5", got.Operations[0].Create.AdGroup)
}

func TestCreateAdGroup_Rejected(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"Invalid bidding strategy"}}`)
	})

	res, err := a.CreateAdGroup(context.Background(), &domain.AdGroup{ID: "g1", Name: "g"}, "customers/1/campaigns/9")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid bidding strategy", res.Error)
}

func TestGetCampaignStatus(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v17/customers/1234567890/googleAds:search", r.URL.Path)
		_, _ = io.WriteString(w, `{"results":[{"campaign":{"status":"PAUSED"}}]}`)
	})

	status, err := a.GetCampaignStatus(context.Background(), "customers/1234567890/campaigns/9")
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusPaused, status)
}

func TestGetCampaignStatus_NotFound(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"results":[]}`)
	})

	_, err := a.GetCampaignStatus(context.Background(), "customers/1/campaigns/404")
	assert.ErrorIs(t, err, platform.ErrNotFound)
}

func TestDeleteCampaign(t *testing.T) {
	var got mutateRequest

	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"results":[{"resourceName":"customers/1/campaigns/9"}]}`)
	})

	require.NoError(t, a.DeleteCampaign(context.Background(), "customers/1/campaigns/9"))
	require.Len(t, got.Operations, 1)
	assert.Equal(t, "customers/1/campaigns/9", got.Operations[0].Remove)
}
