package reddit

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
	return New(client, "acct_1", platform.NewDefaultsResolver())
}

func TestCreateCampaign_DefaultsObjective(t *testing.T) {
	var got envelope[campaignPayload]

	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/ad_accounts/acct_1/campaigns", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"data":{"id":"rc_1"}}`)
	})

	res, err := a.CreateCampaign(context.Background(), &domain.Campaign{
		ID:     "c1",
		Name:   "Spring",
		Status: domain.CampaignStatusActive,
		Budget: &domain.Budget{Type: domain.BudgetTypeDaily, Amount: 12.5, Currency: "USD"},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "rc_1", res.PlatformID)

	assert.Equal(t, "IMPRESSIONS", got.Data.Objective)
	assert.Equal(t, "ACTIVE", got.Data.ConfiguredStatus)
	require.NotNil(t, got.Data.SpendCap)
	assert.EqualValues(t, 12_500_000, *got.Data.SpendCap)
	assert.Equal(t, "DAILY_SPEND", got.Data.GoalType)
}

func TestCreateCampaign_KeepsExplicitObjective(t *testing.T) {
	var got envelope[campaignPayload]

	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"data":{"id":"rc_2"}}`)
	})

	_, err := a.CreateCampaign(context.Background(), &domain.Campaign{ID: "c2", Name: "n", Objective: "CONVERSIONS"})
	require.NoError(t, err)
	assert.Equal(t, "CONVERSIONS", got.Data.Objective)
	assert.Equal(t, "PAUSED", got.Data.ConfiguredStatus)
}

func TestCreateAd_DefaultsCallToAction(t *testing.T) {
	var got envelope[adPayload]

	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"data":{"id":"ra_1"}}`)
	})

	res, err := a.CreateAd(context.Background(), &domain.Ad{
		ID:          "ad1",
		Headline:    "Hello",
		Description: "World",
		FinalURL:    testutil.Ptr("https://example.com"),
	}, "rg_1")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Learn More", got.Data.CallToAction)
	assert.Equal(t, "rg_1", got.Data.AdGroupID)
	assert.Equal(t, "https://example.com", got.Data.ClickURL)
}

func TestGetCampaignStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus domain.CampaignStatus
		wantErr    bool
	}{
		{name: "active", body: `{"data":{"configured_status":"ACTIVE"}}`, wantStatus: domain.CampaignStatusActive},
		{name: "paused", body: `{"data":{"configured_status":"PAUSED"}}`, wantStatus: domain.CampaignStatusPaused},
		{name: "completed", body: `{"data":{"configured_status":"ACTIVE","effective_status":"COMPLETED"}}`, wantStatus: domain.CampaignStatusCompleted},
		{name: "archived", body: `{"data":{"configured_status":"ARCHIVED"}}`, wantStatus: domain.CampaignStatusCompleted},
		{name: "unknown", body: `{"data":{"configured_status":"WEIRD"}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v3/campaigns/rc_1", r.URL.Path)
				_, _ = io.WriteString(w, tt.body)
			})

			status, err := a.GetCampaignStatus(context.Background(), "rc_1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestDeleteCampaign_Rejected(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"campaign has spend"}`)
	})

	err := a.DeleteCampaign(context.Background(), "rc_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaign has spend")
}

func TestUpdateCampaign_NewEditGetsNewKey(t *testing.T) {
	var keys []string
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()
	c := &domain.Campaign{ID: "c1", Name: "spring", Status: domain.CampaignStatusActive}

	_, err := a.UpdateCampaign(ctx, c, "rc_1")
	require.NoError(t, err)

	c.Status = domain.CampaignStatusPaused
	_, err = a.UpdateCampaign(ctx, c, "rc_1")
	require.NoError(t, err)

	c.Status = domain.CampaignStatusActive
	_, err = a.UpdateCampaign(ctx, c, "rc_1")
	require.NoError(t, err)

	require.Len(t, keys, 3)
	assert.NotEqual(t, keys[0], keys[1])
	assert.Equal(t, keys[0], keys[2])
}

func TestGetCampaignStatus_DeletedOnPlatform(t *testing.T) {
	a := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"campaign not found"}`)
	})

	_, err := a.GetCampaignStatus(context.Background(), "rc_gone")
	assert.ErrorIs(t, err, platform.ErrNotFound)
}
