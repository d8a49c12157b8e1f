package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign_sync/internal/domain"
	"campaign_sync/internal/testutil"
)

type fakeSyncer struct {
	jobID     string
	setID     string
	campaigns []domain.Campaign
	err       error
}

func (f *fakeSyncer) SyncCampaignSet(_ context.Context, jobID, setID string, generated []domain.Campaign) (*domain.DiffSyncResult, error) {
	f.jobID, f.setID, f.campaigns = jobID, setID, generated
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DiffSyncResult{Success: true, Created: len(generated)}, nil
}

type fakeRetry struct {
	job *domain.RetryJob
}

func (f *fakeRetry) Handle(_ context.Context, job domain.RetryJob) (*domain.RetryResult, error) {
	f.job = &job
	return &domain.RetryResult{Processed: 1, Succeeded: 1}, nil
}

func TestDispatch_SyncCampaignSet(t *testing.T) {
	syncer := &fakeSyncer{}
	d := NewDispatcher(syncer, &fakeRetry{}, testutil.DiscardLogger())

	err := d.Dispatch(context.Background(), []byte(`{
		"type": "sync_campaign_set",
		"payload": {
			"jobId": "job-1",
			"campaignSetId": "set-1",
			"campaigns": [{"id": "c1", "name": "Spring", "platform": "reddit"}]
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "job-1", syncer.jobID)
	assert.Equal(t, "set-1", syncer.setID)
	require.Len(t, syncer.campaigns, 1)
	assert.Equal(t, "c1", syncer.campaigns[0].ID)
	assert.Equal(t, domain.PlatformReddit, syncer.campaigns[0].Platform)
}

func TestDispatch_RetryFailedSyncs(t *testing.T) {
	retry := &fakeRetry{}
	d := NewDispatcher(&fakeSyncer{}, retry, testutil.DiscardLogger())

	err := d.Dispatch(context.Background(), []byte(`{"type":"retry_failed_syncs","payload":{"userId":"u1","maxRetries":5}}`))
	require.NoError(t, err)

	require.NotNil(t, retry.job)
	assert.Equal(t, "u1", retry.job.UserID)
	require.NotNil(t, retry.job.MaxRetries)
	assert.Equal(t, 5, *retry.job.MaxRetries)
}

func TestDispatch_Malformed(t *testing.T) {
	d := NewDispatcher(&fakeSyncer{}, &fakeRetry{}, testutil.DiscardLogger())

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"unknown type", `{"type":"rebuild","payload":{}}`},
		{"missing set id", `{"type":"sync_campaign_set","payload":{"jobId":"j"}}`},
		{"missing user id", `{"type":"retry_failed_syncs","payload":{}}`},
		{"bad payload", `{"type":"retry_failed_syncs","payload":"u1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Dispatch(context.Background(), []byte(tt.body))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDispatch_SyncErrorIsReturned(t *testing.T) {
	notFound := &domain.SyncError{Code: domain.ErrCodeCampaignSetNotFound, Message: "campaign set set-9 not found"}
	d := NewDispatcher(&fakeSyncer{err: notFound}, &fakeRetry{}, testutil.DiscardLogger())

	err := d.Dispatch(context.Background(), []byte(`{"type":"sync_campaign_set","payload":{"campaignSetId":"set-9"}}`))

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformed))
	assert.True(t, domain.IsCode(err, domain.ErrCodeCampaignSetNotFound))
}
