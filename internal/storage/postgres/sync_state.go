package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"campaign_sync/internal/domain"
)

// SyncStateStore keeps the last status known to be on the platform per
// campaign.
type SyncStateStore struct {
	db *sqlx.DB
}

func NewSyncStateStore(db *sqlx.DB) *SyncStateStore {
	return &SyncStateStore{db: db}
}

// Get returns the state of campaignID, or an empty state if the campaign
// was never synced.
func (s *SyncStateStore) Get(ctx context.Context, campaignID string) (*domain.SyncState, error) {
	var state domain.SyncState
	query := `
		SELECT id, campaign_id, last_synced_status, last_synced_at, total_synced
		FROM campaign_sync_state
		WHERE campaign_id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query, campaignID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.SyncState{CampaignID: campaignID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *SyncStateStore) Record(ctx context.Context, campaignID string, status domain.CampaignStatus, at time.Time) error {
	query := `
		INSERT INTO campaign_sync_state (campaign_id, last_synced_status, last_synced_at, total_synced)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (campaign_id) DO UPDATE SET
			last_synced_status = EXCLUDED.last_synced_status,
			last_synced_at = EXCLUDED.last_synced_at,
			total_synced = campaign_sync_state.total_synced + 1`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, campaignID, status, at)
	return err
}
