package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks
//go:generate mockgen -destination=mocks/adapter.go -package=mocks campaign_sync/internal/platform Adapter
//go:generate mockgen -destination=mocks/breaker.go -package=mocks campaign_sync/internal/circuitbreaker CircuitBreaker

import (
	"context"
	"time"

	"campaign_sync/internal/circuitbreaker"
	"campaign_sync/internal/domain"
	"campaign_sync/internal/platform"
)

// Repository is the persistence gateway of the sync engine. Lookups return
// domain.ErrNotFound when the row does not exist.
type Repository interface {
	GetCampaignSetWithRelations(ctx context.Context, setID string) (*domain.CampaignSet, error)
	UpsertCampaignTree(ctx context.Context, setID string, campaigns []domain.Campaign) error
	UpdateCampaignSetSyncStatus(ctx context.Context, setID string, status domain.SyncStatus) error

	UpdateCampaignPlatformID(ctx context.Context, campaignID, platformID string) error
	UpdateAdGroupPlatformID(ctx context.Context, adGroupID, platformID string) error
	UpdateAdPlatformID(ctx context.Context, adID, platformID string) error
	UpdateKeywordPlatformID(ctx context.Context, keywordID, platformID string) error
	DeleteEntity(ctx context.Context, entityType domain.EntityType, id string) error

	// UpdateCampaignSyncStatus sets the sync status; an empty syncErr clears
	// the stored error.
	UpdateCampaignSyncStatus(ctx context.Context, campaignID string, status domain.SyncStatus, syncErr string) error
	UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus) error
	ListSyncedCampaigns(ctx context.Context, platform string) ([]domain.Campaign, error)

	GetFailedCampaignsForRetry(ctx context.Context, userID string, maxRetries int) ([]domain.Campaign, error)
	ListUsersWithFailedSyncs(ctx context.Context, maxRetries int) ([]string, error)
	IncrementRetryCount(ctx context.Context, campaignID string) (int, error)
	MarkPermanentFailure(ctx context.Context, campaignID, reason string) error
	ResetSyncForRetry(ctx context.Context, campaignID string) error
}

// SyncStateStore keeps the last status pushed to or read from the platform
// per campaign.
type SyncStateStore interface {
	Get(ctx context.Context, campaignID string) (*domain.SyncState, error)
	Record(ctx context.Context, campaignID string, status domain.CampaignStatus, at time.Time) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AdapterRegistry interface {
	Get(platform string) (platform.Adapter, bool)
	Platforms() []string
}

type BreakerRegistry interface {
	Get(platform string) circuitbreaker.CircuitBreaker
}

type EventPublisher interface {
	PublishSyncEvent(ctx context.Context, event domain.SyncEvent) error
	Close() error
}
