// Package platform defines the boundary between the sync engine and the
// external ad platforms.
package platform

import (
	"context"
	"errors"

	"campaign_sync/internal/domain"
)

var (
	// ErrNotFound matches errors about entities the platform does not know.
	ErrNotFound = errors.New("not found on platform")
	// ErrRejected matches definitive answers such as validation or
	// permission errors. They say nothing about platform health.
	ErrRejected = errors.New("rejected by platform")
)

// CreateResult is returned by create calls. Success=false is a definitive
// rejection by the platform and must not be retried automatically.
type CreateResult struct {
	Success    bool
	PlatformID string
	Error      string
}

// Result is returned by update calls.
type Result struct {
	Success bool
	Error   string
}

// Adapter translates local entities into calls against one platform.
//
// A non-nil error means the call did not get a definitive answer (network
// failure, 5xx, throttling) and may be retried, unless it matches
// ErrRejected. Delete and status calls report any failure as an error; a
// campaign missing on the platform matches ErrNotFound.
type Adapter interface {
	Platform() string

	CreateCampaign(ctx context.Context, campaign *domain.Campaign) (CreateResult, error)
	UpdateCampaign(ctx context.Context, campaign *domain.Campaign, platformCampaignID string) (Result, error)
	DeleteCampaign(ctx context.Context, platformCampaignID string) error

	CreateAdGroup(ctx context.Context, adGroup *domain.AdGroup, platformCampaignID string) (CreateResult, error)
	UpdateAdGroup(ctx context.Context, adGroup *domain.AdGroup, platformAdGroupID string) (Result, error)
	DeleteAdGroup(ctx context.Context, platformAdGroupID string) error

	CreateAd(ctx context.Context, ad *domain.Ad, platformAdGroupID string) (CreateResult, error)
	UpdateAd(ctx context.Context, ad *domain.Ad, platformAdID string) (Result, error)
	DeleteAd(ctx context.Context, platformAdID string) error

	CreateKeyword(ctx context.Context, keyword *domain.Keyword, platformAdGroupID string) (CreateResult, error)
	UpdateKeyword(ctx context.Context, keyword *domain.Keyword, platformKeywordID string) (Result, error)
	DeleteKeyword(ctx context.Context, platformKeywordID string) error

	// GetCampaignStatus fetches the current platform-side status.
	GetCampaignStatus(ctx context.Context, platformCampaignID string) (domain.CampaignStatus, error)
}
