package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"campaign_sync/internal/circuitbreaker"
	"campaign_sync/internal/config"
	"campaign_sync/internal/domain"
	"campaign_sync/internal/platform"
	"campaign_sync/internal/service/mocks"
	"campaign_sync/internal/testutil"
	"campaign_sync/internal/validation"
)

type RetryHandlerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	repo      *mocks.MockRepository
	syncState *mocks.MockSyncStateStore
	reddit    *mocks.MockAdapter
	google    *mocks.MockAdapter

	cfg config.SyncConfig
}

func (s *RetryHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.repo = mocks.NewMockRepository(s.ctrl)
	s.syncState = mocks.NewMockSyncStateStore(s.ctrl)
	s.reddit = mocks.NewMockAdapter(s.ctrl)
	s.google = mocks.NewMockAdapter(s.ctrl)
	s.reddit.EXPECT().Platform().Return(domain.PlatformReddit).AnyTimes()
	s.google.EXPECT().Platform().Return(domain.PlatformGoogle).AnyTimes()

	s.cfg = config.SyncConfig{CallTimeout: time.Second, MaxRetries: 3}
}

func (s *RetryHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRetryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RetryHandlerTestSuite))
}

func (s *RetryHandlerTestSuite) newHandler(breakers BreakerRegistry) *RetryHandler {
	return NewRetryHandler(
		s.repo,
		s.syncState,
		validation.New(platform.NewDefaultsResolver()),
		platform.NewRegistry(s.reddit, s.google),
		breakers,
		testutil.DiscardLogger(),
		s.cfg,
	)
}

func (s *RetryHandlerTestSuite) expectSynced(ctx context.Context, id string) {
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, id, domain.SyncStatusSynced, "").Return(nil)
	s.syncState.EXPECT().Record(ctx, id, gomock.Any(), gomock.Any()).Return(nil)
}

func (s *RetryHandlerTestSuite) TestHandle_StopsPlatformWhenBreakerRefuses() {
	ctx := context.Background()

	cb := mocks.NewMockCircuitBreaker(s.ctrl)
	breakers := mocks.NewMockBreakerRegistry(s.ctrl)
	breakers.EXPECT().Get(domain.PlatformReddit).Return(cb).AnyTimes()

	gomock.InOrder(
		cb.EXPECT().CanExecute().Return(true),
		cb.EXPECT().RecordSuccess(),
		cb.EXPECT().CanExecute().Return(false),
	)

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return([]domain.Campaign{
		newCampaign("c1", domain.PlatformReddit),
		newCampaign("c2", domain.PlatformReddit),
	}, nil)

	s.repo.EXPECT().ResetSyncForRetry(ctx, "c1").Return(nil)
	s.reddit.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return(platform.CreateResult{Success: true, PlatformID: "rc1"}, nil)
	s.repo.EXPECT().UpdateCampaignPlatformID(ctx, "c1", "rc1").Return(nil)
	s.expectSynced(ctx, "c1")

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1"})

	s.Require().NoError(err)
	s.Equal(domain.RetryResult{Processed: 1, Succeeded: 1, Skipped: 1}, *result)
}

func (s *RetryHandlerTestSuite) TestHandle_OneOutageDoesNotBlockOtherPlatforms() {
	ctx := context.Background()
	breakers := circuitbreaker.NewRegistry(circuitbreaker.Config{FailureThreshold: 1, OpenDuration: time.Minute}, testutil.DiscardLogger())

	onGoogle := newCampaign("g1", domain.PlatformGoogle)
	onGoogle.PlatformCampaignID = testutil.Ptr("customers/1/campaigns/9")

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return([]domain.Campaign{
		newCampaign("r1", domain.PlatformReddit),
		newCampaign("r2", domain.PlatformReddit),
		onGoogle,
	}, nil)

	s.repo.EXPECT().ResetSyncForRetry(ctx, "r1").Return(nil)
	s.reddit.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return(platform.CreateResult{}, errors.New("503 service unavailable"))
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "r1", domain.SyncStatusFailed, "503 service unavailable").Return(nil)
	s.repo.EXPECT().IncrementRetryCount(ctx, "r1").Return(1, nil)

	s.repo.EXPECT().ResetSyncForRetry(ctx, "g1").Return(nil)
	s.google.EXPECT().UpdateCampaign(gomock.Any(), gomock.Any(), "customers/1/campaigns/9").Return(platform.Result{Success: true}, nil)
	s.expectSynced(ctx, "g1")

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1"})

	s.Require().NoError(err)
	s.Equal(domain.RetryResult{Processed: 2, Succeeded: 1, Failed: 1, Skipped: 1}, *result)
}

func (s *RetryHandlerTestSuite) TestHandle_MarksPermanentFailureAtMaxRetries() {
	ctx := context.Background()
	breakers := circuitbreaker.NewRegistry(circuitbreaker.DefaultConfig(), testutil.DiscardLogger())

	c := newCampaign("c1", domain.PlatformReddit)
	c.PlatformCampaignID = testutil.Ptr("rc1")
	c.RetryCount = 2

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return([]domain.Campaign{c}, nil)
	s.repo.EXPECT().ResetSyncForRetry(ctx, "c1").Return(nil)
	s.reddit.EXPECT().UpdateCampaign(gomock.Any(), gomock.Any(), "rc1").Return(platform.Result{Success: false, Error: "invalid bid"}, nil)
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c1", domain.SyncStatusFailed, "invalid bid").Return(nil)
	s.repo.EXPECT().IncrementRetryCount(ctx, "c1").Return(3, nil)
	s.repo.EXPECT().MarkPermanentFailure(ctx, "c1", "Max retries (3) exceeded: invalid bid").Return(nil)

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1", MaxRetries: testutil.Ptr(3)})

	s.Require().NoError(err)
	s.Equal(domain.RetryResult{Processed: 1, Failed: 1, PermanentFailures: 1}, *result)
}

func (s *RetryHandlerTestSuite) TestHandle_ValidationFailureCountsAsFailedAttempt() {
	ctx := context.Background()
	breakers := circuitbreaker.NewRegistry(circuitbreaker.DefaultConfig(), testutil.DiscardLogger())

	c := newCampaign("c1", domain.PlatformGoogle)
	c.Objective = ""

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 5).Return([]domain.Campaign{c}, nil)
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c1", domain.SyncStatusFailed, gomock.Any()).Return(nil)
	s.repo.EXPECT().IncrementRetryCount(ctx, "c1").Return(1, nil)

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1", MaxRetries: testutil.Ptr(5)})

	s.Require().NoError(err)
	s.Equal(domain.RetryResult{Processed: 1, Failed: 1}, *result)
}

// halfOpenBreakers returns a registry whose reddit breaker admits exactly one
// trial call.
func halfOpenBreakers() *circuitbreaker.Registry {
	clock := testutil.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	breakers := circuitbreaker.NewRegistry(
		circuitbreaker.Config{FailureThreshold: 1, OpenDuration: time.Minute},
		testutil.DiscardLogger(),
		circuitbreaker.WithRegistryClock(clock),
	)
	breakers.Get(domain.PlatformReddit).RecordFailure()
	clock.Advance(2 * time.Minute)
	return breakers
}

func (s *RetryHandlerTestSuite) TestHandle_InvalidCampaignLeavesHalfOpenTrialAvailable() {
	ctx := context.Background()
	breakers := halfOpenBreakers()

	invalid := newCampaign("c1", domain.PlatformReddit)
	invalid.Name = ""

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return([]domain.Campaign{
		invalid,
		newCampaign("c2", domain.PlatformReddit),
	}, nil)

	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c1", domain.SyncStatusFailed, gomock.Any()).Return(nil)
	s.repo.EXPECT().IncrementRetryCount(ctx, "c1").Return(1, nil)

	s.repo.EXPECT().ResetSyncForRetry(ctx, "c2").Return(nil)
	s.reddit.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return(platform.CreateResult{Success: true, PlatformID: "rc2"}, nil)
	s.repo.EXPECT().UpdateCampaignPlatformID(ctx, "c2", "rc2").Return(nil)
	s.expectSynced(ctx, "c2")

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1"})

	s.Require().NoError(err)
	s.Equal(domain.RetryResult{Processed: 2, Succeeded: 1, Failed: 1}, *result)
	s.Equal(circuitbreaker.StateClosed, breakers.Get(domain.PlatformReddit).State())
}

func (s *RetryHandlerTestSuite) TestHandle_ResetFailureReleasesHalfOpenTrial() {
	ctx := context.Background()
	breakers := halfOpenBreakers()

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return([]domain.Campaign{
		newCampaign("c1", domain.PlatformReddit),
		newCampaign("c2", domain.PlatformReddit),
	}, nil)

	s.repo.EXPECT().ResetSyncForRetry(ctx, "c1").Return(errors.New("db down"))
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c1", domain.SyncStatusFailed, "reset sync state: db down").Return(nil)
	s.repo.EXPECT().IncrementRetryCount(ctx, "c1").Return(1, nil)

	s.repo.EXPECT().ResetSyncForRetry(ctx, "c2").Return(nil)
	s.reddit.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return(platform.CreateResult{Success: true, PlatformID: "rc2"}, nil)
	s.repo.EXPECT().UpdateCampaignPlatformID(ctx, "c2", "rc2").Return(nil)
	s.expectSynced(ctx, "c2")

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1"})

	s.Require().NoError(err)
	s.Equal(domain.RetryResult{Processed: 2, Succeeded: 1, Failed: 1}, *result)
	s.Equal(circuitbreaker.StateClosed, breakers.Get(domain.PlatformReddit).State())
}

func (s *RetryHandlerTestSuite) TestHandle_ResetFailureReleasesAdmittedCall() {
	ctx := context.Background()

	cb := mocks.NewMockCircuitBreaker(s.ctrl)
	breakers := mocks.NewMockBreakerRegistry(s.ctrl)
	breakers.EXPECT().Get(domain.PlatformReddit).Return(cb).AnyTimes()

	gomock.InOrder(
		cb.EXPECT().CanExecute().Return(true),
		cb.EXPECT().Release(),
	)

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return([]domain.Campaign{newCampaign("c1", domain.PlatformReddit)}, nil)
	s.repo.EXPECT().ResetSyncForRetry(ctx, "c1").Return(errors.New("db down"))
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c1", domain.SyncStatusFailed, "reset sync state: db down").Return(nil)
	s.repo.EXPECT().IncrementRetryCount(ctx, "c1").Return(1, nil)

	_, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1"})

	s.Require().NoError(err)
}

func (s *RetryHandlerTestSuite) TestHandle_PushesSubtree() {
	ctx := context.Background()
	breakers := circuitbreaker.NewRegistry(circuitbreaker.DefaultConfig(), testutil.DiscardLogger())

	c := newCampaign("c1", domain.PlatformReddit)
	c.PlatformCampaignID = testutil.Ptr("rc1")
	c.AdGroups = []domain.AdGroup{{
		ID:         "g1",
		CampaignID: "c1",
		Ads:        []domain.Ad{{ID: "a1", AdGroupID: "g1"}},
		Keywords:   []domain.Keyword{{ID: "k1", AdGroupID: "g1", PlatformKeywordID: testutil.Ptr("rk1")}},
	}}

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return([]domain.Campaign{c}, nil)

	gomock.InOrder(
		s.repo.EXPECT().ResetSyncForRetry(ctx, "c1").Return(nil),
		s.reddit.EXPECT().UpdateCampaign(gomock.Any(), gomock.Any(), "rc1").Return(platform.Result{Success: true}, nil),
		s.reddit.EXPECT().CreateAdGroup(gomock.Any(), gomock.Any(), "rc1").Return(platform.CreateResult{Success: true, PlatformID: "rg1"}, nil),
		s.repo.EXPECT().UpdateAdGroupPlatformID(ctx, "g1", "rg1").Return(nil),
		s.reddit.EXPECT().CreateAd(gomock.Any(), gomock.Any(), "rg1").Return(platform.CreateResult{Success: true, PlatformID: "ra1"}, nil),
		s.repo.EXPECT().UpdateAdPlatformID(ctx, "a1", "ra1").Return(nil),
		s.reddit.EXPECT().UpdateKeyword(gomock.Any(), gomock.Any(), "rk1").Return(platform.Result{Success: true}, nil),
	)
	s.expectSynced(ctx, "c1")

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1"})

	s.Require().NoError(err)
	s.Equal(domain.RetryResult{Processed: 1, Succeeded: 1}, *result)
}

func (s *RetryHandlerTestSuite) TestHandle_ChildFailureFailsCampaign() {
	ctx := context.Background()
	breakers := circuitbreaker.NewRegistry(circuitbreaker.DefaultConfig(), testutil.DiscardLogger())

	c := newCampaign("c1", domain.PlatformReddit)
	c.PlatformCampaignID = testutil.Ptr("rc1")
	c.AdGroups = []domain.AdGroup{{
		ID:       "g1",
		Keywords: []domain.Keyword{{ID: "k1"}},
	}}

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return([]domain.Campaign{c}, nil)
	s.repo.EXPECT().ResetSyncForRetry(ctx, "c1").Return(nil)
	s.reddit.EXPECT().UpdateCampaign(gomock.Any(), gomock.Any(), "rc1").Return(platform.Result{Success: true}, nil)
	s.reddit.EXPECT().CreateAdGroup(gomock.Any(), gomock.Any(), "rc1").Return(platform.CreateResult{Success: false, Error: "bid too low"}, nil)
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c1", domain.SyncStatusFailed, "adGroup g1: bid too low").Return(nil)
	s.repo.EXPECT().IncrementRetryCount(ctx, "c1").Return(1, nil)

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1"})

	s.Require().NoError(err)
	s.Equal(domain.RetryResult{Processed: 1, Failed: 1}, *result)
}

func (s *RetryHandlerTestSuite) TestHandle_MissingAdapterIsSkipped() {
	ctx := context.Background()
	breakers := circuitbreaker.NewRegistry(circuitbreaker.DefaultConfig(), testutil.DiscardLogger())

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return([]domain.Campaign{
		newCampaign("c1", "tiktok"),
	}, nil)

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1"})

	s.Require().NoError(err)
	s.Equal(domain.RetryResult{Skipped: 1}, *result)
}

func (s *RetryHandlerTestSuite) TestHandle_ListFailure() {
	ctx := context.Background()
	breakers := circuitbreaker.NewRegistry(circuitbreaker.DefaultConfig(), testutil.DiscardLogger())

	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return(nil, errors.New("db down"))

	result, err := s.newHandler(breakers).Handle(ctx, domain.RetryJob{UserID: "user-1"})

	s.Nil(result)
	s.ErrorContains(err, "db down")
}

func (s *RetryHandlerTestSuite) TestRun_HandlesEveryUser() {
	ctx := context.Background()
	breakers := circuitbreaker.NewRegistry(circuitbreaker.DefaultConfig(), testutil.DiscardLogger())

	s.repo.EXPECT().ListUsersWithFailedSyncs(ctx, 3).Return([]string{"user-1", "user-2"}, nil)
	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-1", 3).Return(nil, nil)
	s.repo.EXPECT().GetFailedCampaignsForRetry(ctx, "user-2", 3).Return(nil, nil)

	s.NoError(s.newHandler(breakers).Run(ctx))
}
