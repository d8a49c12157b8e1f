package service

import (
	"context"
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

type SyncServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	repo      *mocks.MockRepository
	syncState *mocks.MockSyncStateStore
	txManager *mocks.MockTransactionManager
	adapter   *mocks.MockAdapter
	publisher *mocks.MockEventPublisher

	service *SyncService
	events  []domain.SyncEvent
}

func (s *SyncServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.repo = mocks.NewMockRepository(s.ctrl)
	s.syncState = mocks.NewMockSyncStateStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.adapter = mocks.NewMockAdapter(s.ctrl)
	s.publisher = mocks.NewMockEventPublisher(s.ctrl)

	s.adapter.EXPECT().Platform().Return(domain.PlatformReddit).AnyTimes()

	s.events = nil
	s.publisher.EXPECT().PublishSyncEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e domain.SyncEvent) error {
			s.events = append(s.events, e)
			return nil
		},
	).AnyTimes()

	cfg := config.SyncConfig{CallTimeout: time.Second, MaxRetries: 3}
	logger := testutil.DiscardLogger()

	applier := NewDiffApplier(
		s.repo,
		s.syncState,
		platform.NewRegistry(s.adapter),
		circuitbreaker.NewRegistry(circuitbreaker.DefaultConfig(), logger),
		logger,
		cfg,
	)

	s.service = NewSyncService(
		s.repo,
		s.txManager,
		validation.New(platform.NewDefaultsResolver()),
		applier,
		s.publisher,
		logger,
		cfg,
	)
}

func (s *SyncServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}

func (s *SyncServiceTestSuite) expectTransaction() {
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func (s *SyncServiceTestSuite) TestSyncCampaignSet_CreatesAndUpdates() {
	ctx := context.Background()

	existing := newCampaign("c1", domain.PlatformReddit)
	existing.PlatformCampaignID = testutil.Ptr("rc1")
	current := &domain.CampaignSet{ID: "set-1", Campaigns: []domain.Campaign{existing}}

	paused := newCampaign("c1", domain.PlatformReddit)
	paused.Status = domain.CampaignStatusPaused
	fresh := newCampaign("c2", domain.PlatformReddit)
	generated := []domain.Campaign{paused, fresh}

	s.repo.EXPECT().GetCampaignSetWithRelations(ctx, "set-1").Return(current, nil).Times(2)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusSyncing).Return(nil)
	s.expectTransaction()
	s.repo.EXPECT().UpsertCampaignTree(ctx, "set-1", generated).Return(nil)

	s.adapter.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return(platform.CreateResult{Success: true, PlatformID: "rc2"}, nil)
	s.repo.EXPECT().UpdateCampaignPlatformID(ctx, "c2", "rc2").Return(nil)
	s.syncState.EXPECT().Record(ctx, "c2", domain.CampaignStatusActive, gomock.Any()).Return(nil)

	s.adapter.EXPECT().UpdateCampaign(gomock.Any(), gomock.Any(), "rc1").Return(platform.Result{Success: true}, nil)
	s.syncState.EXPECT().Record(ctx, "c1", domain.CampaignStatusPaused, gomock.Any()).Return(nil)

	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c1", domain.SyncStatusSynced, "").Return(nil)
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c2", domain.SyncStatusSynced, "").Return(nil)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusSynced).Return(nil)

	result, err := s.service.SyncCampaignSet(ctx, "job-1", "set-1", generated)

	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal(1, result.Created)
	s.Equal(1, result.Updated)

	s.Require().Len(s.events, 3)
	s.Equal(domain.SyncEventProgress, s.events[0].Type)
	s.Equal("sync:job-1", s.events[0].Channel())
	s.Equal(2, s.events[1].Done)
	last := s.events[2]
	s.Equal(domain.SyncEventCompleted, last.Type)
	s.Equal("sync:job-1:done", last.Channel())
	s.Same(result, last.Result)
}

func (s *SyncServiceTestSuite) TestSyncCampaignSet_InvalidCampaignIsLeftOut() {
	ctx := context.Background()

	current := &domain.CampaignSet{ID: "set-1"}

	invalid := newCampaign("c1", domain.PlatformReddit)
	invalid.Name = ""
	// Reddit supplies the objective, so this one is valid.
	valid := newCampaign("c2", domain.PlatformReddit)
	valid.Objective = ""

	s.repo.EXPECT().GetCampaignSetWithRelations(ctx, "set-1").Return(current, nil).Times(2)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusSyncing).Return(nil)
	s.expectTransaction()
	s.repo.EXPECT().UpsertCampaignTree(ctx, "set-1", []domain.Campaign{valid}).Return(nil)

	s.adapter.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return(platform.CreateResult{Success: true, PlatformID: "rc2"}, nil)
	s.repo.EXPECT().UpdateCampaignPlatformID(ctx, "c2", "rc2").Return(nil)
	s.syncState.EXPECT().Record(ctx, "c2", domain.CampaignStatusActive, gomock.Any()).Return(nil)
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c2", domain.SyncStatusSynced, "").Return(nil)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusFailed).Return(nil)

	result, err := s.service.SyncCampaignSet(ctx, "job-1", "set-1", []domain.Campaign{invalid, valid})

	s.Require().NoError(err)
	s.False(result.Success)
	s.Equal(1, result.Created)
	s.Require().Len(result.Errors, 1)

	verr := result.Errors[0]
	s.Equal(domain.ErrCodeValidationFailed, verr.Code)
	s.Equal("c1", verr.EntityID)
	s.Require().Len(verr.FieldErrors, 1)
	s.Equal("name", verr.FieldErrors[0].Field)
}

func (s *SyncServiceTestSuite) TestSyncCampaignSet_InvalidPersistedCampaignIsNotPushed() {
	ctx := context.Background()

	stored := newCampaign("c1", domain.PlatformReddit)
	current := &domain.CampaignSet{ID: "set-1", Campaigns: []domain.Campaign{stored}}

	invalid := stored
	invalid.Name = ""

	s.repo.EXPECT().GetCampaignSetWithRelations(ctx, "set-1").Return(current, nil).Times(2)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusSyncing).Return(nil)
	s.expectTransaction()
	s.repo.EXPECT().UpsertCampaignTree(ctx, "set-1", []domain.Campaign{}).Return(nil)
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c1", domain.SyncStatusFailed, gomock.Any()).Return(nil)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusFailed).Return(nil)

	result, err := s.service.SyncCampaignSet(ctx, "job-1", "set-1", []domain.Campaign{invalid})

	s.Require().NoError(err)
	s.Zero(result.Created)
	s.Require().Len(result.Errors, 1)
	s.Equal(domain.ErrCodeValidationFailed, result.Errors[0].Code)
}

func (s *SyncServiceTestSuite) TestSyncCampaignSet_DeferredPushLeavesSetPending() {
	ctx := context.Background()
	logger := testutil.DiscardLogger()
	cfg := config.SyncConfig{CallTimeout: time.Second, MaxRetries: 3}

	breakers := circuitbreaker.NewRegistry(circuitbreaker.Config{FailureThreshold: 1, OpenDuration: time.Hour}, logger)
	breakers.Get(domain.PlatformReddit).RecordFailure()
	applier := NewDiffApplier(s.repo, s.syncState, platform.NewRegistry(s.adapter), breakers, logger, cfg)
	svc := NewSyncService(s.repo, s.txManager, validation.New(platform.NewDefaultsResolver()), applier, s.publisher, logger, cfg)

	fresh := newCampaign("c1", domain.PlatformReddit)

	s.repo.EXPECT().GetCampaignSetWithRelations(ctx, "set-1").Return(&domain.CampaignSet{ID: "set-1"}, nil)
	s.repo.EXPECT().GetCampaignSetWithRelations(ctx, "set-1").Return(&domain.CampaignSet{ID: "set-1", Campaigns: []domain.Campaign{fresh}}, nil)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusSyncing).Return(nil)
	s.expectTransaction()
	s.repo.EXPECT().UpsertCampaignTree(ctx, "set-1", []domain.Campaign{fresh}).Return(nil)
	s.repo.EXPECT().UpdateCampaignSyncStatus(ctx, "c1", domain.SyncStatusFailed, "deferred: circuit open for platform reddit").Return(nil)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusPending).Return(nil)

	result, err := svc.SyncCampaignSet(ctx, "job-1", "set-1", []domain.Campaign{fresh})

	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal(1, result.Skipped)
}

func (s *SyncServiceTestSuite) TestSyncCampaignSet_NotFound() {
	ctx := context.Background()

	s.repo.EXPECT().GetCampaignSetWithRelations(ctx, "missing").Return(nil, domain.ErrNotFound)

	result, err := s.service.SyncCampaignSet(ctx, "job-1", "missing", nil)

	s.Nil(result)
	s.True(domain.IsCode(err, domain.ErrCodeCampaignSetNotFound))
	s.Require().Len(s.events, 1)
	s.Equal(domain.SyncEventError, s.events[0].Type)
	s.Equal("sync:job-1:done", s.events[0].Channel())
}

func (s *SyncServiceTestSuite) TestSyncCampaignSet_GeneratesJobID() {
	ctx := context.Background()
	current := &domain.CampaignSet{ID: "set-1"}

	s.repo.EXPECT().GetCampaignSetWithRelations(ctx, "set-1").Return(current, nil).Times(2)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusSyncing).Return(nil)
	s.expectTransaction()
	s.repo.EXPECT().UpsertCampaignTree(ctx, "set-1", []domain.Campaign{}).Return(nil)
	s.repo.EXPECT().UpdateCampaignSetSyncStatus(ctx, "set-1", domain.SyncStatusSynced).Return(nil)

	result, err := s.service.SyncCampaignSet(ctx, "", "set-1", nil)

	s.Require().NoError(err)
	s.True(result.Success)
	s.Require().Len(s.events, 1)
	s.NotEmpty(s.events[0].JobID)
}

func (s *SyncServiceTestSuite) TestSyncCampaignSet_NotConfigured() {
	svc := NewSyncService(nil, nil, nil, nil, nil, testutil.DiscardLogger(), config.SyncConfig{})

	_, err := svc.SyncCampaignSet(context.Background(), "job-1", "set-1", nil)

	s.True(domain.IsCode(err, domain.ErrCodeServiceNotConfigured))
}
