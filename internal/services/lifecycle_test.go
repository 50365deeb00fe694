package services

import (
	"context"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/careerdock/jobportal/internal/domain/events"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPostingsRepo struct {
	mock.Mock
}

func (m *mockPostingsRepo) Add(ctx context.Context, posting *models.JobPosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *mockPostingsRepo) GetByID(ctx context.Context, id uint) (*models.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *mockPostingsRepo) GetByEmployer(ctx context.Context, employerID int64) ([]models.JobPosting, error) {
	args := m.Called(ctx, employerID)
	return args.Get(0).([]models.JobPosting), args.Error(1)
}

func (m *mockPostingsRepo) GetAll(ctx context.Context) ([]models.JobPosting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.JobPosting), args.Error(1)
}

func (m *mockPostingsRepo) GetByState(ctx context.Context, state models.ModerationState) ([]models.JobPosting, error) {
	args := m.Called(ctx, state)
	return args.Get(0).([]models.JobPosting), args.Error(1)
}

func (m *mockPostingsRepo) TransitionState(ctx context.Context, id uint, from models.ModerationState,
	updates map[string]any) (bool, error) {
	args := m.Called(ctx, id, from, updates)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostingsRepo) UpdateContent(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *mockPostingsRepo) Remove(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockDecisionsRepo struct {
	mock.Mock
}

func (m *mockDecisionsRepo) Add(ctx context.Context, decision *models.ModerationDecision) error {
	args := m.Called(ctx, decision)
	return args.Error(0)
}

func (m *mockDecisionsRepo) GetLatestByPosting(ctx context.Context, postingID uint) (*models.ModerationDecision, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModerationDecision), args.Error(1)
}

func (m *mockDecisionsRepo) GetByPosting(ctx context.Context, postingID uint) ([]models.ModerationDecision, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ModerationDecision), args.Error(1)
}

var (
	employer  = models.Actor{ID: 10, Role: models.RoleEmployer}
	moderator = models.Actor{ID: 1, Role: models.RoleAdmin}
	seeker    = models.Actor{ID: 20, Role: models.RoleJobSeeker}
)

func pendingPosting(id uint, employerID int64) *models.JobPosting {
	posting := models.NewJobPosting(employerID, "Backend Developer", "Acme", "Berlin",
		"Build services", models.FullTime)
	posting.ID = id
	return posting
}

func Test_Lifecycle_Submit_EntersPendingState(t *testing.T) {

	assert := assert.New(t)

	postings := &mockPostingsRepo{}
	postings.On("Add", mock.Anything, mock.MatchedBy(func(p *models.JobPosting) bool {
		return p.State == models.StatePending && p.EmployerID == employer.ID
	})).Return(nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	posting := models.NewJobPosting(0, "Backend Developer", "Acme", "Berlin",
		"Build services", models.FullTime)
	assert.NoError(manager.Submit(context.Background(), employer, posting))
	postings.AssertExpectations(t)
}

func Test_Lifecycle_Submit_MissingFieldsFail(t *testing.T) {

	manager := NewJobLifecycleManager(&mockPostingsRepo{}, &mockDecisionsRepo{}, EventBus.New())

	posting := models.NewJobPosting(0, "", "Acme", "Berlin", "Build services", models.FullTime)
	err := manager.Submit(context.Background(), employer, posting)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func Test_Lifecycle_Submit_SeekerDenied(t *testing.T) {

	manager := NewJobLifecycleManager(&mockPostingsRepo{}, &mockDecisionsRepo{}, EventBus.New())

	err := manager.Submit(context.Background(), seeker, pendingPosting(1, seeker.ID))
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func Test_Lifecycle_Decide_ApprovePublishesEvent(t *testing.T) {

	assert := assert.New(t)

	postings := &mockPostingsRepo{}
	postings.On("GetByID", mock.Anything, uint(1)).Return(pendingPosting(1, employer.ID), nil)
	postings.On("TransitionState", mock.Anything, uint(1), models.StatePending, mock.Anything).
		Return(true, nil)

	decisions := &mockDecisionsRepo{}
	decisions.On("Add", mock.Anything, mock.MatchedBy(func(d *models.ModerationDecision) bool {
		return d.Outcome == models.OutcomeApprove && d.ModeratorID == moderator.ID
	})).Return(nil)

	bus := EventBus.New()
	var published []events.PostingApproved
	_ = bus.Subscribe(events.PostingApprovedTopic, func(event events.PostingApproved) {
		published = append(published, event)
	})

	manager := NewJobLifecycleManager(postings, decisions, bus)
	assert.NoError(manager.Decide(context.Background(), moderator, 1, models.OutcomeApprove, ""))

	assert.Len(published, 1)
	assert.Equal(uint(1), published[0].PostingID)
	decisions.AssertExpectations(t)
}

func Test_Lifecycle_Decide_RejectRequiresReason(t *testing.T) {

	manager := NewJobLifecycleManager(&mockPostingsRepo{}, &mockDecisionsRepo{}, EventBus.New())

	err := manager.Decide(context.Background(), moderator, 1, models.OutcomeReject, "  ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func Test_Lifecycle_Decide_NonPendingFails(t *testing.T) {

	postings := &mockPostingsRepo{}
	posting := pendingPosting(1, employer.ID)
	posting.State = models.StateApproved
	postings.On("GetByID", mock.Anything, uint(1)).Return(posting, nil)
	postings.On("TransitionState", mock.Anything, uint(1), models.StatePending, mock.Anything).
		Return(false, nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	err := manager.Decide(context.Background(), moderator, 1, models.OutcomeApprove, "")
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func Test_Lifecycle_Decide_EmployerDenied(t *testing.T) {

	manager := NewJobLifecycleManager(&mockPostingsRepo{}, &mockDecisionsRepo{}, EventBus.New())

	err := manager.Decide(context.Background(), employer, 1, models.OutcomeApprove, "")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func Test_Lifecycle_Decide_MissingPostingFails(t *testing.T) {

	postings := &mockPostingsRepo{}
	postings.On("GetByID", mock.Anything, uint(42)).Return(nil, nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	err := manager.Decide(context.Background(), moderator, 42, models.OutcomeApprove, "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_Lifecycle_Edit_ResetsToPending(t *testing.T) {

	assert := assert.New(t)

	postings := &mockPostingsRepo{}
	posting := pendingPosting(1, employer.ID)
	posting.State = models.StateApproved
	postings.On("GetByID", mock.Anything, uint(1)).Return(posting, nil)
	postings.On("UpdateContent", mock.Anything, uint(1), mock.MatchedBy(func(fields map[string]any) bool {
		return fields["title"] == "Senior Backend Developer"
	})).Return(nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	title := "Senior Backend Developer"
	err := manager.Edit(context.Background(), employer, 1, models.PostingEdit{Title: &title})
	assert.NoError(err)
	postings.AssertExpectations(t)
}

func Test_Lifecycle_Edit_PublishesEditedEvent(t *testing.T) {

	assert := assert.New(t)

	postings := &mockPostingsRepo{}
	posting := pendingPosting(1, employer.ID)
	posting.State = models.StateApproved
	postings.On("GetByID", mock.Anything, uint(1)).Return(posting, nil)
	postings.On("UpdateContent", mock.Anything, uint(1), mock.Anything).Return(nil)

	bus := EventBus.New()
	var published []events.PostingEdited
	_ = bus.Subscribe(events.PostingEditedTopic, func(event events.PostingEdited) {
		published = append(published, event)
	})

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, bus)

	title := "Senior Backend Developer"
	assert.NoError(manager.Edit(context.Background(), employer, 1, models.PostingEdit{Title: &title}))

	assert.Len(published, 1)
	assert.Equal(uint(1), published[0].PostingID)
}

func Test_Lifecycle_Edit_NonOwnerDenied(t *testing.T) {

	postings := &mockPostingsRepo{}
	postings.On("GetByID", mock.Anything, uint(1)).Return(pendingPosting(1, 999), nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	title := "Hijacked"
	err := manager.Edit(context.Background(), employer, 1, models.PostingEdit{Title: &title})
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func Test_Lifecycle_Edit_InvalidContentFails(t *testing.T) {

	postings := &mockPostingsRepo{}
	postings.On("GetByID", mock.Anything, uint(1)).Return(pendingPosting(1, employer.ID), nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	empty := ""
	err := manager.Edit(context.Background(), employer, 1, models.PostingEdit{Title: &empty})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func Test_Lifecycle_Delete_AbsentPostingSucceeds(t *testing.T) {

	postings := &mockPostingsRepo{}
	postings.On("GetByID", mock.Anything, uint(42)).Return(nil, nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	assert.NoError(t, manager.Delete(context.Background(), employer, 42))
}

func Test_Lifecycle_Delete_NonOwnerDenied(t *testing.T) {

	postings := &mockPostingsRepo{}
	postings.On("GetByID", mock.Anything, uint(1)).Return(pendingPosting(1, 999), nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	err := manager.Delete(context.Background(), employer, 1)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func Test_Lifecycle_LatestDecision_OwnerSeesRejectionReason(t *testing.T) {

	assert := assert.New(t)

	postings := &mockPostingsRepo{}
	posting := pendingPosting(1, employer.ID)
	posting.State = models.StateRejected
	postings.On("GetByID", mock.Anything, uint(1)).Return(posting, nil)

	decisions := &mockDecisionsRepo{}
	decisions.On("GetLatestByPosting", mock.Anything, uint(1)).
		Return(&models.ModerationDecision{PostingID: 1, Outcome: models.OutcomeReject,
			Reason: "vague description", ModeratorID: moderator.ID}, nil)

	manager := NewJobLifecycleManager(postings, decisions, EventBus.New())

	decision, err := manager.LatestDecision(context.Background(), employer, 1)
	assert.NoError(err)
	assert.Equal(models.OutcomeReject, decision.Outcome)
	assert.Equal("vague description", decision.Reason)
}

func Test_Lifecycle_LatestDecision_NonOwnerDenied(t *testing.T) {

	postings := &mockPostingsRepo{}
	postings.On("GetByID", mock.Anything, uint(1)).Return(pendingPosting(1, 999), nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	_, err := manager.LatestDecision(context.Background(), employer, 1)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func Test_Lifecycle_LatestDecision_UnmoderatedPostingHasNone(t *testing.T) {

	assert := assert.New(t)

	postings := &mockPostingsRepo{}
	postings.On("GetByID", mock.Anything, uint(1)).Return(pendingPosting(1, employer.ID), nil)

	decisions := &mockDecisionsRepo{}
	decisions.On("GetLatestByPosting", mock.Anything, uint(1)).Return(nil, nil)

	manager := NewJobLifecycleManager(postings, decisions, EventBus.New())

	decision, err := manager.LatestDecision(context.Background(), employer, 1)
	assert.NoError(err)
	assert.Nil(decision)
}

func Test_Lifecycle_DecisionHistory_AdminSeesEveryDecision(t *testing.T) {

	assert := assert.New(t)

	postings := &mockPostingsRepo{}
	postings.On("GetByID", mock.Anything, uint(1)).Return(pendingPosting(1, employer.ID), nil)

	decisions := &mockDecisionsRepo{}
	decisions.On("GetByPosting", mock.Anything, uint(1)).
		Return([]models.ModerationDecision{
			{PostingID: 1, Outcome: models.OutcomeReject, Reason: "spam"},
			{PostingID: 1, Outcome: models.OutcomeApprove},
		}, nil)

	manager := NewJobLifecycleManager(postings, decisions, EventBus.New())

	history, err := manager.DecisionHistory(context.Background(), moderator, 1)
	assert.NoError(err)
	assert.Len(history, 2)
}

func Test_Lifecycle_ListMine_AdminSeesAll(t *testing.T) {

	assert := assert.New(t)

	postings := &mockPostingsRepo{}
	postings.On("GetAll", mock.Anything).
		Return([]models.JobPosting{*pendingPosting(1, 10), *pendingPosting(2, 11)}, nil)

	manager := NewJobLifecycleManager(postings, &mockDecisionsRepo{}, EventBus.New())

	listed, err := manager.ListMine(context.Background(), moderator)
	assert.NoError(err)
	assert.Len(listed, 2)
}

func Test_Lifecycle_ListPending_EmployerDenied(t *testing.T) {

	manager := NewJobLifecycleManager(&mockPostingsRepo{}, &mockDecisionsRepo{}, EventBus.New())

	_, err := manager.ListPending(context.Background(), employer)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
