package services

import (
	"context"
	"testing"

	"github.com/careerdock/jobportal/internal/clients/engine"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPostingLookup struct {
	mock.Mock
}

func (m *mockPostingLookup) GetApprovedByID(ctx context.Context, id uint) (*models.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func approvedPosting(id uint) *models.JobPosting {
	return &models.JobPosting{ID: id, Title: "Backend Developer", State: models.StateApproved}
}

func Test_Reconciler_KeepsOnlyCatalogBackedResults(t *testing.T) {

	assert := assert.New(t)

	lookup := &mockPostingLookup{}
	lookup.On("GetApprovedByID", mock.Anything, uint(1)).Return(approvedPosting(1), nil)
	lookup.On("GetApprovedByID", mock.Anything, uint(2)).Return(nil, nil)
	lookup.On("GetApprovedByID", mock.Anything, uint(3)).Return(approvedPosting(3), nil)

	reconciler := NewResultReconciler(lookup)
	reconciled, err := reconciler.Reconcile(context.Background(), []engine.RankItem{
		{JobID: "1", SkillScore: 90},
		{JobID: "2", SkillScore: 80},
		{JobID: "3", SkillScore: 70},
	})

	assert.NoError(err)
	assert.Len(reconciled, 2)
	assert.Equal(uint(1), reconciled[0].Posting.ID)
	assert.Equal(uint(3), reconciled[1].Posting.ID)
}

func Test_Reconciler_DropsNonNumericIDs(t *testing.T) {

	assert := assert.New(t)

	lookup := &mockPostingLookup{}
	lookup.On("GetApprovedByID", mock.Anything, uint(5)).Return(approvedPosting(5), nil)

	reconciler := NewResultReconciler(lookup)
	reconciled, err := reconciler.Reconcile(context.Background(), []engine.RankItem{
		{JobID: "legacy-job"},
		{JobID: "5"},
	})

	assert.NoError(err)
	assert.Len(reconciled, 1)
	assert.Equal(uint(5), reconciled[0].Posting.ID)
}

func Test_Reconciler_AllOrphanedFails(t *testing.T) {

	lookup := &mockPostingLookup{}
	lookup.On("GetApprovedByID", mock.Anything, mock.Anything).Return(nil, nil)

	reconciler := NewResultReconciler(lookup)
	_, err := reconciler.Reconcile(context.Background(), []engine.RankItem{
		{JobID: "10"}, {JobID: "11"},
	})

	assert.ErrorIs(t, err, models.ErrNoReconcilableMatches)
}

func Test_Reconciler_EmptyInputSucceeds(t *testing.T) {

	assert := assert.New(t)

	reconciler := NewResultReconciler(&mockPostingLookup{})
	reconciled, err := reconciler.Reconcile(context.Background(), nil)

	assert.NoError(err)
	assert.Empty(reconciled)
}
