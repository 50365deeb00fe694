package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDb(t *testing.T) *DbContext {

	dbCtx, err := NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())

	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func addPendingPosting(t *testing.T, repo *Postings, employerID int64) *models.JobPosting {

	posting := models.NewJobPosting(employerID, "Backend Developer", "Acme", "Berlin",
		"Build services", models.FullTime)
	posting.RequiredSkills = "go,sql"
	require.NoError(t, repo.Add(context.Background(), posting))
	return posting
}

func Test_Postings_TransitionState_OnlyOneWriterWins(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPostingsRepository(newTestDb(t).DB)
	posting := addPendingPosting(t, repo, 10)

	now := time.Now()
	ok, err := repo.TransitionState(ctx, posting.ID, models.StatePending,
		map[string]any{"state": models.StateApproved, "approved_at": now})
	assert.NoError(err)
	assert.True(ok)

	ok, err = repo.TransitionState(ctx, posting.ID, models.StatePending,
		map[string]any{"state": models.StateRejected, "rejection_reason": "spam"})
	assert.NoError(err)
	assert.False(ok)

	stored, err := repo.GetByID(ctx, posting.ID)
	assert.NoError(err)
	assert.Equal(models.StateApproved, stored.State)
	assert.Empty(stored.RejectionReason)
}

func Test_Postings_UpdateContent_ResetsModeration(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPostingsRepository(newTestDb(t).DB)
	posting := addPendingPosting(t, repo, 10)

	ok, err := repo.TransitionState(ctx, posting.ID, models.StatePending,
		map[string]any{"state": models.StateApproved, "approved_at": time.Now()})
	assert.NoError(err)
	assert.True(ok)

	err = repo.UpdateContent(ctx, posting.ID, map[string]any{"title": "Senior Backend Developer"})
	assert.NoError(err)

	stored, err := repo.GetByID(ctx, posting.ID)
	assert.NoError(err)
	assert.Equal("Senior Backend Developer", stored.Title)
	assert.Equal(models.StatePending, stored.State)
	assert.Nil(stored.ApprovedAt)
}

func Test_Postings_GetApprovedByID_HidesUnmoderated(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPostingsRepository(newTestDb(t).DB)
	posting := addPendingPosting(t, repo, 10)

	found, err := repo.GetApprovedByID(ctx, posting.ID)
	assert.NoError(err)
	assert.Nil(found)

	_, err = repo.TransitionState(ctx, posting.ID, models.StatePending,
		map[string]any{"state": models.StateApproved, "approved_at": time.Now()})
	assert.NoError(err)

	found, err = repo.GetApprovedByID(ctx, posting.ID)
	assert.NoError(err)
	assert.NotNil(found)
}

func Test_Postings_GetApproved_FiltersByKeywordAndLocation(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPostingsRepository(newTestDb(t).DB)

	first := addPendingPosting(t, repo, 10)
	second := addPendingPosting(t, repo, 10)
	second.Location = "Munich"
	second.Title = "Data Engineer"
	assert.NoError(repo.db.Save(second).Error)

	for _, posting := range []*models.JobPosting{first, second} {
		_, err := repo.TransitionState(ctx, posting.ID, models.StatePending,
			map[string]any{"state": models.StateApproved, "approved_at": time.Now()})
		assert.NoError(err)
	}

	postings, err := repo.GetApproved(ctx, "Backend", "", 10, 0)
	assert.NoError(err)
	assert.Len(postings, 1)
	assert.Equal(first.ID, postings[0].ID)

	postings, err = repo.GetApproved(ctx, "", "Munich", 10, 0)
	assert.NoError(err)
	assert.Len(postings, 1)
	assert.Equal(second.ID, postings[0].ID)
}

func Test_Postings_Remove_HidesPosting(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPostingsRepository(newTestDb(t).DB)
	posting := addPendingPosting(t, repo, 10)

	assert.NoError(repo.Remove(ctx, posting.ID))

	found, err := repo.GetByID(ctx, posting.ID)
	assert.NoError(err)
	assert.Nil(found)
}

func Test_Postings_GetBySourceURL_SeesRemovedImports(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPostingsRepository(newTestDb(t).DB)

	posting := addPendingPosting(t, repo, 0)
	assert.NoError(repo.db.Model(posting).
		Update("source_url", "https://careers.acme.test/jobs/42").Error)

	found, err := repo.GetBySourceURL(ctx, "https://careers.acme.test/jobs/42")
	assert.NoError(err)
	assert.NotNil(found)

	// a removed import must still block re-import on the next cycle
	assert.NoError(repo.Remove(ctx, posting.ID))

	found, err = repo.GetBySourceURL(ctx, "https://careers.acme.test/jobs/42")
	assert.NoError(err)
	assert.NotNil(found)

	found, err = repo.GetBySourceURL(ctx, "https://careers.acme.test/jobs/999")
	assert.NoError(err)
	assert.Nil(found)
}

func Test_Resumes_Upsert_ReplacesOwnersArtifact(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewResumesRepository(newTestDb(t).DB)

	first := &models.ResumeArtifact{ID: "a1", SessionID: "s1", OwnerID: 20,
		Skills: "go", Disposition: models.DispositionPersisted}
	assert.NoError(repo.Upsert(ctx, first))

	second := &models.ResumeArtifact{ID: "a2", SessionID: "s2", OwnerID: 20,
		Skills: "go,sql", Disposition: models.DispositionPersisted}
	assert.NoError(repo.Upsert(ctx, second))

	stored, err := repo.GetByOwner(ctx, 20)
	assert.NoError(err)
	assert.Equal("a2", stored.ID)
}

func Test_Engagements_SaveJobIsIdempotent(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewEngagementsRepository(newTestDb(t).DB)

	assert.NoError(repo.SaveJob(ctx, 20, 1))
	assert.NoError(repo.SaveJob(ctx, 20, 1))

	saved, err := repo.GetSavedJobs(ctx, 20)
	assert.NoError(err)
	assert.Len(saved, 1)
}

func Test_Engagements_UnsaveRemovesRow(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewEngagementsRepository(newTestDb(t).DB)

	assert.NoError(repo.SaveJob(ctx, 20, 1))
	assert.NoError(repo.UnsaveJob(ctx, 20, 1))

	saved, err := repo.GetSavedJobs(ctx, 20)
	assert.NoError(err)
	assert.Empty(saved)
}
