package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/careerdock/jobportal/internal/domain/events"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approveTestPosting(t *testing.T, repo *Postings, id uint) {

	ok, err := repo.TransitionState(context.Background(), id, models.StatePending,
		map[string]any{"state": models.StateApproved, "approved_at": time.Now()})
	require.NoError(t, err)
	require.True(t, ok)
}

func Test_CachedPostings_ServesFromCacheAfterFirstLookup(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPostingsRepository(newTestDb(t).DB)
	posting := addPendingPosting(t, repo, 10)
	approveTestPosting(t, repo, posting.ID)

	cached := NewCachedPostings(repo)

	first, err := cached.GetApprovedByID(ctx, posting.ID)
	assert.NoError(err)
	require.NotNil(t, first)

	// mutate behind the cache's back; the warm entry keeps serving
	assert.NoError(repo.db.Model(&models.JobPosting{}).Where("id = ?", posting.ID).
		Update("title", "Renamed").Error)

	second, err := cached.GetApprovedByID(ctx, posting.ID)
	assert.NoError(err)
	require.NotNil(t, second)
	assert.Equal(first.Title, second.Title)
}

func Test_CachedPostings_EditEvictsStaleApprovedEntry(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPostingsRepository(newTestDb(t).DB)
	posting := addPendingPosting(t, repo, 10)
	approveTestPosting(t, repo, posting.ID)

	cached := NewCachedPostings(repo)
	bus := EventBus.New()
	require.NoError(t, cached.Register(bus))

	warmed, err := cached.GetApprovedByID(ctx, posting.ID)
	assert.NoError(err)
	require.NotNil(t, warmed)
	assert.Equal(models.StateApproved, warmed.State)

	require.NoError(t, repo.UpdateContent(ctx, posting.ID,
		map[string]any{"title": "Senior Backend Developer"}))
	bus.Publish(events.PostingEditedTopic, events.PostingEdited{PostingID: posting.ID})

	found, err := cached.GetApprovedByID(ctx, posting.ID)
	assert.NoError(err)
	assert.Nil(found)
}

func Test_CachedPostings_DeleteEvictsEntry(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPostingsRepository(newTestDb(t).DB)
	posting := addPendingPosting(t, repo, 10)
	approveTestPosting(t, repo, posting.ID)

	cached := NewCachedPostings(repo)
	bus := EventBus.New()
	require.NoError(t, cached.Register(bus))

	warmed, err := cached.GetApprovedByID(ctx, posting.ID)
	assert.NoError(err)
	require.NotNil(t, warmed)

	require.NoError(t, repo.Remove(ctx, posting.ID))
	bus.Publish(events.PostingDeletedTopic, events.PostingDeleted{PostingID: posting.ID})

	found, err := cached.GetApprovedByID(ctx, posting.ID)
	assert.NoError(err)
	assert.Nil(found)
}
