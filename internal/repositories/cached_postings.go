package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/careerdock/jobportal/internal/domain/events"
	"github.com/careerdock/jobportal/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type approvedPostingRepository interface {
	GetApprovedByID(ctx context.Context, id uint) (*models.JobPosting, error)
}

// CachedPostings is a read-through cache in front of approved-posting
// lookups. Misses (including "not in catalog") are not cached so a posting
// approved moments later becomes reconcilable immediately. Edits and
// deletions evict their entry straight away, so a posting pulled back into
// moderation never keeps serving its old approved content.
type CachedPostings struct {
	repo  approvedPostingRepository
	cache *gocache.Cache
}

func NewCachedPostings(repo approvedPostingRepository) *CachedPostings {
	return &CachedPostings{repo: repo, cache: gocache.New(time.Minute, 5*time.Minute)}
}

// Register subscribes the cache to posting lifecycle events for eviction.
func (c *CachedPostings) Register(bus EventBus.Bus) error {

	if err := bus.Subscribe(events.PostingEditedTopic, c.onPostingEdited); err != nil {
		return err
	}
	return bus.Subscribe(events.PostingDeletedTopic, c.onPostingDeleted)
}

func (c *CachedPostings) GetApprovedByID(ctx context.Context, id uint) (*models.JobPosting, error) {

	key := cacheKey(id)
	if value, found := c.cache.Get(key); found {
		posting := value.(models.JobPosting)
		return &posting, nil
	}

	posting, err := c.repo.GetApprovedByID(ctx, id)
	if err != nil || posting == nil {
		return posting, err
	}

	if err = c.cache.Add(key, *posting, gocache.DefaultExpiration); err != nil {
		return posting, nil
	}

	return posting, nil
}

func (c *CachedPostings) onPostingEdited(event events.PostingEdited) {
	c.cache.Delete(cacheKey(event.PostingID))
}

func (c *CachedPostings) onPostingDeleted(event events.PostingDeleted) {
	c.cache.Delete(cacheKey(event.PostingID))
}

func cacheKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
