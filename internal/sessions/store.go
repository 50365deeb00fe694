package sessions

import (
	"time"

	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/careerdock/jobportal/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
)

// ArtifactStore holds the active resume artifact per session. Writes
// replace the previous artifact wholesale; the cache mutex makes the swap
// atomic, so a concurrent reader sees either the old or the new artifact,
// never a partial one.
type ArtifactStore struct {
	cache      *gocache.Cache
	defaultTTL time.Duration
}

func NewArtifactStore(defaultTTL time.Duration) *ArtifactStore {

	cache := gocache.New(defaultTTL, 10*time.Minute)
	cache.OnEvicted(func(string, interface{}) {
		metrics.ActiveArtifactsGauge.Dec()
	})
	return &ArtifactStore{cache: cache, defaultTTL: defaultTTL}
}

// Put stores the artifact under its session id, last write wins.
func (s *ArtifactStore) Put(artifact models.ResumeArtifact) {

	ttl := s.defaultTTL
	if artifact.Disposition == models.DispositionPersisted {
		ttl = gocache.NoExpiration
	}

	_, existed := s.cache.Get(artifact.SessionID)
	s.cache.Set(artifact.SessionID, artifact, ttl)
	if !existed {
		metrics.ActiveArtifactsGauge.Inc()
	}
}

func (s *ArtifactStore) Get(sessionID string) (models.ResumeArtifact, bool) {

	value, found := s.cache.Get(sessionID)
	if !found {
		return models.ResumeArtifact{}, false
	}
	return value.(models.ResumeArtifact), true
}

// Delete is idempotent; deleting an absent session is a no-op.
func (s *ArtifactStore) Delete(sessionID string) {
	if _, found := s.cache.Get(sessionID); found {
		s.cache.Delete(sessionID)
	}
}

func (s *ArtifactStore) Count() int {
	return s.cache.ItemCount()
}
