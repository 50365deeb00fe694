package services

import (
	"context"
	"strconv"

	"github.com/careerdock/jobportal/internal/clients/engine"
	"github.com/careerdock/jobportal/internal/domain/models"
	"github.com/careerdock/jobportal/internal/logger"
	"github.com/careerdock/jobportal/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type approvedPostingLookup interface {
	GetApprovedByID(ctx context.Context, id uint) (*models.JobPosting, error)
}

// ResultReconciler maps engine job ids back onto catalog postings. The two
// identifier spaces evolve independently, so dangling ids are expected:
// they are dropped from the visible result and counted, not surfaced as
// errors, unless every single id dangles.
type ResultReconciler struct {
	postings approvedPostingLookup
}

func NewResultReconciler(postings approvedPostingLookup) *ResultReconciler {
	return &ResultReconciler{postings: postings}
}

// ReconciledMatch pairs an engine result with its catalog posting.
type ReconciledMatch struct {
	Posting models.JobPosting
	Raw     engine.RankItem
}

func (r *ResultReconciler) Reconcile(ctx context.Context, items []engine.RankItem) ([]ReconciledMatch, error) {

	if len(items) == 0 {
		return []ReconciledMatch{}, nil
	}

	reconciled := make([]ReconciledMatch, 0, len(items))
	dropped := 0

	for _, item := range items {

		id, err := strconv.ParseUint(item.JobID, 10, 64)
		if err != nil {
			dropped++
			metrics.OrphanedResultsCounter.Inc()
			log.Debugf("engine returned non-catalog job id %q", item.JobID)
			continue
		}

		posting, err := r.postings.GetApprovedByID(ctx, uint(id))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to look up posting %v: %v", id, err)
			return nil, err
		}
		if posting == nil {
			dropped++
			metrics.OrphanedResultsCounter.Inc()
			log.Debugf("engine job id %v has no approved catalog posting", id)
			continue
		}

		reconciled = append(reconciled, ReconciledMatch{Posting: *posting, Raw: item})
	}

	if dropped > 0 {
		log.Infof("dropped %v of %v engine results during reconciliation", dropped, len(items))
	}

	if len(reconciled) == 0 {
		return nil, models.ErrNoReconcilableMatches
	}

	return reconciled, nil
}
