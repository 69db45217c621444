package cron

import (
	"context"
	"time"

	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/storage"
	"github.com/habitforge/backend/pkg/xcontext"
)

// ProofPurgeCronJob deletes proof evidence older than its ttl, artifact
// first and metadata row second. Two instances run in production: a
// short-ttl expiry sweep and a long-ttl storage-quota sweep, sharing this
// one implementation at different cadences.
type ProofPurgeCronJob struct {
	name          string
	proofSnapRepo repository.ProofSnapRepository
	proofStorage  storage.Storage
	ttl           time.Duration
	every         time.Duration

	now func() time.Time
}

func NewProofExpiryCronJob(
	ctx context.Context,
	proofSnapRepo repository.ProofSnapRepository,
	proofStorage storage.Storage,
) *ProofPurgeCronJob {
	cfg := xcontext.Configs(ctx).Retention
	return &ProofPurgeCronJob{
		name:          "expiry",
		proofSnapRepo: proofSnapRepo,
		proofStorage:  proofStorage,
		ttl:           cfg.ExpiryTTL(),
		every:         cfg.ExpiryEvery(),
		now:           time.Now,
	}
}

func NewProofQuotaCronJob(
	ctx context.Context,
	proofSnapRepo repository.ProofSnapRepository,
	proofStorage storage.Storage,
) *ProofPurgeCronJob {
	cfg := xcontext.Configs(ctx).Retention
	return &ProofPurgeCronJob{
		name:          "quota",
		proofSnapRepo: proofSnapRepo,
		proofStorage:  proofStorage,
		ttl:           cfg.QuotaTTL(),
		every:         cfg.QuotaEvery(),
		now:           time.Now,
	}
}

func (job *ProofPurgeCronJob) Do(ctx context.Context) {
	succeeded, failed := job.Purge(ctx)
	xcontext.Logger(ctx).Infof(
		"Proof %s purge finished: %d succeeded, %d failed", job.name, succeeded, failed)
}

// Purge is best-effort per item: one broken artifact must not keep the rest
// of the batch alive past its ttl. Re-running over an already-purged set is
// a no-op.
func (job *ProofPurgeCronJob) Purge(ctx context.Context) (succeeded, failed int) {
	expired, err := job.proofSnapRepo.GetCreatedBefore(ctx, job.now().Add(-job.ttl))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list expired proof snaps: %v", err)
		return 0, 0
	}

	for _, snap := range expired {
		if err := job.proofStorage.Remove(ctx, snap.FileName); err != nil {
			xcontext.Logger(ctx).Warnf(
				"Cannot remove artifact %s of proof %s: %v", snap.FileName, snap.ID, err)
			failed++
			continue
		}

		if err := job.proofSnapRepo.Delete(ctx, snap.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete proof snap %s: %v", snap.ID, err)
			failed++
			continue
		}

		succeeded++
	}

	return succeeded, failed
}

func (job *ProofPurgeCronJob) RunNow() bool {
	return true
}

func (job *ProofPurgeCronJob) Next() time.Time {
	return time.Now().Add(job.every)
}
