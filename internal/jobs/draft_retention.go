package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"myground/internal/metrics"
)

// DraftPurger deletes drafts not saved since a cutoff
type DraftPurger interface {
	PurgeSavedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// DraftRetentionJob periodically deletes abandoned drafts. A zero retention
// keeps drafts forever and the job never schedules.
type DraftRetentionJob struct {
	drafts    DraftPurger
	retention time.Duration
	spec      string
	cron      *cron.Cron
	log       *zap.Logger
	now       func() time.Time
}

// NewDraftRetentionJob creates the sweep. spec is a cron spec such as "@daily".
func NewDraftRetentionJob(drafts DraftPurger, retention time.Duration, spec string, log *zap.Logger) *DraftRetentionJob {
	return &DraftRetentionJob{
		drafts:    drafts,
		retention: retention,
		spec:      spec,
		cron:      cron.New(),
		log:       log,
		now:       time.Now,
	}
}

// Enabled reports whether a retention period is configured
func (j *DraftRetentionJob) Enabled() bool {
	return j.retention > 0
}

// Start registers the sweep and starts the scheduler
func (j *DraftRetentionJob) Start(ctx context.Context) error {
	if !j.Enabled() {
		j.log.Info("draft retention disabled, drafts are kept until discarded")
		return nil
	}

	_, err := j.cron.AddFunc(j.spec, func() {
		if _, err := j.RunOnce(ctx); err != nil {
			j.log.Error("draft retention sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	j.cron.Start()
	j.log.Info("draft retention job started",
		zap.String("spec", j.spec),
		zap.Duration("retention", j.retention),
	)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (j *DraftRetentionJob) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce deletes every draft last saved before now minus the retention period
func (j *DraftRetentionJob) RunOnce(ctx context.Context) (int64, error) {
	if !j.Enabled() {
		return 0, nil
	}

	cutoff := j.now().Add(-j.retention)
	n, err := j.drafts.PurgeSavedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	metrics.DraftRetentionPurged.Add(float64(n))
	if n > 0 {
		j.log.Info("purged abandoned drafts", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
