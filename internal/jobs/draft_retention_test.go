package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"myground/internal/metrics"
)

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int64
	err     error
}

func (f *fakePurger) PurgeSavedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.n, f.err
}

func (f *fakePurger) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestRunOnceUsesRetentionCutoff(t *testing.T) {
	purger := &fakePurger{n: 3}
	job := NewDraftRetentionJob(purger, 72*time.Hour, "@daily", zap.NewNop())
	now := time.Date(2026, 8, 10, 3, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	before := testutil.ToFloat64(metrics.DraftRetentionPurged)
	n, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.Len(t, purger.cutoffs, 1)
	assert.Equal(t, now.Add(-72*time.Hour), purger.cutoffs[0])
	assert.Equal(t, before+3, testutil.ToFloat64(metrics.DraftRetentionPurged))
}

func TestRunOnceReportsErrors(t *testing.T) {
	purger := &fakePurger{err: errors.New("db down")}
	job := NewDraftRetentionJob(purger, time.Hour, "@daily", zap.NewNop())

	_, err := job.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestDisabledRetentionNeverPurges(t *testing.T) {
	purger := &fakePurger{}
	job := NewDraftRetentionJob(purger, 0, "@every 1s", zap.NewNop())
	assert.False(t, job.Enabled())

	require.NoError(t, job.Start(context.Background()))
	defer job.Stop()

	n, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, purger.calls())
}

func TestStartRejectsBadSpec(t *testing.T) {
	job := NewDraftRetentionJob(&fakePurger{}, time.Hour, "every tuesday", zap.NewNop())
	assert.Error(t, job.Start(context.Background()))
}

func TestScheduledSweepRuns(t *testing.T) {
	purger := &fakePurger{}
	job := NewDraftRetentionJob(purger, time.Hour, "@every 1s", zap.NewNop())

	require.NoError(t, job.Start(context.Background()))
	defer job.Stop()

	assert.Eventually(t, func() bool { return purger.calls() > 0 }, 5*time.Second, 50*time.Millisecond)
}
