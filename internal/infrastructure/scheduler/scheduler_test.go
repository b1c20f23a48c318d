package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name string
	runs atomic.Int64
	err  error
}

func (j *countingJob) Name() string        { return j.name }
func (j *countingJob) Description() string { return "counts its executions" }

func (j *countingJob) Run(context.Context) error {
	j.runs.Add(1)
	return j.err
}

func newTestScheduler() *Scheduler {
	return NewScheduler(SchedulerConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestRegister(t *testing.T) {
	s := newTestScheduler()
	job := &countingJob{name: "sweep"}

	require.NoError(t, s.Register(job, NewIntervalSchedule(time.Minute)))

	assert.ErrorIs(t, s.Register(job, NewIntervalSchedule(time.Minute)), ErrJobAlreadyExists)
	assert.ErrorIs(t, s.Register(nil, NewIntervalSchedule(time.Minute)), ErrNilJob)
	assert.ErrorIs(t, s.Register(&countingJob{name: "other"}, nil), ErrNilSchedule)
}

func TestEnableDisable(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.Register(&countingJob{name: "sweep"}, NewIntervalSchedule(time.Minute)))

	assert.NoError(t, s.DisableJob("sweep"))
	assert.NoError(t, s.EnableJob("sweep"))
	assert.ErrorIs(t, s.DisableJob("missing"), ErrJobNotFound)
	assert.ErrorIs(t, s.EnableJob("missing"), ErrJobNotFound)
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerAlreadyRunning)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.ErrorIs(t, s.Stop(), ErrSchedulerNotRunning)
}

func TestRunJobNow(t *testing.T) {
	s := newTestScheduler()
	job := &countingJob{name: "sweep"}
	require.NoError(t, s.Register(job, NewIntervalSchedule(time.Hour)))

	assert.ErrorIs(t, s.RunJobNow("sweep"), ErrSchedulerNotRunning)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.RunJobNow("sweep"))
	assert.ErrorIs(t, s.RunJobNow("missing"), ErrJobNotFound)
	require.NoError(t, s.Stop())

	// Stop waits for in-flight jobs, so the run is recorded by now.
	assert.Equal(t, int64(1), job.runs.Load())
	result, ok := s.LastRun("sweep")
	require.True(t, ok)
	assert.True(t, result.Success)
	assert.Equal(t, "sweep", result.JobName)
}

func TestRunJobNow_RecordsFailure(t *testing.T) {
	s := newTestScheduler()
	job := &countingJob{name: "sweep", err: errors.New("sweep failed")}
	require.NoError(t, s.Register(job, NewIntervalSchedule(time.Hour)))

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.RunJobNow("sweep"))
	require.NoError(t, s.Stop())

	result, ok := s.LastRun("sweep")
	require.True(t, ok)
	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestIntervalSchedule(t *testing.T) {
	sched := NewIntervalSchedule(15 * time.Minute)
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(15*time.Minute), sched.Next(now))
	assert.Equal(t, "@every 15m0s", sched.String())
}
