package scheduler

import (
	"context"
	"testing"

	"car-rental-backend/internal/config"
	"car-rental-backend/internal/jobs"
	"car-rental-backend/internal/repository/memory"
	"car-rental-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T, schedule string) *Scheduler {
	t.Helper()
	store := memory.NewStore()
	system, err := service.NewSystem(context.Background(), store.UserRepository, store.CarRepository, store.RentalRepository, store.SequenceRepository)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Scheduler.ReconcileAvailability = schedule
	return NewScheduler(jobs.NewJobRunner(system, cfg))
}

func TestScheduler_RegistersJobs(t *testing.T) {
	s := newTestScheduler(t, "0 0 3 * * *")
	assert.True(t, s.IsRunning())
	assert.Len(t, s.cron.Entries(), 1)
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := newTestScheduler(t, "not a cron expression")
	assert.False(t, s.IsRunning())
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(t, "0 0 3 * * *")
	s.Start()
	s.Stop()
}
