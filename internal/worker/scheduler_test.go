package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/pratik-mahalle/cloudcost/internal/config"
	"github.com/pratik-mahalle/cloudcost/internal/domain/budget"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
)

type fakeSyncer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeSyncer) SyncAllDemo(ctx context.Context) (int, error) {
	f.calls.Add(1)
	return 3, f.err
}

type fakeChecker struct {
	calls atomic.Int32
}

func (f *fakeChecker) CheckAll(ctx context.Context) (*budget.CheckResult, error) {
	f.calls.Add(1)
	return &budget.CheckResult{Checked: 2, OK: 1, OverBudget: 1}, nil
}

func newTestScheduler(syncer *fakeSyncer, checker *fakeChecker, cfg config.SchedulerConfig) *Scheduler {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewScheduler(syncer, checker, cfg, log)
}

var defaultSchedules = config.SchedulerConfig{
	Enabled:             true,
	SyncSchedule:        "0 2 * * *",
	BudgetCheckSchedule: "0 * * * *",
}

func TestScheduler_RunNow(t *testing.T) {
	syncer := &fakeSyncer{}
	checker := &fakeChecker{}
	s := newTestScheduler(syncer, checker, defaultSchedules)
	ctx := context.Background()

	tests := []struct {
		name    string
		job     string
		wantErr bool
	}{
		{name: "sync demo accounts", job: JobSyncDemoAccounts},
		{name: "check budgets", job: JobCheckBudgets},
		{name: "unknown job", job: "reindex", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.RunNow(ctx, tt.job); (err != nil) != tt.wantErr {
				t.Errorf("RunNow() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if syncer.calls.Load() != 1 || checker.calls.Load() != 1 {
		t.Errorf("calls = %d/%d, want 1/1", syncer.calls.Load(), checker.calls.Load())
	}

	syncer.err = errors.New("database is locked")
	if err := s.RunNow(ctx, JobSyncDemoAccounts); err == nil {
		t.Error("RunNow() should return the job error")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(&fakeSyncer{}, &fakeChecker{}, defaultSchedules)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Error("second Start() should fail")
	}

	for _, name := range s.Jobs() {
		if next, ok := s.NextRun(name); !ok || next.IsZero() {
			t.Errorf("NextRun(%s) = %v, %v", name, next, ok)
		}
	}

	s.Stop()
	if _, ok := s.NextRun(JobCheckBudgets); ok {
		t.Error("entries should be cleared after Stop()")
	}
	s.Stop()
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	cfg := defaultSchedules
	cfg.BudgetCheckSchedule = "every hour"
	s := newTestScheduler(&fakeSyncer{}, &fakeChecker{}, cfg)

	if err := s.Start(context.Background()); err == nil {
		s.Stop()
		t.Fatal("Start() accepted an invalid schedule")
	}
}

func TestScheduler_Jobs(t *testing.T) {
	s := newTestScheduler(&fakeSyncer{}, &fakeChecker{}, defaultSchedules)
	got := s.Jobs()
	if len(got) != 2 || got[0] != JobCheckBudgets || got[1] != JobSyncDemoAccounts {
		t.Errorf("Jobs() = %v", got)
	}
}
