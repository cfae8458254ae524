package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/cloudcost/internal/config"
	"github.com/pratik-mahalle/cloudcost/internal/domain/budget"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/metrics"
)

// Job names
const (
	JobSyncDemoAccounts = "sync_demo_accounts"
	JobCheckBudgets     = "check_budgets"
)

// jobTimeout bounds a single scheduled run
const jobTimeout = 10 * time.Minute

// DemoSyncer regenerates demo account data
type DemoSyncer interface {
	SyncAllDemo(ctx context.Context) (int, error)
}

// BudgetChecker evaluates every budget
type BudgetChecker interface {
	CheckAll(ctx context.Context) (*budget.CheckResult, error)
}

type job struct {
	name     string
	schedule string
	run      func(ctx context.Context) error
}

// Scheduler runs the background cron jobs
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]job
	logger  *logger.Logger
	mu      sync.Mutex
	entries map[string]cron.EntryID
	running bool
}

// NewScheduler creates a scheduler for the demo sync and budget check jobs
func NewScheduler(syncer DemoSyncer, checker BudgetChecker, cfg config.SchedulerConfig, log *logger.Logger) *Scheduler {
	cl := cronLogger{log: log}
	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		logger:  log,
		entries: make(map[string]cron.EntryID),
	}

	s.jobs = map[string]job{
		JobSyncDemoAccounts: {
			name:     JobSyncDemoAccounts,
			schedule: cfg.SyncSchedule,
			run: func(ctx context.Context) error {
				n, err := syncer.SyncAllDemo(ctx)
				if err != nil {
					return err
				}
				log.WithFields(map[string]interface{}{"accounts": n}).Info("Demo accounts synced")
				return nil
			},
		},
		JobCheckBudgets: {
			name:     JobCheckBudgets,
			schedule: cfg.BudgetCheckSchedule,
			run: func(ctx context.Context) error {
				res, err := checker.CheckAll(ctx)
				if err != nil {
					return err
				}
				log.WithFields(map[string]interface{}{
					"checked":     res.Checked,
					"near_limit":  res.NearLimit,
					"over_budget": res.OverBudget,
				}).Info("Budgets checked")
				return nil
			},
		},
	}
	return s
}

// Start registers every job and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	for _, name := range s.Jobs() {
		if _, err := cron.ParseStandard(s.jobs[name].schedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q for %s: %w", s.jobs[name].schedule, name, err)
		}
	}

	for _, name := range s.Jobs() {
		j := s.jobs[name]
		entryID, err := s.cron.AddFunc(j.schedule, func() {
			_ = s.execute(ctx, j)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
		s.entries[j.name] = entryID

		s.logger.WithFields(map[string]interface{}{
			"job":      j.name,
			"schedule": j.schedule,
		}).Info("Job scheduled")
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("Job scheduler started")
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()

	for name, id := range s.entries {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
	s.running = false
	s.logger.Info("Job scheduler stopped")
}

// RunNow executes a job immediately, outside its schedule
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	j, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return s.execute(ctx, j)
}

// Jobs returns the registered job names in sorted order
func (s *Scheduler) Jobs() []string {
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextRun returns when a scheduled job fires next
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[name]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

func (s *Scheduler) execute(ctx context.Context, j job) error {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	err := j.run(ctx)

	status := "success"
	fields := map[string]interface{}{
		"job":      j.name,
		"duration": time.Since(start).String(),
	}
	if err != nil {
		status = "failed"
		s.logger.WithFields(fields).ErrorWithErr(err, "Scheduled job failed")
	} else {
		s.logger.WithFields(fields).Debug("Scheduled job completed")
	}
	metrics.RecordJobRun(j.name, status)
	return err
}

// cronLogger adapts the application logger to cron.Logger
type cronLogger struct {
	log *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.WithFields(kvFields(keysAndValues)).Debug("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.WithFields(kvFields(keysAndValues)).ErrorWithErr(err, "cron: "+msg)
}

func kvFields(kv []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
