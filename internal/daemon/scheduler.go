package daemon

import (
	"context"
	"dropdate/internal/logger"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// A firing that starts later than this after its scheduled time is logged
// as past due.
const pastDueTolerance = 30 * time.Second

type Scheduler struct {
	mu           sync.Mutex
	cron         *cron.Cron
	job          *Job
	spec         string
	entryID      cron.EntryID
	runOnStartup bool
	ctx          context.Context
}

func NewScheduler(job *Job, spec string, runOnStartup bool) (*Scheduler, error) {
	cl := cronLogger{}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &Scheduler{
		cron:         c,
		job:          job,
		runOnStartup: runOnStartup,
		ctx:          context.Background(),
	}

	if err := s.schedule(spec); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	if s.runOnStartup {
		s.job.Run(ctx, false)
	}

	s.cron.Start()
	logger.Log.Info("scheduler started",
		zap.String("schedule", s.Spec()),
		zap.Time("next", s.Next()))
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("scheduler stopped")
}

// Reschedule replaces the cron expression. The old entry is kept when the
// new expression does not parse.
func (s *Scheduler) Reschedule(spec string) error {
	if spec == s.Spec() {
		return nil
	}

	if err := s.schedule(spec); err != nil {
		return err
	}

	logger.Log.Info("schedule changed",
		zap.String("schedule", spec))
	return nil
}

func (s *Scheduler) Spec() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	id := s.entryID
	s.mu.Unlock()

	return s.cron.Entry(id).Next
}

func (s *Scheduler) schedule(spec string) error {
	id, err := s.cron.AddFunc(spec, s.fire)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	s.mu.Lock()
	old := s.entryID
	s.entryID = id
	s.spec = spec
	s.mu.Unlock()

	if old != 0 {
		s.cron.Remove(old)
	}

	return nil
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	id, ctx := s.entryID, s.ctx
	s.mu.Unlock()

	scheduled := s.cron.Entry(id).Prev
	s.job.Run(ctx, isPastDue(scheduled, time.Now()))
}

func isPastDue(scheduled, now time.Time) bool {
	return !scheduled.IsZero() && now.Sub(scheduled) > pastDueTolerance
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Log.Sugar().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
