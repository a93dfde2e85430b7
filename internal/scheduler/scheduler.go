package scheduler

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"sync"
	"time"

	"smmagent/internal/models"
)

const DefaultPollInterval = 60 * time.Second

const (
	CadenceImmediate = "immediate"
	CadenceDaily     = "daily"
	CadenceWeekly    = "weekly"
)

// Dispatcher is the outbound side of the scheduler; satisfied by
// service.DispatchService.
type Dispatcher interface {
	Publish(ctx context.Context, post *models.Post, targets []string) (map[string]models.PublishOutcome, error)
}

// Job is a pending publish request tied to a future time. Jobs live only in
// memory; a process restart loses them.
type Job struct {
	Post        *models.Post `json:"post"`
	Platforms   []string     `json:"platforms"`
	PublishTime time.Time    `json:"publish_time"`
	Cadence     string       `json:"cadence"`
}

type ScheduleResult struct {
	ScheduledCount int    `json:"scheduled_count"`
	ScheduleType   string `json:"schedule_type"`
	Jobs           []*Job `json:"posts"`
}

// Scheduler owns the pending job set and the background polling loop that
// hands due jobs to the Dispatcher. One instance per process; it is shared by
// every request handler.
type Scheduler struct {
	interval time.Duration
	d        Dispatcher

	mu      sync.Mutex
	pending []*Job
	running bool
	done    chan struct{}
	wg      sync.WaitGroup

	now func() time.Time
}

func New(d Dispatcher, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Scheduler{
		interval: interval,
		d:        d,
		now:      time.Now,
	}
}

// SchedulePosts computes a publish time for every post according to the
// cadence, marks the posts scheduled and enqueues one job per post.
func (s *Scheduler) SchedulePosts(posts []*models.Post, cadence string, targets []string) (*ScheduleResult, error) {
	if len(posts) == 0 {
		return nil, errors.New("no posts to schedule")
	}
	if len(targets) == 0 {
		targets = []string{models.PlatformInstagram, models.PlatformFacebook}
	}

	cadence = normalizeCadence(cadence)
	now := s.now()

	jobs := make([]*Job, 0, len(posts))
	for i, post := range posts {
		t := publishTime(now, cadence, i)
		post.Status = models.PostStatusScheduled
		post.ScheduledTime = &t
		jobs = append(jobs, &Job{
			Post:        post,
			Platforms:   targets,
			PublishTime: t,
			Cadence:     cadence,
		})
	}

	s.mu.Lock()
	s.pending = append(s.pending, jobs...)
	s.mu.Unlock()

	return &ScheduleResult{
		ScheduledCount: len(jobs),
		ScheduleType:   cadence,
		Jobs:           jobs,
	}, nil
}

func normalizeCadence(cadence string) string {
	switch cadence {
	case CadenceDaily, CadenceWeekly:
		return cadence
	default:
		return CadenceImmediate
	}
}

// publishTime spaces post i by one day (daily) or one week (weekly) from now,
// keeping the current hour and minute with seconds zeroed. Immediate and
// unknown cadences publish right away.
func publishTime(now time.Time, cadence string, i int) time.Time {
	var d time.Time
	switch cadence {
	case CadenceDaily:
		d = now.AddDate(0, 0, i)
	case CadenceWeekly:
		d = now.AddDate(0, 0, 7*i)
	default:
		return now
	}
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())
}

// Start launches the polling loop. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop()
	log.Println("Scheduler started")
}

// Stop signals the loop to exit and blocks until it has. No job fires after
// Stop returns; a dispatch in flight at that moment is left to finish.
// Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.runPending(context.Background())
		}
	}
}

// runPending removes every due job from the pending set and dispatches it.
// Jobs are consumed exactly once, in insertion order. A per-platform failure
// inside the outcome map does not mark the post failed; only a dispatch-level
// error does.
func (s *Scheduler) runPending(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var due, rest []*Job
	for _, job := range s.pending {
		if !job.PublishTime.After(now) {
			due = append(due, job)
		} else {
			rest = append(rest, job)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	for _, job := range due {
		if _, err := s.d.Publish(ctx, job.Post, job.Platforms); err != nil {
			slog.Info(err.Error())
			job.Post.Status = models.PostStatusFailed
			continue
		}
		published := s.now()
		job.Post.Status = models.PostStatusPublished
		job.Post.PublishedAt = &published
	}
}
