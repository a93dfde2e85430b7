package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smmagent/internal/models"
)

// recordingDispatcher captures every publish call in order.
type recordingDispatcher struct {
	mu    sync.Mutex
	calls []*models.Post
	err   error
}

func (d *recordingDispatcher) Publish(ctx context.Context, post *models.Post, targets []string) (map[string]models.PublishOutcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	d.calls = append(d.calls, post)
	outcomes := make(map[string]models.PublishOutcome, len(targets))
	for _, name := range targets {
		outcomes[name] = models.PublishOutcome{Success: true, PostID: name + "_1"}
	}
	return outcomes, nil
}

func (d *recordingDispatcher) published() []*models.Post {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*models.Post(nil), d.calls...)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSchedulePostsDailyCadence(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 35, 42, 123, time.UTC)
	s := New(&recordingDispatcher{}, time.Second)
	s.now = fixedClock(now)

	posts := []*models.Post{
		{Text: "one"}, {Text: "two"}, {Text: "three"},
	}

	result, err := s.SchedulePosts(posts, CadenceDaily, []string{"telegram"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.ScheduledCount)
	assert.Equal(t, CadenceDaily, result.ScheduleType)
	require.Len(t, result.Jobs, 3)

	for i, job := range result.Jobs {
		want := time.Date(2026, 3, 10+i, 14, 35, 0, 0, time.UTC)
		assert.Equal(t, want, job.PublishTime, "post %d", i)
		assert.Equal(t, models.PostStatusScheduled, job.Post.Status)
		require.NotNil(t, job.Post.ScheduledTime)
		assert.Equal(t, want, *job.Post.ScheduledTime)
		assert.Equal(t, []string{"telegram"}, job.Platforms)
	}
}

func TestSchedulePostsWeeklyCadence(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 5, 33, 0, time.UTC)
	s := New(&recordingDispatcher{}, time.Second)
	s.now = fixedClock(now)

	result, err := s.SchedulePosts([]*models.Post{{Text: "a"}, {Text: "b"}}, CadenceWeekly, []string{"telegram"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC), result.Jobs[0].PublishTime)
	assert.Equal(t, time.Date(2026, 3, 17, 9, 5, 0, 0, time.UTC), result.Jobs[1].PublishTime)
}

func TestSchedulePostsUnknownCadenceIsImmediate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 5, 33, 7, time.UTC)
	s := New(&recordingDispatcher{}, time.Second)
	s.now = fixedClock(now)

	result, err := s.SchedulePosts([]*models.Post{{Text: "a"}, {Text: "b"}}, "hourly", nil)
	require.NoError(t, err)

	assert.Equal(t, CadenceImmediate, result.ScheduleType)
	for _, job := range result.Jobs {
		assert.Equal(t, now, job.PublishTime)
		// Missing targets fall back to the default platform pair.
		assert.Equal(t, []string{models.PlatformInstagram, models.PlatformFacebook}, job.Platforms)
	}
}

func TestSchedulePostsEmpty(t *testing.T) {
	s := New(&recordingDispatcher{}, time.Second)
	_, err := s.SchedulePosts(nil, CadenceDaily, []string{"telegram"})
	assert.Error(t, err)
}

func TestRunPendingPublishesDueJobsOnce(t *testing.T) {
	d := &recordingDispatcher{}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := New(d, time.Second)
	s.now = fixedClock(now)

	posts := []*models.Post{{Text: "p1"}, {Text: "p2"}, {Text: "p3"}}
	_, err := s.SchedulePosts(posts, CadenceDaily, []string{"instagram", "facebook"})
	require.NoError(t, err)
	require.Equal(t, 3, s.PendingCount())

	// Only the first post is due at t0.
	s.runPending(context.Background())
	assert.Len(t, d.published(), 1)
	assert.Equal(t, 2, s.PendingCount())
	assert.Equal(t, models.PostStatusPublished, posts[0].Status)
	require.NotNil(t, posts[0].PublishedAt)
	assert.Equal(t, models.PostStatusScheduled, posts[1].Status)

	// Advance two days so everything left becomes due.
	s.now = fixedClock(now.AddDate(0, 0, 2))
	s.runPending(context.Background())
	assert.Len(t, d.published(), 3)
	assert.Equal(t, 0, s.PendingCount())
	for _, p := range posts {
		assert.Equal(t, models.PostStatusPublished, p.Status)
	}

	// Consumed jobs never fire again.
	s.runPending(context.Background())
	assert.Len(t, d.published(), 3)
}

func TestRunPendingDispatchErrorMarksFailed(t *testing.T) {
	d := &recordingDispatcher{err: errors.New("dispatch down")}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := New(d, time.Second)
	s.now = fixedClock(now)

	post := &models.Post{Text: "p1"}
	_, err := s.SchedulePosts([]*models.Post{post}, CadenceImmediate, []string{"instagram"})
	require.NoError(t, err)

	s.runPending(context.Background())

	assert.Equal(t, models.PostStatusFailed, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, 0, s.PendingCount())
}

func TestStartStopIdempotent(t *testing.T) {
	s := New(&recordingDispatcher{}, 10*time.Millisecond)

	assert.False(t, s.Running())
	s.Start()
	s.Start()
	assert.True(t, s.Running())

	s.Stop()
	assert.False(t, s.Running())
	s.Stop()

	// A second start/stop cycle works on the same instance.
	s.Start()
	assert.True(t, s.Running())
	s.Stop()
	assert.False(t, s.Running())
}

func TestLoopPublishesDueJobs(t *testing.T) {
	d := &recordingDispatcher{}
	s := New(d, 5*time.Millisecond)

	_, err := s.SchedulePosts([]*models.Post{{Text: "now"}}, CadenceImmediate, []string{"instagram"})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(d.published()) == 1
	}, time.Second, 5*time.Millisecond)
}
