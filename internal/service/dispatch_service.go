package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"smmagent/internal/models"
	"smmagent/internal/platforms"
)

// DispatchService fans one logical publish action out to the registered
// platform adapters and aggregates per-platform outcomes.
type DispatchService interface {
	Publish(ctx context.Context, post *models.Post, targets []string) (map[string]models.PublishOutcome, error)
	GetAnalytics(ctx context.Context, platform, postID string) (map[string]interface{}, error)
	DeletePost(ctx context.Context, platform, postID string) error
	UpdatePost(ctx context.Context, platform, postID, newText string) error
	TestConnection(ctx context.Context, platform string) bool
	SupportedPlatforms() []string
}

type dispatchService struct {
	adapters map[string]platforms.Adapter
}

func NewDispatchService(adapters map[string]platforms.Adapter) DispatchService {
	return &dispatchService{adapters: adapters}
}

func (s *dispatchService) Publish(ctx context.Context, post *models.Post, targets []string) (map[string]models.PublishOutcome, error) {
	var err error

	if post == nil {
		err = errors.New("post is nil")
		slog.Info(err.Error())
		return nil, err
	}
	if post.Text == "" {
		err = errors.New("post text cannot be empty")
		slog.Info(err.Error())
		return nil, err
	}
	if len(targets) == 0 {
		err = errors.New("no target platforms given")
		slog.Info(err.Error())
		return nil, err
	}

	results := make(map[string]models.PublishOutcome, len(targets))

	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 10) // concurrency limit

	for _, name := range targets {
		adapter, ok := s.adapters[name]
		if !ok {
			mu.Lock()
			results[name] = models.PublishOutcome{
				Success: false,
				Error:   fmt.Sprintf("platform %s is not supported", name),
			}
			mu.Unlock()
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(name string, adapter platforms.Adapter) {
			defer wg.Done()
			defer func() { <-semaphore }()

			res, err := adapter.Publish(ctx, post)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Info(err.Error())
				results[name] = models.PublishOutcome{Success: false, Error: err.Error()}
				return
			}
			results[name] = models.PublishOutcome{Success: true, PostID: res.PostID, URL: res.URL}
		}(name, adapter)
	}

	wg.Wait()
	return results, nil
}

func (s *dispatchService) GetAnalytics(ctx context.Context, platform, postID string) (map[string]interface{}, error) {
	adapter, ok := s.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("platform %s is not supported", platform)
	}
	return adapter.GetAnalytics(ctx, postID)
}

func (s *dispatchService) DeletePost(ctx context.Context, platform, postID string) error {
	adapter, ok := s.adapters[platform]
	if !ok {
		return fmt.Errorf("platform %s is not supported", platform)
	}
	return adapter.DeletePost(ctx, postID)
}

func (s *dispatchService) UpdatePost(ctx context.Context, platform, postID, newText string) error {
	adapter, ok := s.adapters[platform]
	if !ok {
		return fmt.Errorf("platform %s is not supported", platform)
	}
	return adapter.UpdatePost(ctx, postID, newText)
}

func (s *dispatchService) TestConnection(ctx context.Context, platform string) bool {
	adapter, ok := s.adapters[platform]
	if !ok {
		return false
	}
	return platforms.TestConnection(ctx, adapter)
}

func (s *dispatchService) SupportedPlatforms() []string {
	names := make([]string, 0, len(s.adapters))
	for name := range s.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
