package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/distory/internal/client/api"
	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/client/store"
	"github.com/dmitrijs2005/distory/internal/logging"
)

// StoryService defines story browsing, submission and bookmarking.
// Reads fall back to the local cache when the network is down; writes
// fall back to the pending table.
type StoryService interface {
	List(ctx context.Context, page, size int, withLocation bool) ([]models.Story, bool, error)
	Get(ctx context.Context, id string) (*models.Story, bool, error)
	Add(ctx context.Context, story models.Story) (*models.PendingStory, bool, error)
	ToggleBookmark(ctx context.Context, story models.Story) (bool, error)
	IsBookmarked(ctx context.Context, id string) bool
	Bookmarks(ctx context.Context) ([]models.Bookmark, error)
	PendingCount(ctx context.Context) (int, error)
}

type storyService struct {
	client api.Client
	auth   AuthService
	store  *store.Store
	log    logging.Logger
}

// NewStoryService constructs a StoryService.
func NewStoryService(client api.Client, auth AuthService, st *store.Store, log logging.Logger) StoryService {
	return &storyService{client: client, auth: auth, store: st, log: log}
}

// List fetches stories from the API and refreshes the local cache. When
// the server is unreachable it serves the cached list instead; the second
// return value reports whether the result came from cache. Cache
// population failures never fail the read.
func (s *storyService) List(ctx context.Context, page, size int, withLocation bool) ([]models.Story, bool, error) {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, false, err
	}

	list, err := s.client.GetStories(ctx, token, page, size, withLocation)
	if err == nil {
		if cacheErr := s.store.CacheStories(ctx, list); cacheErr != nil {
			s.log.Warn(ctx, "story cache population failed", "error", cacheErr)
		}
		return list, false, nil
	}

	s.log.Warn(ctx, "story fetch failed, falling back to cache", "error", err)

	cached, cacheErr := s.store.GetCachedStories(ctx)
	if cacheErr != nil {
		return nil, false, fmt.Errorf("fetch failed and cache unavailable: %w", err)
	}
	return cached, true, nil
}

// Get fetches one story, serving the cached copy when the network fails.
func (s *storyService) Get(ctx context.Context, id string) (*models.Story, bool, error) {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, false, err
	}

	story, err := s.client.GetStory(ctx, token, id)
	if err == nil {
		return story, false, nil
	}

	cached, cacheErr := s.store.GetCachedStory(ctx, id)
	if cacheErr != nil {
		return nil, false, fmt.Errorf("fetch failed and no cached copy: %w", err)
	}
	return cached, true, nil
}

// Add submits a story to the API. When the server is unreachable the
// story is saved to the pending table instead and will be uploaded on the
// next sync pass; the second return value reports offline capture. Local
// saving always succeeds or surfaces a real error — the user must know
// whether the story was kept.
func (s *storyService) Add(ctx context.Context, story models.Story) (*models.PendingStory, bool, error) {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, false, err
	}

	p := &models.PendingStory{Story: story, Status: models.PendingStatus}
	if err := s.client.AddStory(ctx, token, p); err == nil {
		return p, false, nil
	} else {
		s.log.Warn(ctx, "story submit failed, saving offline", "error", err)
	}

	saved, err := s.store.SaveOfflineStory(ctx, story)
	if err != nil {
		return nil, false, fmt.Errorf("offline saving error: %w", err)
	}
	return saved, true, nil
}

// ToggleBookmark adds or removes a bookmark for the story and returns the
// new state. Two rapid toggles race as last-write-wins; there is no
// cross-operation transaction by design.
func (s *storyService) ToggleBookmark(ctx context.Context, story models.Story) (bool, error) {
	if s.store.IsBookmarked(ctx, story.ID) {
		if err := s.store.RemoveBookmark(ctx, story.ID); err != nil {
			return true, fmt.Errorf("error removing bookmark: %w", err)
		}
		return false, nil
	}

	if err := s.store.BookmarkStory(ctx, story); err != nil {
		return false, fmt.Errorf("error saving bookmark: %w", err)
	}
	return true, nil
}

func (s *storyService) IsBookmarked(ctx context.Context, id string) bool {
	return s.store.IsBookmarked(ctx, id)
}

func (s *storyService) Bookmarks(ctx context.Context) ([]models.Bookmark, error) {
	return s.store.GetBookmarkedStories(ctx)
}

// PendingCount reports how many stories await upload for this device.
func (s *storyService) PendingCount(ctx context.Context) (int, error) {
	list, err := s.store.GetOfflineStories(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}
