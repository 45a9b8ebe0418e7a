package service

import (
	"context"
	"time"

	"quill/internal/cache"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
)

// FeedService composes the four feed kinds as paginated pages of posts.
// Every feed is a pure query over the store except the home feed's first
// page, which is served cache-aside with a bounded TTL.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	cache      *cache.Cache
	pageSize   int
	homeTTL    time.Duration
}

// NewFeedService creates a new feed service.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	c *cache.Cache,
	pageSize int,
	homeTTL time.Duration,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		cache:      c,
		pageSize:   pageSize,
		homeTTL:    homeTTL,
	}
}

// HomePage returns the requested page of the global feed. Page 1 is cached
// under a fixed key: creating a post does not invalidate it, so its content
// is stable until the TTL elapses or InvalidateHome is called explicitly.
func (s *FeedService) HomePage(ctx context.Context, number int) (*Page, error) {
	if number <= 1 {
		var page Page
		hit := true
		err := s.cache.Aside(ctx, cache.HomeFeedKey, &page, s.homeTTL, func() error {
			hit = false
			fresh, fetchErr := s.paginate(ctx, 1, s.postRepo.CountAll, s.postRepo.List)
			if fetchErr != nil {
				return fetchErr
			}
			page = *fresh
			return nil
		})
		if err != nil {
			return nil, err
		}
		if hit {
			middleware.FeedCacheHits.Inc()
		} else {
			middleware.FeedCacheMisses.Inc()
		}
		return &page, nil
	}

	return s.paginate(ctx, number, s.postRepo.CountAll, s.postRepo.List)
}

// InvalidateHome drops the cached first page of the global feed.
func (s *FeedService) InvalidateHome(ctx context.Context) {
	s.cache.Invalidate(ctx, cache.HomeFeedKey)
}

// GroupPage resolves the group by slug and returns the requested page of its
// posts. An unknown slug is a not-found fault.
func (s *FeedService) GroupPage(ctx context.Context, slug string, number int) (*models.Group, *Page, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	page, err := s.paginate(ctx, number,
		func(ctx context.Context) (int64, error) { return s.postRepo.CountByGroup(ctx, group.ID) },
		func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
		})
	if err != nil {
		return nil, nil, err
	}
	return group, page, nil
}

// ProfilePage resolves the author by username and returns their posts along
// with whether the viewer currently follows them. Following is always false
// for anonymous viewers and for an author viewing their own profile.
func (s *FeedService) ProfilePage(ctx context.Context, username string, viewerID uint, number int) (*models.User, *Page, bool, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, false, err
	}

	page, err := s.paginate(ctx, number,
		func(ctx context.Context) (int64, error) { return s.postRepo.CountByAuthor(ctx, author.ID) },
		func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
		})
	if err != nil {
		return nil, nil, false, err
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, nil, false, err
		}
	}
	return author, page, following, nil
}

// FollowPage returns posts from the authors the viewer follows. It requires
// an authenticated viewer; a viewer following nobody gets an empty page.
func (s *FeedService) FollowPage(ctx context.Context, viewerID uint, number int) (*Page, error) {
	if err := policy.CanViewFollowFeed(viewerID); err != nil {
		return nil, err
	}

	return s.paginate(ctx, number,
		func(ctx context.Context) (int64, error) { return s.postRepo.CountFollowed(ctx, viewerID) },
		func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListFollowed(ctx, viewerID, limit, offset)
		})
}

// paginate counts the feed, clamps the requested page to the last available
// one, and fetches that page's slice.
func (s *FeedService) paginate(
	ctx context.Context,
	number int,
	count func(context.Context) (int64, error),
	list func(ctx context.Context, limit, offset int) ([]*models.Post, error),
) (*Page, error) {
	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	pages := pageCount(total, s.pageSize)
	number = clampPage(number, pages)

	posts, err := list(ctx, s.pageSize, (number-1)*s.pageSize)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &Page{
		Posts:     posts,
		Number:    number,
		PageCount: pages,
		Total:     total,
		HasNext:   number < pages,
		HasPrev:   number > 1,
	}, nil
}
