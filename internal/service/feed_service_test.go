package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"quill/internal/cache"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewWithClient(client), mr
}

func somePosts(n int) []*models.Post {
	posts := make([]*models.Post, n)
	for i := range posts {
		posts[i] = &models.Post{ID: uint(i + 1), Text: fmt.Sprintf("post %d", i+1)}
	}
	return posts
}

func TestFeedService_HomePage_FirstPageCached(t *testing.T) {
	c, _ := testCache(t)

	listCalls := 0
	repo := noopPostRepo()
	repo.countAllFn = func(_ context.Context) (int64, error) { return 3, nil }
	repo.listFn = func(_ context.Context, limit, offset int) ([]*models.Post, error) {
		listCalls++
		assert.Equal(t, 10, limit)
		assert.Equal(t, 0, offset)
		return somePosts(3), nil
	}

	svc := NewFeedService(repo, noopGroupRepo(), noopUserRepo(), noopFollowRepo(), c, 10, 20*time.Second)
	ctx := context.Background()

	first, err := svc.HomePage(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Posts, 3)
	assert.Equal(t, 1, listCalls)

	// second request is served from cache, even though new posts exist
	repo.countAllFn = func(_ context.Context) (int64, error) { return 4, nil }
	second, err := svc.HomePage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, listCalls, "store must not be queried on a cache hit")
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, len(first.Posts), len(second.Posts))
}

func TestFeedService_HomePage_CacheExpiry(t *testing.T) {
	c, mr := testCache(t)

	repo := noopPostRepo()
	repo.countAllFn = func(_ context.Context) (int64, error) { return 1, nil }
	listCalls := 0
	repo.listFn = func(_ context.Context, _, _ int) ([]*models.Post, error) {
		listCalls++
		return somePosts(1), nil
	}

	svc := NewFeedService(repo, noopGroupRepo(), noopUserRepo(), noopFollowRepo(), c, 10, 20*time.Second)
	ctx := context.Background()

	_, err := svc.HomePage(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, listCalls)

	mr.FastForward(21 * time.Second)

	_, err = svc.HomePage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls, "expired entry must be recomputed")
}

func TestFeedService_HomePage_ExplicitInvalidation(t *testing.T) {
	c, _ := testCache(t)

	repo := noopPostRepo()
	repo.countAllFn = func(_ context.Context) (int64, error) { return 1, nil }
	listCalls := 0
	repo.listFn = func(_ context.Context, _, _ int) ([]*models.Post, error) {
		listCalls++
		return somePosts(1), nil
	}

	svc := NewFeedService(repo, noopGroupRepo(), noopUserRepo(), noopFollowRepo(), c, 10, time.Minute)
	ctx := context.Background()

	_, err := svc.HomePage(ctx, 1)
	require.NoError(t, err)
	svc.InvalidateHome(ctx)
	_, err = svc.HomePage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls)
}

func TestFeedService_HomePage_DeeperPagesNotCached(t *testing.T) {
	c, _ := testCache(t)

	repo := noopPostRepo()
	repo.countAllFn = func(_ context.Context) (int64, error) { return 25, nil }
	listCalls := 0
	repo.listFn = func(_ context.Context, limit, offset int) ([]*models.Post, error) {
		listCalls++
		assert.Equal(t, 10, offset)
		return somePosts(10), nil
	}

	svc := NewFeedService(repo, noopGroupRepo(), noopUserRepo(), noopFollowRepo(), c, 10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		page, err := svc.HomePage(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Number)
		assert.True(t, page.HasNext)
		assert.True(t, page.HasPrev)
	}
	assert.Equal(t, 2, listCalls, "page 2 always hits the store")
}

func TestFeedService_Paginate_ClampsBeyondLast(t *testing.T) {
	repo := noopPostRepo()
	repo.countAllFn = func(_ context.Context) (int64, error) { return 13, nil }
	var gotOffset int
	repo.listFn = func(_ context.Context, limit, offset int) ([]*models.Post, error) {
		gotOffset = offset
		return somePosts(3), nil
	}

	svc := NewFeedService(repo, noopGroupRepo(), noopUserRepo(), noopFollowRepo(), cache.NewWithClient(nil), 10, time.Minute)

	page, err := svc.HomePage(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 2, page.PageCount)
	assert.Equal(t, 10, gotOffset)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestFeedService_Paginate_EmptyFeed(t *testing.T) {
	svc := NewFeedService(noopPostRepo(), noopGroupRepo(), noopUserRepo(), noopFollowRepo(), cache.NewWithClient(nil), 10, 0)

	page, err := svc.HomePage(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, page.Posts)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.PageCount)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestFeedService_GroupPage(t *testing.T) {
	groups := noopGroupRepo()
	groups.getBySlugFn = func(_ context.Context, slug string) (*models.Group, error) {
		if slug != "cats" {
			return nil, models.NewNotFoundError("group", slug)
		}
		return &models.Group{ID: 4, Title: "Cats", Slug: "cats"}, nil
	}

	posts := noopPostRepo()
	posts.countByGroupFn = func(_ context.Context, groupID uint) (int64, error) {
		assert.Equal(t, uint(4), groupID)
		return 2, nil
	}
	posts.listByGroupFn = func(_ context.Context, groupID uint, _, _ int) ([]*models.Post, error) {
		return somePosts(2), nil
	}

	svc := NewFeedService(posts, groups, noopUserRepo(), noopFollowRepo(), cache.NewWithClient(nil), 10, 0)
	ctx := context.Background()

	group, page, err := svc.GroupPage(ctx, "cats", 1)
	require.NoError(t, err)
	assert.Equal(t, "Cats", group.Title)
	assert.Len(t, page.Posts, 2)

	_, _, err = svc.GroupPage(ctx, "nope", 1)
	assertCode(t, err, models.CodeNotFound)
}

func TestFeedService_ProfilePage_FollowingFlag(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 7, Username: username}, nil
	}

	follows := noopFollowRepo()
	follows.existsFn = func(_ context.Context, userID, authorID uint) (bool, error) {
		return userID == 3 && authorID == 7, nil
	}

	svc := NewFeedService(noopPostRepo(), noopGroupRepo(), users, follows, cache.NewWithClient(nil), 10, 0)
	ctx := context.Background()

	_, _, following, err := svc.ProfilePage(ctx, "author", 3, 1)
	require.NoError(t, err)
	assert.True(t, following)

	// anonymous viewer
	_, _, following, err = svc.ProfilePage(ctx, "author", 0, 1)
	require.NoError(t, err)
	assert.False(t, following)

	// own profile never reports following
	_, _, following, err = svc.ProfilePage(ctx, "author", 7, 1)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFeedService_FollowPage_RequiresAuth(t *testing.T) {
	svc := NewFeedService(noopPostRepo(), noopGroupRepo(), noopUserRepo(), noopFollowRepo(), cache.NewWithClient(nil), 10, 0)

	_, err := svc.FollowPage(context.Background(), 0, 1)
	assertCode(t, err, models.CodeAuthRequired)

	page, err := svc.FollowPage(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}
