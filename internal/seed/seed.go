package seed

import (
	"fmt"
	"log"

	"quill/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo users, groups, posts, comments and
// follows. It is wired into dev bootstrap and never runs in production.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumGroups <= 0 {
		opts.NumGroups = 3
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 50
	}

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clearing data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups; i++ {
		group, err := f.CreateGroup()
		if err != nil {
			return fmt.Errorf("creating group: %w", err)
		}
		groups = append(groups, group)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rand.Intn(len(users))]
		var group *models.Group
		// roughly a third of posts stay ungrouped
		if f.rand.Intn(3) != 0 {
			group = groups[f.rand.Intn(len(groups))]
		}
		post, err := f.CreatePost(author, group)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}

	// a couple of comments per post on average
	for i := 0; i < opts.NumPosts*2; i++ {
		commenter := users[f.rand.Intn(len(users))]
		post := posts[f.rand.Intn(len(posts))]
		if _, err := f.CreateComment(commenter, post); err != nil {
			return fmt.Errorf("creating comment: %w", err)
		}
	}

	// sparse follow mesh, skipping self and duplicates
	seen := make(map[[2]uint]bool)
	for i := 0; i < opts.NumUsers*3; i++ {
		follower := users[f.rand.Intn(len(users))]
		author := users[f.rand.Intn(len(users))]
		key := [2]uint{follower.ID, author.ID}
		if follower.ID == author.ID || seen[key] {
			continue
		}
		seen[key] = true
		if _, err := f.CreateFollow(follower, author); err != nil {
			return fmt.Errorf("creating follow: %w", err)
		}
	}

	log.Printf("seeded %d users, %d groups, %d posts", len(users), len(groups), len(posts))
	return nil
}

func clearData(db *gorm.DB) error {
	for _, table := range []string{"comments", "follows", "posts", "groups", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
