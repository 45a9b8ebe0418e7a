package service

import (
	"context"
	"errors"
	"strings"

	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
)

// PostService enforces the create/edit/delete flows for posts:
// resolve target, consult policy, validate input, then persist.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

// CreatePostInput carries the form fields for a new post. The author is
// always the acting user; it is never taken from the form.
type CreatePostInput struct {
	ActorID uint
	Text    string
	GroupID *uint
	Image   string
}

// UpdatePostInput carries the form fields for editing an existing post.
type UpdatePostInput struct {
	ActorID uint
	PostID  uint
	Text    string
	GroupID *uint
	Image   string
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{postRepo: postRepo, groupRepo: groupRepo}
}

// CreatePost validates and persists a new post and returns it with its
// feed-visible identity (author and group preloaded, counts computed).
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := policy.CanCreatePost(in.ActorID); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in.Text, in.GroupID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:    in.Text,
		UserID:  in.ActorID,
		GroupID: in.GroupID,
		Image:   in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost edits an existing post. Only the author may edit; the author and
// creation time are immutable.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModifyPost(in.ActorID, post); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in.Text, in.GroupID); err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	if in.Image != "" {
		post.Image = in.Image
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post. Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := policy.CanModifyPost(actorID, post); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// GetPost returns the post with its author, group and comment count.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) validate(ctx context.Context, text string, groupID *uint) error {
	fields := map[string]string{}
	if strings.TrimSpace(text) == "" {
		fields["text"] = "Text is required"
	}
	if groupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				fields["group"] = "Unknown group"
			} else {
				return err
			}
		}
	}
	if len(fields) > 0 {
		return models.NewFieldErrors(fields)
	}
	return nil
}
