package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
)

// CommentService handles adding and listing comments. There is no edit or
// delete path for comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// AddCommentInput carries the form fields for a new comment.
type AddCommentInput struct {
	ActorID uint
	PostID  uint
	Text    string
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// AddComment resolves the post, checks policy, validates and persists.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	if err := policy.CanComment(in.ActorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewFieldErrors(map[string]string{"text": "Text is required"})
	}

	comment := &models.Comment{
		Text:   in.Text,
		PostID: in.PostID,
		UserID: in.ActorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
