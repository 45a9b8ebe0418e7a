package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
)

// FollowService manages follow edges between users and authors.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a new follow service.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow subscribes the actor to the named author. Repeat follows and
// self-follows are silent no-ops; an unknown author is a not-found fault.
func (s *FollowService) Follow(ctx context.Context, actorID uint, authorUsername string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}

	actionable, err := policy.CanFollow(actorID, author.ID)
	if err != nil {
		return nil, err
	}
	if !actionable {
		return author, nil
	}

	if err := s.followRepo.Follow(ctx, actorID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

// Unfollow removes the actor's subscription to the named author. Unfollowing
// an author the actor does not follow is a not-found fault.
func (s *FollowService) Unfollow(ctx context.Context, actorID uint, authorUsername string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}

	if err := policy.CanUnfollow(actorID); err != nil {
		return nil, err
	}

	if err := s.followRepo.Unfollow(ctx, actorID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

// Following returns the authors the user currently follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.Following(ctx, userID)
}
