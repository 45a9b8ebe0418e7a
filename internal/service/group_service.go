package service

import (
	"context"
	"errors"
	"strings"

	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
	"quill/internal/validation"
)

// GroupService handles group creation and listing. Groups are shared and
// unowned; the slug is assigned at creation and never changes.
type GroupService struct {
	groupRepo repository.GroupRepository
}

// CreateGroupInput carries the form fields for a new group.
type CreateGroupInput struct {
	ActorID     uint
	Title       string
	Slug        string
	Description string
}

// NewGroupService creates a new group service.
func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup validates and persists a new group.
func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	if err := policy.CanCreateGroup(in.ActorID); err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "Title is required"
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	switch {
	case slug == "":
		fields["slug"] = "Slug is required"
	default:
		if err := validation.ValidateGroupSlug(slug); err != nil {
			fields["slug"] = err.Error()
			break
		}
		if _, err := s.groupRepo.GetBySlug(ctx, slug); err == nil {
			fields["slug"] = "Slug is already in use"
		} else {
			var appErr *models.AppError
			if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
				return nil, err
			}
		}
	}
	if len(fields) > 0 {
		return nil, models.NewFieldErrors(fields)
	}

	group := &models.Group{
		Title:       in.Title,
		Slug:        slug,
		Description: in.Description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns all groups ordered by title.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}
