package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/projectrack-api/internal/dto"
	"github.com/noah-isme/projectrack-api/internal/models"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
)

type milestoneRepository interface {
	Create(ctx context.Context, milestone *models.Milestone) error
	FindByID(ctx context.Context, id string) (*models.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Milestone, error)
	Update(ctx context.Context, milestone *models.Milestone) error
}

type projectFinder interface {
	FindByID(ctx context.Context, id string) (*models.Project, error)
}

// MilestoneService covers milestone creation and mutation, gated on project
// state and group membership. The supervisor is deliberately excluded from
// milestone mutation and listing.
type MilestoneService struct {
	milestones milestoneRepository
	projects   projectFinder
	groups     groupRepository
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewMilestoneService constructs a MilestoneService instance.
func NewMilestoneService(milestones milestoneRepository, projects projectFinder, groups groupRepository, validate *validator.Validate, logger *zap.Logger) *MilestoneService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MilestoneService{milestones: milestones, projects: projects, groups: groups, validator: validate, logger: logger}
}

// Add creates a milestone on a workable project for a group member.
func (s *MilestoneService) Add(ctx context.Context, caller *models.User, projectID string, req dto.CreateMilestoneRequest) (*models.Milestone, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "milestone title is required")
	}

	project, group, err := s.loadWorkContext(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !IsGroupMember(caller, group) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not a member of the group that owns this project")
	}
	if !IsProjectWorkable(project) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("milestones can only be added to approved/active projects (current status: %s)", project.Status))
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	milestone := &models.Milestone{
		ProjectID:           project.ID,
		Title:               req.Title,
		Description:         req.Description,
		DueDate:             dueDate,
		LastUpdatedByUserID: &caller.ID,
	}
	if err := s.milestones.Create(ctx, milestone); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create milestone")
	}
	return milestone, nil
}

// Update applies a partial patch to a milestone. An empty-string title keeps
// the stored value; an empty-string due date clears it. Any accepted change
// stamps the caller as last updater.
func (s *MilestoneService) Update(ctx context.Context, caller *models.User, milestoneID string, req dto.UpdateMilestoneRequest) (*models.Milestone, error) {
	milestone, err := s.milestones.FindByID(ctx, milestoneID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "milestone not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load milestone")
	}

	project, group, err := s.loadWorkContext(ctx, milestone.ProjectID)
	if err != nil {
		return nil, err
	}
	if !IsGroupMember(caller, group) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not authorized to update this milestone")
	}
	if !IsProjectWorkable(project) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("milestones can only be updated for approved/active projects (current status: %s)", project.Status))
	}

	changed := false
	if req.Title != nil {
		if *req.Title != "" {
			milestone.Title = *req.Title
		}
		changed = true
	}
	if req.Description != nil {
		milestone.Description = req.Description
		changed = true
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			milestone.DueDate = nil
		} else {
			dueDate, err := parseDueDate(req.DueDate)
			if err != nil {
				return nil, err
			}
			milestone.DueDate = dueDate
		}
		changed = true
	}
	if req.IsCompleted != nil {
		milestone.IsCompleted = *req.IsCompleted
		changed = true
	}

	if !changed {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no valid fields provided for update")
	}

	milestone.LastUpdatedByUserID = &caller.ID
	if err := s.milestones.Update(ctx, milestone); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update milestone")
	}
	return milestone, nil
}

// List returns the project's milestones in creation order for group members.
func (s *MilestoneService) List(ctx context.Context, caller *models.User, projectID string) ([]models.Milestone, error) {
	_, group, err := s.loadWorkContext(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !IsGroupMember(caller, group) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not authorized to view these milestones")
	}

	milestones, err := s.milestones.ListByProject(ctx, projectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list milestones")
	}
	return milestones, nil
}

func (s *MilestoneService) loadWorkContext(ctx context.Context, projectID string) (*models.Project, *models.Group, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load project")
	}
	group, err := s.groups.FindByID(ctx, project.GroupID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}
	members, err := s.groups.ListMembers(ctx, group.ID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group members")
	}
	group.Members = members
	return project, group, nil
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, "invalid due date format, use a valid date string")
}
