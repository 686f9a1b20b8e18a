package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/projectrack-api/internal/dto"
	"github.com/noah-isme/projectrack-api/internal/models"
	"github.com/noah-isme/projectrack-api/internal/repository"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
)

type groupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, id string) (*models.Group, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ListMembers(ctx context.Context, groupID string) ([]models.UserInfo, error)
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]models.Group, error)
}

type invitationRepository interface {
	Create(ctx context.Context, inv *models.GroupInvitation) error
	FindByID(ctx context.Context, id string) (*models.GroupInvitation, error)
	FindByGroupAndInvitee(ctx context.Context, groupID, invitedUserID string) (*models.GroupInvitation, error)
	ListPendingForUser(ctx context.Context, userID string) ([]models.GroupInvitation, error)
	Accept(ctx context.Context, invitationID, groupID, invitedUserID string) error
	Reject(ctx context.Context, invitationID string) error
}

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// GroupService covers group creation, listing and the invitation workflow.
type GroupService struct {
	groups      groupRepository
	invitations invitationRepository
	users       userFinder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGroupService constructs a GroupService instance.
func NewGroupService(groups groupRepository, invitations invitationRepository, users userFinder, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &GroupService{groups: groups, invitations: invitations, users: users, validator: validate, logger: logger}
}

// Create makes the calling student leader and sole member of a new group.
func (s *GroupService) Create(ctx context.Context, caller *models.User, req dto.CreateGroupRequest) (*models.Group, error) {
	if !caller.IsStudent() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can create groups")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "group name is required")
	}

	exists, err := s.groups.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check group name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("a group with the name %q already exists", req.Name))
	}

	group := &models.Group{Name: req.Name, LeaderID: caller.ID}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create group")
	}

	leader := caller.Info()
	group.Leader = &leader
	group.Members = []models.UserInfo{leader}
	return group, nil
}

// ListMine returns groups the caller leads or belongs to, newest first.
func (s *GroupService) ListMine(ctx context.Context, caller *models.User) ([]models.Group, error) {
	groups, err := s.groups.ListForUser(ctx, caller.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	for i := range groups {
		members, err := s.groups.ListMembers(ctx, groups[i].ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group members")
		}
		groups[i].Members = members
		for j := range members {
			if members[j].ID == groups[i].LeaderID {
				groups[i].Leader = &members[j]
				break
			}
		}
	}
	return groups, nil
}

// Invite creates a pending invitation from the group leader to a student.
// Any pre-existing invitation for the pair, whatever its status, blocks a
// new one.
func (s *GroupService) Invite(ctx context.Context, caller *models.User, groupID string, req dto.InviteMemberRequest) (*models.GroupInvitation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email of the user to invite is required")
	}

	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}

	if !IsGroupLeader(caller, group) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the group leader can send invitations")
	}

	invitee, err := s.users.FindByEmail(ctx, req.InvitedUserEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("user with email %q not found", req.InvitedUserEmail))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load invitee")
	}

	if !invitee.IsStudent() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only students can be invited to groups")
	}
	if invitee.ID == caller.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "you cannot invite yourself to the group")
	}

	isMember, err := s.groups.IsMember(ctx, group.ID, invitee.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check membership")
	}
	if isMember {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("user %q is already a member of this group", req.InvitedUserEmail))
	}

	existing, err := s.invitations.FindByGroupAndInvitee(ctx, group.ID, invitee.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing invitation")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("an invitation for %q to this group already exists with status %s", req.InvitedUserEmail, existing.Status))
	}

	invitation := &models.GroupInvitation{
		GroupID:       group.ID,
		InvitedUserID: invitee.ID,
		InviterID:     caller.ID,
		Status:        models.InvitationPending,
	}
	if err := s.invitations.Create(ctx, invitation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create invitation")
	}

	// Notification delivery is out of scope; the invitation record is the
	// only signal the invitee receives.
	s.logger.Info("invitation created",
		zap.String("group_id", group.ID),
		zap.String("invited_user_id", invitee.ID))

	return invitation, nil
}

// ListPendingInvitations returns pending invitations addressed to the
// caller, newest first.
func (s *GroupService) ListPendingInvitations(ctx context.Context, caller *models.User) ([]models.GroupInvitation, error) {
	invitations, err := s.invitations.ListPendingForUser(ctx, caller.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list invitations")
	}
	return invitations, nil
}

// Respond accepts or rejects a pending invitation addressed to the caller.
// Accepting flips the status and joins the group atomically.
func (s *GroupService) Respond(ctx context.Context, caller *models.User, invitationID string, req dto.RespondInvitationRequest) (*models.GroupInvitation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "action must be ACCEPT or REJECT")
	}

	invitation, err := s.invitations.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "invitation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load invitation")
	}

	if invitation.InvitedUserID != caller.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not authorized to respond to this invitation")
	}
	if invitation.Status != models.InvitationPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("this invitation is no longer pending (current status: %s)", invitation.Status))
	}

	switch models.InvitationAction(req.Action) {
	case models.InvitationActionAccept:
		err = s.invitations.Accept(ctx, invitation.ID, invitation.GroupID, caller.ID)
		if err == nil {
			invitation.Status = models.InvitationAccepted
		}
	case models.InvitationActionReject:
		err = s.invitations.Reject(ctx, invitation.ID)
		if err == nil {
			invitation.Status = models.InvitationRejected
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "action must be ACCEPT or REJECT")
	}
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotPending) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "this invitation is no longer pending")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to respond to invitation")
	}

	return invitation, nil
}
