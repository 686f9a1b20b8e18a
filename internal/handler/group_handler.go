package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/projectrack-api/internal/dto"
	"github.com/noah-isme/projectrack-api/internal/service"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
	"github.com/noah-isme/projectrack-api/pkg/response"
)

// GroupHandler exposes group and invitation endpoints.
type GroupHandler struct {
	service *service.GroupService
}

// NewGroupHandler creates a new handler.
func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{service: svc}
}

// Create godoc
// @Summary Create a group
// @Description Create a new group with the caller as leader
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body dto.CreateGroupRequest true "Group payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid group payload"))
		return
	}

	group, err := h.service.Create(c.Request.Context(), user, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, group)
}

// ListMine godoc
// @Summary List my groups
// @Description List all groups the caller leads or belongs to
// @Tags Groups
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /groups [get]
func (h *GroupHandler) ListMine(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	groups, err := h.service.ListMine(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, groups, nil)
}

// Invite godoc
// @Summary Invite a student
// @Description Invite a student to a group by email (leader only)
// @Tags Groups
// @Accept json
// @Produce json
// @Param groupId path string true "Group ID"
// @Param payload body dto.InviteMemberRequest true "Invitation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /groups/{groupId}/invitations [post]
func (h *GroupHandler) Invite(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid invitation payload"))
		return
	}

	invitation, err := h.service.Invite(c.Request.Context(), user, c.Param("groupId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, invitation)
}

// PendingInvitations godoc
// @Summary List pending invitations
// @Description List the caller's pending group invitations
// @Tags Invitations
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /groups/invitations/pending [get]
func (h *GroupHandler) PendingInvitations(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	invitations, err := h.service.ListPendingInvitations(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, invitations, nil)
}

// Respond godoc
// @Summary Respond to an invitation
// @Description Accept or reject a pending invitation (recipient only)
// @Tags Invitations
// @Accept json
// @Produce json
// @Param invitationId path string true "Invitation ID"
// @Param payload body dto.RespondInvitationRequest true "Response payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /groups/invitations/{invitationId}/respond [patch]
func (h *GroupHandler) Respond(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid response payload"))
		return
	}

	invitation, err := h.service.Respond(c.Request.Context(), user, c.Param("invitationId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, invitation, nil)
}
