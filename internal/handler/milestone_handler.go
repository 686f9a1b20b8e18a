package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/projectrack-api/internal/dto"
	"github.com/noah-isme/projectrack-api/internal/service"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
	"github.com/noah-isme/projectrack-api/pkg/response"
)

// MilestoneHandler exposes milestone endpoints.
type MilestoneHandler struct {
	service *service.MilestoneService
}

// NewMilestoneHandler creates a new handler.
func NewMilestoneHandler(svc *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{service: svc}
}

// Add godoc
// @Summary Add a milestone
// @Description Add a milestone to an approved/active project (group members only)
// @Tags Milestones
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Param payload body dto.CreateMilestoneRequest true "Milestone payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{projectId}/milestones [post]
func (h *MilestoneHandler) Add(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid milestone payload"))
		return
	}

	milestone, err := h.service.Add(c.Request.Context(), user, c.Param("projectId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, milestone)
}

// List godoc
// @Summary List milestones
// @Description List a project's milestones in creation order (group members only)
// @Tags Milestones
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{projectId}/milestones [get]
func (h *MilestoneHandler) List(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	milestones, err := h.service.List(c.Request.Context(), user, c.Param("projectId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, milestones, nil)
}

// Update godoc
// @Summary Update a milestone
// @Description Partially update a milestone (group members only)
// @Tags Milestones
// @Accept json
// @Produce json
// @Param milestoneId path string true "Milestone ID"
// @Param payload body dto.UpdateMilestoneRequest true "Milestone patch"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /milestones/{milestoneId} [patch]
func (h *MilestoneHandler) Update(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid milestone patch"))
		return
	}

	milestone, err := h.service.Update(c.Request.Context(), user, c.Param("milestoneId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, milestone, nil)
}
