package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/projectrack-api/internal/dto"
	"github.com/noah-isme/projectrack-api/internal/service"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
	"github.com/noah-isme/projectrack-api/pkg/response"
)

// ProjectHandler exposes project proposal and decision endpoints.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new handler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// Propose godoc
// @Summary Propose a project
// @Description Propose a project for a group with a chosen supervisor (leader only)
// @Tags Projects
// @Accept json
// @Produce json
// @Param payload body dto.ProposeProjectRequest true "Proposal payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /projects [post]
func (h *ProjectHandler) Propose(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ProposeProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid proposal payload"))
		return
	}

	project, err := h.service.Propose(c.Request.Context(), user, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project)
}

// MyProposals godoc
// @Summary List proposals awaiting my decision
// @Description List proposals where the caller is the chosen supervisor
// @Tags Proposals
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /projects/proposals/my [get]
func (h *ProjectHandler) MyProposals(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	proposals, err := h.service.ListProposalsForSupervisor(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, proposals, nil)
}

// Decide godoc
// @Summary Decide on a proposal
// @Description Approve or reject a proposed project (assigned supervisor only)
// @Tags Proposals
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Param payload body dto.DecideProjectRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /projects/{projectId}/status [patch]
func (h *ProjectHandler) Decide(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.DecideProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}

	project, err := h.service.Decide(c.Request.Context(), user, c.Param("projectId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, project, nil)
}

// Detail godoc
// @Summary Get project detail
// @Description Full project view with roster, supervisor and progress
// @Tags Projects
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{projectId} [get]
func (h *ProjectHandler) Detail(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), user, c.Param("projectId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, detail, nil)
}

// Report godoc
// @Summary Export milestone report
// @Description Download the project's milestone report as CSV or PDF
// @Tags Projects
// @Produce octet-stream
// @Param projectId path string true "Project ID"
// @Param format query string false "Report format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{projectId}/report [get]
func (h *ProjectHandler) Report(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := service.ReportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	report, err := h.service.ExportReport(c.Request.Context(), user, c.Param("projectId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	c.Data(http.StatusOK, report.ContentType, report.Content)
}
