package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/projectrack-api/internal/dto"
	"github.com/noah-isme/projectrack-api/internal/service"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
	"github.com/noah-isme/projectrack-api/pkg/response"
)

// SubmissionHandler exposes document submission endpoints.
type SubmissionHandler struct {
	service *service.SubmissionService
}

// NewSubmissionHandler creates a new handler.
func NewSubmissionHandler(svc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: svc}
}

// Submit godoc
// @Summary Submit a document
// @Description Upload a PDF document to an approved/active project (group members only)
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Param projectId path string true "Project ID"
// @Param projectDocument formData file true "Document file"
// @Param description formData string false "Description"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submissions/project/{projectId} [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("projectDocument")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no file uploaded"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
		return
	}
	defer file.Close() //nolint:errcheck

	var req dto.SubmitDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission form"))
		return
	}

	upload := dto.FileUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}

	submission, err := h.service.Submit(c.Request.Context(), user, c.Param("projectId"), upload, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, submission)
}

// List godoc
// @Summary List submissions
// @Description List a project's submissions, newest first (members and supervisor)
// @Tags Submissions
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submissions/project/{projectId} [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	submissions, err := h.service.List(c.Request.Context(), user, c.Param("projectId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, submissions, nil)
}

// Download godoc
// @Summary Download a submitted document
// @Description Stream the stored file behind a submission (members and supervisor)
// @Tags Submissions
// @Produce octet-stream
// @Param submissionId path string true "Submission ID"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submissions/{submissionId}/download [get]
func (h *SubmissionHandler) Download(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	submission, reader, err := h.service.Download(c.Request.Context(), user, c.Param("submissionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer reader.Close() //nolint:errcheck

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", submission.FileName))
	c.Header("Content-Type", submission.FileType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
