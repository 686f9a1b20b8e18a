package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/projectrack-api/internal/dto"
	"github.com/noah-isme/projectrack-api/internal/models"
	"github.com/noah-isme/projectrack-api/pkg/config"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
)

type submissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Submission, error)
}

type documentStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Open(filename string) (io.ReadCloser, error)
	Delete(filename string) error
}

// SubmissionService handles document uploads, listing and downloads.
// The upload flow stores the file before the submission row is inserted;
// any later failure deletes the stored file so no orphan blobs survive.
type SubmissionService struct {
	submissions submissionRepository
	projects    projectFinder
	groups      groupRepository
	storage     documentStorage
	uploads     config.UploadsConfig
	logger      *zap.Logger
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(submissions submissionRepository, projects projectFinder, groups groupRepository, store documentStorage, uploads config.UploadsConfig, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{submissions: submissions, projects: projects, groups: groups, storage: store, uploads: uploads, logger: logger}
}

// Submit validates and stores an uploaded document for a workable project.
func (s *SubmissionService) Submit(ctx context.Context, caller *models.User, projectID string, upload dto.FileUpload, req dto.SubmitDocumentRequest) (*models.Submission, error) {
	if upload.Reader == nil || upload.FileName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no file uploaded")
	}
	if !s.allowedType(upload.ContentType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file type %s is not allowed", upload.ContentType))
	}
	if s.uploads.MaxFileSizeBytes > 0 && upload.Size > s.uploads.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the maximum allowed size of %d bytes", s.uploads.MaxFileSizeBytes))
	}

	storedName := uuid.NewString() + filepath.Ext(upload.FileName)
	if _, err := s.storage.SaveStream(storedName, upload.Reader); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store uploaded file")
	}

	// From here on every failure must remove the stored blob.
	project, group, err := s.loadSubmissionContext(ctx, projectID)
	if err != nil {
		s.cleanup(storedName)
		return nil, err
	}
	if !IsGroupMember(caller, group) {
		s.cleanup(storedName)
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not a member of the group that owns this project")
	}
	if !IsProjectWorkable(project) {
		s.cleanup(storedName)
		return nil, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("documents can only be submitted to approved/active projects (current status: %s)", project.Status))
	}

	submission := &models.Submission{
		ProjectID:   project.ID,
		UploaderID:  caller.ID,
		FileName:    upload.FileName,
		FilePath:    storedName,
		FileType:    upload.ContentType,
		Description: req.Description,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		s.cleanup(storedName)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record submission")
	}

	s.logger.Info("document submitted",
		zap.String("submission_id", submission.ID),
		zap.String("project_id", project.ID),
		zap.String("uploader_id", caller.ID))
	return submission, nil
}

// List returns all submissions for a project, newest first. Group members and
// the supervisor may view them.
func (s *SubmissionService) List(ctx context.Context, caller *models.User, projectID string) ([]models.Submission, error) {
	project, group, err := s.loadSubmissionContext(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !IsProjectParticipant(caller, project, group) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not authorized to view these submissions")
	}

	submissions, err := s.submissions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	return submissions, nil
}

// Download opens the stored file behind a submission for streaming to the
// caller. Authorization matches List.
func (s *SubmissionService) Download(ctx context.Context, caller *models.User, submissionID string) (*models.Submission, io.ReadCloser, error) {
	submission, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}

	project, group, err := s.loadSubmissionContext(ctx, submission.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !IsProjectParticipant(caller, project, group) {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "you are not authorized to download this document")
	}

	reader, err := s.storage.Open(submission.FilePath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "stored file is missing")
	}
	return submission, reader, nil
}

func (s *SubmissionService) loadSubmissionContext(ctx context.Context, projectID string) (*models.Project, *models.Group, error) {
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

func (s *SubmissionService) allowedType(contentType string) bool {
	if len(s.uploads.AllowedMIMEs) == 0 {
		return strings.EqualFold(contentType, "application/pdf")
	}
	for _, allowed := range s.uploads.AllowedMIMEs {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}

func (s *SubmissionService) cleanup(storedName string) {
	if err := s.storage.Delete(storedName); err != nil {
		s.logger.Warn("failed to remove rejected upload", zap.String("file", storedName), zap.Error(err))
	}
}
