package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/projectrack-api/internal/dto"
	"github.com/noah-isme/projectrack-api/internal/models"
	"github.com/noah-isme/projectrack-api/pkg/config"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
)

type mockSubmissionRepo struct {
	submission  *models.Submission
	submissions []models.Submission
	createErr   error
	created     *models.Submission
}

func (m *mockSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	if m.createErr != nil {
		return m.createErr
	}
	submission.ID = "new-submission"
	m.created = submission
	return nil
}

func (m *mockSubmissionRepo) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	if m.submission == nil {
		return nil, sql.ErrNoRows
	}
	return m.submission, nil
}

func (m *mockSubmissionRepo) ListByProject(ctx context.Context, projectID string) ([]models.Submission, error) {
	return m.submissions, nil
}

type fakeStorage struct {
	saved     []string
	deleted   []string
	openErr   error
	content   string
	saveErr   error
	deleteErr error
}

func (f *fakeStorage) SaveStream(filename string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, filename)
	return filename, nil
}

func (f *fakeStorage) Open(filename string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func (f *fakeStorage) Delete(filename string) error {
	f.deleted = append(f.deleted, filename)
	return f.deleteErr
}

func defaultUploads() config.UploadsConfig {
	return config.UploadsConfig{
		StorageDir:       "/tmp/uploads",
		MaxFileSizeBytes: 1024,
		AllowedMIMEs:     []string{"application/pdf"},
	}
}

func newSubmissionService(repo *mockSubmissionRepo, projects *mockProjectFinder, groups *mockGroupRepo, store *fakeStorage) *SubmissionService {
	return NewSubmissionService(repo, projects, groups, store, defaultUploads(), zap.NewNop())
}

func pdfUpload(name string) dto.FileUpload {
	return dto.FileUpload{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        128,
		Reader:      strings.NewReader("%PDF-1.4 test"),
	}
}

func TestSubmitRejectsMissingFile(t *testing.T) {
	store := &fakeStorage{}
	svc := newSubmissionService(&mockSubmissionRepo{}, &mockProjectFinder{}, &mockGroupRepo{}, store)
	member := &models.User{ID: "u1", Role: models.RoleStudent}

	_, err := svc.Submit(context.Background(), member, "p1", dto.FileUpload{}, dto.SubmitDocumentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.saved)
}

func TestSubmitRejectsDisallowedTypeBeforeStoring(t *testing.T) {
	store := &fakeStorage{}
	svc := newSubmissionService(&mockSubmissionRepo{}, &mockProjectFinder{}, &mockGroupRepo{}, store)
	member := &models.User{ID: "u1", Role: models.RoleStudent}

	upload := pdfUpload("notes.docx")
	upload.ContentType = "application/msword"
	_, err := svc.Submit(context.Background(), member, "p1", upload, dto.SubmitDocumentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.saved)
}

func TestSubmitRejectsOversizeBeforeStoring(t *testing.T) {
	store := &fakeStorage{}
	svc := newSubmissionService(&mockSubmissionRepo{}, &mockProjectFinder{}, &mockGroupRepo{}, store)
	member := &models.User{ID: "u1", Role: models.RoleStudent}

	upload := pdfUpload("thesis.pdf")
	upload.Size = 4096
	_, err := svc.Submit(context.Background(), member, "p1", upload, dto.SubmitDocumentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.saved)
}

func TestSubmitRemovesBlobWhenProjectNotWorkable(t *testing.T) {
	store := &fakeStorage{}
	projects := &mockProjectFinder{project: &models.Project{ID: "p1", GroupID: "g1", Status: models.ProjectProposed}}
	groups := &mockGroupRepo{group: &models.Group{ID: "g1", LeaderID: "u1"}}
	svc := newSubmissionService(&mockSubmissionRepo{}, projects, groups, store)
	leader := &models.User{ID: "u1", Role: models.RoleStudent}

	_, err := svc.Submit(context.Background(), leader, "p1", pdfUpload("thesis.pdf"), dto.SubmitDocumentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved, store.deleted)
}

func TestSubmitRemovesBlobWhenCallerNotMember(t *testing.T) {
	store := &fakeStorage{}
	projects := &mockProjectFinder{project: &models.Project{ID: "p1", GroupID: "g1", Status: models.ProjectApproved}}
	groups := &mockGroupRepo{group: &models.Group{ID: "g1", LeaderID: "u1"}, members: []models.UserInfo{{ID: "u1"}}}
	svc := newSubmissionService(&mockSubmissionRepo{}, projects, groups, store)
	outsider := &models.User{ID: "u9", Role: models.RoleStudent}

	_, err := svc.Submit(context.Background(), outsider, "p1", pdfUpload("thesis.pdf"), dto.SubmitDocumentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Equal(t, store.saved, store.deleted)
}

func TestSubmitRemovesBlobWhenInsertFails(t *testing.T) {
	store := &fakeStorage{}
	projects := &mockProjectFinder{project: &models.Project{ID: "p1", GroupID: "g1", Status: models.ProjectApproved}}
	groups := &mockGroupRepo{group: &models.Group{ID: "g1", LeaderID: "u1"}}
	repo := &mockSubmissionRepo{createErr: errors.New("insert failed")}
	svc := newSubmissionService(repo, projects, groups, store)
	leader := &models.User{ID: "u1", Role: models.RoleStudent}

	_, err := svc.Submit(context.Background(), leader, "p1", pdfUpload("thesis.pdf"), dto.SubmitDocumentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
	assert.Equal(t, store.saved, store.deleted)
}

func TestSubmitSuccessKeepsStoredFile(t *testing.T) {
	store := &fakeStorage{}
	projects := &mockProjectFinder{project: &models.Project{ID: "p1", GroupID: "g1", Status: models.ProjectApproved}}
	groups := &mockGroupRepo{group: &models.Group{ID: "g1", LeaderID: "u1"}}
	repo := &mockSubmissionRepo{}
	svc := newSubmissionService(repo, projects, groups, store)
	leader := &models.User{ID: "u1", Role: models.RoleStudent}

	comment := "final draft"
	submission, err := svc.Submit(context.Background(), leader, "p1", pdfUpload("thesis.pdf"), dto.SubmitDocumentRequest{Description: &comment})
	require.NoError(t, err)
	assert.Empty(t, store.deleted)
	require.Len(t, store.saved, 1)
	assert.True(t, strings.HasSuffix(store.saved[0], ".pdf"))
	assert.NotEqual(t, "thesis.pdf", store.saved[0])
	assert.Equal(t, "thesis.pdf", submission.FileName)
	assert.Equal(t, store.saved[0], submission.FilePath)
	require.NotNil(t, submission.Description)
	assert.Equal(t, "final draft", *submission.Description)
}

func TestListSubmissionsAllowsSupervisor(t *testing.T) {
	projects := &mockProjectFinder{project: &models.Project{ID: "p1", GroupID: "g1", SupervisorID: "t1", Status: models.ProjectApproved}}
	groups := &mockGroupRepo{group: &models.Group{ID: "g1", LeaderID: "u1"}, members: []models.UserInfo{{ID: "u1"}}}
	repo := &mockSubmissionRepo{submissions: []models.Submission{{ID: "s1", FileName: "thesis.pdf"}}}
	svc := newSubmissionService(repo, projects, groups, &fakeStorage{})
	supervisor := &models.User{ID: "t1", Role: models.RoleTeacher}

	submissions, err := svc.List(context.Background(), supervisor, "p1")
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, "thesis.pdf", submissions[0].FileName)
}

func TestListSubmissionsForbiddenForOutsiders(t *testing.T) {
	projects := &mockProjectFinder{project: &models.Project{ID: "p1", GroupID: "g1", SupervisorID: "t1", Status: models.ProjectApproved}}
	groups := &mockGroupRepo{group: &models.Group{ID: "g1", LeaderID: "u1"}, members: []models.UserInfo{{ID: "u1"}}}
	svc := newSubmissionService(&mockSubmissionRepo{}, projects, groups, &fakeStorage{})
	otherTeacher := &models.User{ID: "t9", Role: models.RoleTeacher}

	_, err := svc.List(context.Background(), otherTeacher, "p1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestDownloadStreamsStoredFile(t *testing.T) {
	projects := &mockProjectFinder{project: &models.Project{ID: "p1", GroupID: "g1", SupervisorID: "t1", Status: models.ProjectApproved}}
	groups := &mockGroupRepo{group: &models.Group{ID: "g1", LeaderID: "u1"}}
	repo := &mockSubmissionRepo{submission: &models.Submission{ID: "s1", ProjectID: "p1", FileName: "thesis.pdf", FilePath: "abc.pdf"}}
	store := &fakeStorage{content: "%PDF-1.4 stored"}
	svc := newSubmissionService(repo, projects, groups, store)
	supervisor := &models.User{ID: "t1", Role: models.RoleTeacher}

	submission, reader, err := svc.Download(context.Background(), supervisor, "s1")
	require.NoError(t, err)
	defer reader.Close()
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 stored", string(content))
	assert.Equal(t, "thesis.pdf", submission.FileName)
}

func TestDownloadMissingBlobIsNotFound(t *testing.T) {
	projects := &mockProjectFinder{project: &models.Project{ID: "p1", GroupID: "g1", SupervisorID: "t1", Status: models.ProjectApproved}}
	groups := &mockGroupRepo{group: &models.Group{ID: "g1", LeaderID: "u1"}}
	repo := &mockSubmissionRepo{submission: &models.Submission{ID: "s1", ProjectID: "p1", FilePath: "gone.pdf"}}
	store := &fakeStorage{openErr: errors.New("no such file")}
	svc := newSubmissionService(repo, projects, groups, store)
	leader := &models.User{ID: "u1", Role: models.RoleStudent}

	_, _, err := svc.Download(context.Background(), leader, "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDownloadUnknownSubmission(t *testing.T) {
	svc := newSubmissionService(&mockSubmissionRepo{}, &mockProjectFinder{}, &mockGroupRepo{}, &fakeStorage{})
	leader := &models.User{ID: "u1", Role: models.RoleStudent}

	_, _, err := svc.Download(context.Background(), leader, "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
