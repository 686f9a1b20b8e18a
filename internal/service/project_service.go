package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/projectrack-api/internal/dto"
	"github.com/noah-isme/projectrack-api/internal/models"
	"github.com/noah-isme/projectrack-api/internal/repository"
	appErrors "github.com/noah-isme/projectrack-api/pkg/errors"
	"github.com/noah-isme/projectrack-api/pkg/export"
)

type projectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	FindByGroupID(ctx context.Context, groupID string) (*models.Project, error)
	ListBySupervisor(ctx context.Context, supervisorID string) ([]models.Project, error)
	UpdateDecision(ctx context.Context, id string, status models.ProjectStatus, rejectionReason *string, approvedAt *time.Time) error
}

type milestoneCounter interface {
	CountByProject(ctx context.Context, projectID string) (total, completed int, err error)
	ListByProject(ctx context.Context, projectID string) ([]models.Milestone, error)
}

// ReportFormat selects the milestone report rendering.
type ReportFormat string

const (
	ReportCSV ReportFormat = "csv"
	ReportPDF ReportFormat = "pdf"
)

// Report is a rendered milestone report ready to stream.
type Report struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ProjectService covers proposals, supervisor decisions and project views.
type ProjectService struct {
	projects   projectRepository
	groups     groupRepository
	users      userFinder
	milestones milestoneCounter
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewProjectService constructs a ProjectService instance.
func NewProjectService(projects projectRepository, groups groupRepository, users userFinder, milestones milestoneCounter, validate *validator.Validate, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ProjectService{
		projects:   projects,
		groups:     groups,
		users:      users,
		milestones: milestones,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		validator:  validate,
		logger:     logger,
	}
}

// Propose creates a project proposal for the caller's group. Any existing
// project row for the group, whatever its status, blocks a new proposal.
func (s *ProjectService) Propose(ctx context.Context, caller *models.User, req dto.ProposeProjectRequest) (*models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "group id, title, description, and supervisor id are required")
	}

	group, err := s.groups.FindByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}

	if !caller.IsStudent() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can propose projects")
	}
	if !IsGroupLeader(caller, group) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the group leader can propose a project")
	}

	existing, err := s.projects.FindByGroupID(ctx, group.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing project")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("a project already exists for this group (status: %s)", existing.Status))
	}

	supervisor, err := s.users.FindByID(ctx, req.SupervisorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selected supervisor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load supervisor")
	}
	if !supervisor.IsTeacher() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "selected supervisor must be a teacher")
	}

	project := &models.Project{
		Title:        req.Title,
		Description:  req.Description,
		GroupID:      group.ID,
		ProposedByID: caller.ID,
		SupervisorID: supervisor.ID,
		Status:       models.ProjectProposed,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create project")
	}

	// Supervisor notification is out of scope; the proposal shows up in
	// their proposal list.
	s.logger.Info("project proposed",
		zap.String("project_id", project.ID),
		zap.String("supervisor_id", supervisor.ID))

	return project, nil
}

// ListProposalsForSupervisor returns projects supervised by the calling
// teacher, newest first, with group roster and proposer attached.
func (s *ProjectService) ListProposalsForSupervisor(ctx context.Context, caller *models.User) ([]dto.ProposalItem, error) {
	if !caller.IsTeacher() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers can view project proposals")
	}

	projects, err := s.projects.ListBySupervisor(ctx, caller.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list proposals")
	}

	items := make([]dto.ProposalItem, 0, len(projects))
	for _, project := range projects {
		item := dto.ProposalItem{Project: project}
		group, err := s.groups.FindByID(ctx, project.GroupID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
		}
		item.GroupName = group.Name

		members, err := s.groups.ListMembers(ctx, group.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group members")
		}
		item.Members = members
		for _, m := range members {
			if m.ID == group.LeaderID {
				item.Leader = m
			}
			if m.ID == project.ProposedByID {
				item.ProposedBy = m
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Decide applies the supervisor's APPROVED/REJECTED decision to a PROPOSED
// project. Approval stamps approved_at; rejection stores the optional
// reason. Any other current status is a conflict.
func (s *ProjectService) Decide(ctx context.Context, caller *models.User, projectID string, req dto.DecideProjectRequest) (*models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "status must be APPROVED or REJECTED")
	}
	if !caller.IsTeacher() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers can approve or reject projects")
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load project")
	}

	if project.SupervisorID != caller.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not assigned to supervise this project")
	}
	if project.Status != models.ProjectProposed {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("project is not in PROPOSED state (current status: %s)", project.Status))
	}

	status := models.ProjectStatus(req.Status)
	var rejectionReason *string
	var approvedAt *time.Time
	if status == models.ProjectApproved {
		now := time.Now().UTC()
		approvedAt = &now
	} else if req.RejectionReason != nil && *req.RejectionReason != "" {
		rejectionReason = req.RejectionReason
	}

	if err := s.projects.UpdateDecision(ctx, project.ID, status, rejectionReason, approvedAt); err != nil {
		if errors.Is(err, repository.ErrProjectNotProposed) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "project is not in PROPOSED state")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update project status")
	}

	project.Status = status
	project.RejectionReason = rejectionReason
	project.ApprovedAt = approvedAt

	// Group notification is out of scope; the decision is visible on the
	// project itself.
	s.logger.Info("project decision recorded",
		zap.String("project_id", project.ID),
		zap.String("status", string(status)))

	return project, nil
}

// Detail returns the project with roster and derived progress for group
// members, the leader, or the supervisor.
func (s *ProjectService) Detail(ctx context.Context, caller *models.User, projectID string) (*dto.ProjectDetail, error) {
	project, group, err := s.loadProjectWithGroup(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !IsProjectParticipant(caller, project, group) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not authorized to view this project")
	}

	total, completed, err := s.milestones.CountByProject(ctx, project.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count milestones")
	}

	detail := &dto.ProjectDetail{
		Project:   *project,
		GroupName: group.Name,
		Members:   group.Members,
		Progress:  computeProgress(total, completed),
	}
	for _, m := range group.Members {
		if m.ID == group.LeaderID {
			detail.Leader = m
			break
		}
	}
	if supervisor, err := s.users.FindByID(ctx, project.SupervisorID); err == nil {
		detail.Supervisor = supervisor.Info()
	}
	return detail, nil
}

// ExportReport renders the milestone table as CSV or PDF for the same
// audience as Detail.
func (s *ProjectService) ExportReport(ctx context.Context, caller *models.User, projectID string, format ReportFormat) (*Report, error) {
	project, group, err := s.loadProjectWithGroup(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !IsProjectParticipant(caller, project, group) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not authorized to view this project")
	}

	milestones, err := s.milestones.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list milestones")
	}

	dataset := export.Dataset{Columns: []export.Column{
		{Name: "Title"},
		{Name: "Due Date", Kind: export.ColumnDate},
		{Name: "Completed", Kind: export.ColumnFlag},
	}}
	for _, m := range milestones {
		due := ""
		if m.DueDate != nil {
			due = m.DueDate.Format("2006-01-02")
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Title":     m.Title,
			"Due Date":  due,
			"Completed": strconv.FormatBool(m.IsCompleted),
		})
	}

	switch format {
	case ReportCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
		}
		return &Report{FileName: "milestones.csv", ContentType: "text/csv", Content: content}, nil
	case ReportPDF:
		content, err := s.pdf.Render(dataset, project.Title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
		}
		return &Report{FileName: "milestones.pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *ProjectService) loadProjectWithGroup(ctx context.Context, projectID string) (*models.Project, *models.Group, error) {
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

func computeProgress(total, completed int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
