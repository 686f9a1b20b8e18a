package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/projectrack-api/internal/models"
)

// ErrProjectNotProposed is returned when a decision targets a project that
// already left the PROPOSED state.
var ErrProjectNotProposed = errors.New("project is not in proposed state")

const projectColumns = `id, title, description, group_id, proposed_by_id, supervisor_id, status, rejection_reason, approved_at, created_at, updated_at`

// ProjectRepository provides database access for projects.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new instance of ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project proposal.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Status == "" {
		project.Status = models.ProjectProposed
	}

	const query = `INSERT INTO projects (id, title, description, group_id, proposed_by_id, supervisor_id, status, rejection_reason, approved_at, created_at, updated_at)
VALUES (:id, :title, :description, :group_id, :proposed_by_id, :supervisor_id, :status, :rejection_reason, :approved_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, project); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// FindByID returns a project by identifier.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1 LIMIT 1`, projectColumns)
	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return &project, nil
}

// FindByGroupID returns the group's project row of any status, if one exists.
func (r *ProjectRepository) FindByGroupID(ctx context.Context, groupID string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE group_id = $1 LIMIT 1`, projectColumns)
	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, groupID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find project by group: %w", err)
	}
	return &project, nil
}

// ListBySupervisor returns projects supervised by the teacher, newest first.
func (r *ProjectRepository) ListBySupervisor(ctx context.Context, supervisorID string) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE supervisor_id = $1 ORDER BY created_at DESC`, projectColumns)
	var projects []models.Project
	if err := r.db.SelectContext(ctx, &projects, query, supervisorID); err != nil {
		return nil, fmt.Errorf("list projects by supervisor: %w", err)
	}
	return projects, nil
}

// UpdateDecision applies a supervisor decision. The WHERE status guard keeps
// a lost race on concurrent decisions from overwriting a terminal state.
func (r *ProjectRepository) UpdateDecision(ctx context.Context, id string, status models.ProjectStatus, rejectionReason *string, approvedAt *time.Time) error {
	const query = `UPDATE projects SET status = $2, rejection_reason = $3, approved_at = $4, updated_at = $5 WHERE id = $1 AND status = 'PROPOSED'`
	result, err := r.db.ExecContext(ctx, query, id, status, rejectionReason, approvedAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update project decision: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project decision rows: %w", err)
	}
	if affected == 0 {
		return ErrProjectNotProposed
	}
	return nil
}
