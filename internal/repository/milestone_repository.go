package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/projectrack-api/internal/models"
)

const milestoneColumns = `id, project_id, title, description, due_date, is_completed, last_updated_by_user_id, created_at, updated_at`

// MilestoneRepository provides database access for milestones.
type MilestoneRepository struct {
	db *sqlx.DB
}

// NewMilestoneRepository creates a new instance of MilestoneRepository.
func NewMilestoneRepository(db *sqlx.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

// Create inserts a milestone.
func (r *MilestoneRepository) Create(ctx context.Context, milestone *models.Milestone) error {
	if milestone.ID == "" {
		milestone.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	milestone.CreatedAt = now
	milestone.UpdatedAt = now

	const query = `INSERT INTO milestones (id, project_id, title, description, due_date, is_completed, last_updated_by_user_id, created_at, updated_at)
VALUES (:id, :project_id, :title, :description, :due_date, :is_completed, :last_updated_by_user_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, milestone); err != nil {
		return fmt.Errorf("create milestone: %w", err)
	}
	return nil
}

// FindByID returns a milestone by identifier.
func (r *MilestoneRepository) FindByID(ctx context.Context, id string) (*models.Milestone, error) {
	query := fmt.Sprintf(`SELECT %s FROM milestones WHERE id = $1 LIMIT 1`, milestoneColumns)
	var milestone models.Milestone
	if err := r.db.GetContext(ctx, &milestone, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find milestone by id: %w", err)
	}
	return &milestone, nil
}

// ListByProject returns the project's milestones in creation order.
func (r *MilestoneRepository) ListByProject(ctx context.Context, projectID string) ([]models.Milestone, error) {
	query := fmt.Sprintf(`SELECT %s FROM milestones WHERE project_id = $1 ORDER BY created_at ASC`, milestoneColumns)
	var milestones []models.Milestone
	if err := r.db.SelectContext(ctx, &milestones, query, projectID); err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return milestones, nil
}

// Update saves the mutable fields of a milestone.
func (r *MilestoneRepository) Update(ctx context.Context, milestone *models.Milestone) error {
	milestone.UpdatedAt = time.Now().UTC()
	const query = `UPDATE milestones SET title = :title, description = :description, due_date = :due_date, is_completed = :is_completed, last_updated_by_user_id = :last_updated_by_user_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, milestone); err != nil {
		return fmt.Errorf("update milestone: %w", err)
	}
	return nil
}

// CountByProject returns total and completed milestone counts.
func (r *MilestoneRepository) CountByProject(ctx context.Context, projectID string) (total, completed int, err error) {
	const query = `SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE is_completed) AS completed FROM milestones WHERE project_id = $1`
	var counts struct {
		Total     int `db:"total"`
		Completed int `db:"completed"`
	}
	if err := r.db.GetContext(ctx, &counts, query, projectID); err != nil {
		return 0, 0, fmt.Errorf("count milestones: %w", err)
	}
	return counts.Total, counts.Completed, nil
}
