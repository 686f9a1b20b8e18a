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

// SubmissionRepository provides database access for document submissions.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new instance of SubmissionRepository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a submission record. Records are immutable afterwards.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO submissions (id, project_id, uploader_id, file_name, file_path, file_type, description, created_at)
VALUES (:id, :project_id, :uploader_id, :file_name, :file_path, :file_type, :description, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, submission); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// FindByID returns a submission by identifier.
func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	const query = `SELECT id, project_id, uploader_id, file_name, file_path, file_type, description, created_at FROM submissions WHERE id = $1 LIMIT 1`
	var submission models.Submission
	if err := r.db.GetContext(ctx, &submission, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find submission by id: %w", err)
	}
	return &submission, nil
}

// ListByProject returns the project's submissions, newest first, with
// uploader identity attached.
func (r *SubmissionRepository) ListByProject(ctx context.Context, projectID string) ([]models.Submission, error) {
	const query = `SELECT s.id, s.project_id, s.uploader_id, s.file_name, s.file_path, s.file_type, s.description, s.created_at,
       u.name AS uploader_name, u.email AS uploader_email
FROM submissions s
JOIN users u ON u.id = s.uploader_id
WHERE s.project_id = $1
ORDER BY s.created_at DESC`
	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, projectID); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}
