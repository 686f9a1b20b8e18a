package models

import "time"

// Milestone belongs to a project and is mutable by group members while the
// project remains workable.
type Milestone struct {
	ID                  string     `db:"id" json:"id"`
	ProjectID           string     `db:"project_id" json:"project_id"`
	Title               string     `db:"title" json:"title"`
	Description         *string    `db:"description" json:"description,omitempty"`
	DueDate             *time.Time `db:"due_date" json:"due_date,omitempty"`
	IsCompleted         bool       `db:"is_completed" json:"is_completed"`
	LastUpdatedByUserID *string    `db:"last_updated_by_user_id" json:"last_updated_by_user_id,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}
