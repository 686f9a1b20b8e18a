package models

import "time"

// ProjectStatus captures the project lifecycle. ACTIVE is a declared status
// that no workflow sets; APPROVED projects are treated as fully workable.
type ProjectStatus string

const (
	ProjectProposed  ProjectStatus = "PROPOSED"
	ProjectApproved  ProjectStatus = "APPROVED"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectRejected  ProjectStatus = "REJECTED"
	ProjectCompleted ProjectStatus = "COMPLETED"
)

// Project is a group's supervised project. group_id is unique: one project
// row per group for the lifetime of that row, regardless of status.
type Project struct {
	ID              string        `db:"id" json:"id"`
	Title           string        `db:"title" json:"title"`
	Description     string        `db:"description" json:"description"`
	GroupID         string        `db:"group_id" json:"group_id"`
	ProposedByID    string        `db:"proposed_by_id" json:"proposed_by_id"`
	SupervisorID    string        `db:"supervisor_id" json:"supervisor_id"`
	Status          ProjectStatus `db:"status" json:"status"`
	RejectionReason *string       `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time    `db:"approved_at" json:"approved_at,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}
