package dto

import "github.com/noah-isme/projectrack-api/internal/models"

// ProposeProjectRequest creates a project proposal for the caller's group.
type ProposeProjectRequest struct {
	GroupID      string `json:"group_id" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	SupervisorID string `json:"supervisor_id" validate:"required"`
}

// DecideProjectRequest records the supervisor's decision on a proposal.
type DecideProjectRequest struct {
	Status          string  `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	RejectionReason *string `json:"rejection_reason"`
}

// ProposalItem is a proposal as seen by its supervisor, with the group
// roster and the proposing leader attached.
type ProposalItem struct {
	models.Project
	GroupName  string            `json:"group_name"`
	Leader     models.UserInfo   `json:"leader"`
	Members    []models.UserInfo `json:"members"`
	ProposedBy models.UserInfo   `json:"proposed_by"`
}

// ProjectDetail is the participant/supervisor view of a project. Progress is
// derived from milestone completion and never persisted.
type ProjectDetail struct {
	models.Project
	GroupName  string            `json:"group_name"`
	Leader     models.UserInfo   `json:"leader"`
	Members    []models.UserInfo `json:"members"`
	Supervisor models.UserInfo   `json:"supervisor"`
	Progress   int               `json:"progress"`
}
