package dto

// CreateMilestoneRequest adds a milestone to a workable project.
type CreateMilestoneRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
}

// UpdateMilestoneRequest is a partial milestone patch. An empty-string title
// keeps the stored value; an empty-string due_date clears it.
type UpdateMilestoneRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	IsCompleted *bool   `json:"is_completed"`
}
