package models

import "time"

// Submission records one uploaded project document. Rows are immutable once
// created; the stored file is only removed as a compensating action when a
// rejected upload already hit disk.
type Submission struct {
	ID          string    `db:"id" json:"id"`
	ProjectID   string    `db:"project_id" json:"project_id"`
	UploaderID  string    `db:"uploader_id" json:"uploader_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FilePath    string    `db:"file_path" json:"file_path"`
	FileType    string    `db:"file_type" json:"file_type"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	UploaderName  *string `db:"uploader_name" json:"uploader_name,omitempty"`
	UploaderEmail *string `db:"uploader_email" json:"uploader_email,omitempty"`
}
