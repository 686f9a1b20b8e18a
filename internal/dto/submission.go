package dto

import "io"

// FileUpload describes one inbound multipart document before storage.
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// SubmitDocumentRequest carries the optional uploader comment.
type SubmitDocumentRequest struct {
	Description *string `form:"description"`
}
