package submissions

import (
	"io"

	"github.com/studyhub-app/studyhub-go/entity"
)

// File is an uploaded artifact attached to a submission.
type File struct {
	Name string `json:"filename"`
	Path string `json:"path,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Submission is uploaded work for a project, owned by a group.
type Submission struct {
	ID          string     `json:"_id" validate:"required"`
	Project     entity.Ref `json:"projectId"`
	Group       entity.Ref `json:"groupId"`
	Description string     `json:"description,omitempty"`
	Files       []File     `json:"files,omitempty"`
	Status      string     `json:"status,omitempty"`
	Feedback    string     `json:"feedback,omitempty"`
	SubmittedBy entity.Ref `json:"submittedBy"`
	ReviewedBy  entity.Ref `json:"reviewedBy"`
	SubmittedAt string     `json:"submittedAt,omitempty"`
}

// EntityID implements entity.Entity.
func (s Submission) EntityID() string { return s.ID }

// Upload is one file part of a submission creation.
type Upload struct {
	Name    string
	Content io.Reader
}

// CreateInput is the multipart submission payload.
type CreateInput struct {
	ProjectID   string
	GroupID     string
	Description string
	Files       []Upload
}

// GradeInput is the grading payload.
type GradeInput struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback,omitempty"`
}
