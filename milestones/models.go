package milestones

import "github.com/studyhub-app/studyhub-go/entity"

// Milestone is a dated checkpoint under a project.
type Milestone struct {
	ID          string     `json:"_id" validate:"required"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Project     entity.Ref `json:"projectId"`
	DueDate     string     `json:"dueDate,omitempty"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   string     `json:"createdAt,omitempty"`
}

// EntityID implements entity.Entity.
func (m Milestone) EntityID() string { return m.ID }

// CreateInput is the milestone creation payload.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"projectId"`
	DueDate     string `json:"dueDate,omitempty"`
}

// UpdateInput is the milestone update payload; zero fields are omitted.
type UpdateInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Status      string `json:"status,omitempty"`
}
