package projects

import "github.com/studyhub-app/studyhub-go/entity"

// Project is an academic project. Dates are ISO strings as the backend
// returns them.
type Project struct {
	ID          string     `json:"_id" validate:"required"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   string     `json:"startDate,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"`
	Status      string     `json:"status,omitempty"`
	CreatedBy   entity.Ref `json:"createdBy"`
	CreatedAt   string     `json:"createdAt,omitempty"`
	UpdatedAt   string     `json:"updatedAt,omitempty"`
}

// EntityID implements entity.Entity.
func (p Project) EntityID() string { return p.ID }

// CreateInput is the project creation payload.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
}

// UpdateInput is the project update payload; zero fields are omitted.
type UpdateInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Status      string `json:"status,omitempty"`
}
