package assignments

import "github.com/studyhub-app/studyhub-go/entity"

// Assignment links a project to a student.
type Assignment struct {
	ID         string     `json:"_id" validate:"required"`
	Project    entity.Ref `json:"projectId"`
	Student    entity.Ref `json:"studentId"`
	AssignedBy entity.Ref `json:"assignedBy"`
	Status     string     `json:"status,omitempty"`
	AssignedAt string     `json:"assignedAt,omitempty"`
}

// EntityID implements entity.Entity.
func (a Assignment) EntityID() string { return a.ID }

// AssignInput is the assignment creation payload.
type AssignInput struct {
	ProjectID string `json:"projectId"`
	StudentID string `json:"studentId"`
}
