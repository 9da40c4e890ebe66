package comments

import "github.com/studyhub-app/studyhub-go/entity"

// Comment is a standalone discussion comment attached to a project or task.
type Comment struct {
	ID        string     `json:"_id" validate:"required"`
	Content   string     `json:"content"`
	Author    entity.Ref `json:"author"`
	Project   entity.Ref `json:"projectId"`
	Task      entity.Ref `json:"taskId"`
	CreatedAt string     `json:"createdAt,omitempty"`
	UpdatedAt string     `json:"updatedAt,omitempty"`
}

// EntityID implements entity.Entity.
func (c Comment) EntityID() string { return c.ID }

// CreateInput is the comment creation payload.
type CreateInput struct {
	Content   string `json:"content"`
	ProjectID string `json:"projectId,omitempty"`
	TaskID    string `json:"taskId,omitempty"`
}
