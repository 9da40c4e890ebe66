package tasks

import "github.com/studyhub-app/studyhub-go/entity"

// Comment is an inline comment on a task.
type Comment struct {
	User      entity.Ref `json:"user"`
	Text      string     `json:"text"`
	CreatedAt string     `json:"createdAt,omitempty"`
}

// Task is a unit of work under a project or group.
type Task struct {
	ID          string     `json:"_id" validate:"required"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Project     entity.Ref `json:"projectId"`
	Group       entity.Ref `json:"groupId"`
	AssignedTo  entity.Ref `json:"assignedTo"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"`
	Comments    []Comment  `json:"comments,omitempty"`
	CreatedAt   string     `json:"createdAt,omitempty"`
}

// EntityID implements entity.Entity.
func (t Task) EntityID() string { return t.ID }

// CreateInput is the task creation payload.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	GroupID     string `json:"groupId,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// UpdateInput is the task update payload; zero fields are omitted.
type UpdateInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}
