package groups

import "github.com/studyhub-app/studyhub-go/entity"

// Member is a group membership row.
type Member struct {
	User entity.Ref `json:"userId"`
	Role string     `json:"role,omitempty"`
}

// Group is a student group working on a project.
type Group struct {
	ID          string     `json:"_id" validate:"required"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Project     entity.Ref `json:"projectId"`
	Members     []Member   `json:"members,omitempty"`
	CreatedBy   entity.Ref `json:"createdBy"`
	CreatedAt   string     `json:"createdAt,omitempty"`
}

// EntityID implements entity.Entity.
func (g Group) EntityID() string { return g.ID }

// CreateInput is the group creation payload.
type CreateInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	ProjectID   string        `json:"projectId,omitempty"`
	Members     []MemberInput `json:"members,omitempty"`
}

// MemberInput is a membership row in create/add-member payloads.
type MemberInput struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// UpdateInput is the group update payload; zero fields are omitted.
type UpdateInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
}
