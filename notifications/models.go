package notifications

import "github.com/studyhub-app/studyhub-go/entity"

// Notification is a message addressed to a user. Read state is tracked
// server-side and mirrored locally.
type Notification struct {
	ID        string     `json:"_id" validate:"required"`
	Recipient entity.Ref `json:"userId"`
	Type      string     `json:"type,omitempty"`
	Title     string     `json:"title,omitempty"`
	Message   string     `json:"message,omitempty"`
	Read      bool       `json:"read"`
	Link      string     `json:"link,omitempty"`
	CreatedAt string     `json:"createdAt,omitempty"`
}

// EntityID implements entity.Entity.
func (n Notification) EntityID() string { return n.ID }
