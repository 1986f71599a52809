package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is one workshop; every business record hangs off a workspace
type Workspace struct {
	ID        int32     `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WorkspaceRepository interface {
	GetByID(id int32) (*Workspace, error)
	GetByOwnerID(ownerID uuid.UUID) (*Workspace, error)
	Create(workspace *Workspace) (*Workspace, error)
}
