package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated person; identity lives in Auth0, we keep a mirror row
type User struct {
	ID         uuid.UUID  `json:"id"`
	Auth0ID    string     `json:"auth0Id"`
	Email      string     `json:"email"`
	Name       *string    `json:"name,omitempty"`
	PictureURL *string    `json:"pictureUrl,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	GetByAuth0ID(auth0ID string) (*User, error)
	CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*User, error)
	UpdateName(auth0ID string, name string) (*User, error)
}
