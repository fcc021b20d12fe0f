package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Profile is keyed by its owner's user id; there is at most one per user.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	AvatarURL *string   `json:"avatar_url"`
	Email     *string   `json:"email"`
	Location  *string   `json:"location"`
	Website   *string   `json:"website"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var ErrProfileNotFound = errors.New("profile not found")

func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return errors.New("id is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type Repository interface {
	// GetByID returns ErrProfileNotFound when the user has no profile yet.
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// Upsert keeps the stored created_at of an existing row and fills the
	// timestamps of p from the database.
	Upsert(ctx context.Context, p *Profile) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error
}
