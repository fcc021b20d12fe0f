package skill

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	MinLevel = 0
	MaxLevel = 100
)

type Skill struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var ErrSkillNotFound = errors.New("skill not found")

// Validate clamps the level into range and checks required fields.
func (s *Skill) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Category == "" {
		return errors.New("category is required")
	}
	s.Level = ClampLevel(s.Level)
	return nil
}

func ClampLevel(level int) int {
	return max(MinLevel, min(MaxLevel, level))
}

type Repository interface {
	Save(ctx context.Context, s *Skill) error
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*Skill, error)
	// ListByOwner returns newest first; limit <= 0 means no limit.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*Skill, error)
}
