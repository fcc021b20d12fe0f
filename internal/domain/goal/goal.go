package goal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Goal struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Deadline    time.Time  `json:"deadline"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidPriority = errors.New("invalid goal priority")
)

func (g *Goal) Validate() error {
	if g.Title == "" {
		return errors.New("title is required")
	}
	if g.Deadline.IsZero() {
		return errors.New("deadline is required")
	}
	switch g.Priority {
	case "":
		g.Priority = PriorityMedium
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return ErrInvalidPriority
	}
	if !g.Completed {
		g.CompletedAt = nil
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, g *Goal) error
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*Goal, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*Goal, error)
}
