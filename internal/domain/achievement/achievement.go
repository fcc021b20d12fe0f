package achievement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const DefaultIcon = "🏆"

type Achievement struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

var ErrAchievementNotFound = errors.New("achievement not found")

func (a *Achievement) Validate() error {
	if a.Title == "" {
		return errors.New("title is required")
	}
	if a.Date.IsZero() {
		return errors.New("date is required")
	}
	if a.Category == "" {
		return errors.New("category is required")
	}
	if a.Icon == "" {
		a.Icon = DefaultIcon
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, a *Achievement) error
	Update(ctx context.Context, a *Achievement) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*Achievement, error)
	// ListByOwner orders by date, most recent first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*Achievement, error)
}
