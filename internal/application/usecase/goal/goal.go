package goal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type GoalUseCase struct {
	repo     goal.Repository
	notifier *service.ChangeNotifier
	logger   logger.Logger
}

func NewGoalUseCase(r goal.Repository, notifier *service.ChangeNotifier, log logger.Logger) *GoalUseCase {
	return &GoalUseCase{repo: r, notifier: notifier, logger: log}
}

type CreateGoalInput struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description *string
	Deadline    time.Time
	Priority    string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   *time.Time
}

func (uc *GoalUseCase) CreateGoal(ctx context.Context, in CreateGoalInput) (*goal.Goal, error) {
	g := &goal.Goal{
		ID:          in.ID,
		UserID:      in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Priority:    in.Priority,
		Completed:   in.Completed,
		CompletedAt: in.CompletedAt,
		CreatedAt:   time.Now().UTC(),
	}
	if in.CreatedAt != nil && !in.CreatedAt.IsZero() {
		g.CreatedAt = in.CreatedAt.UTC()
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Completed && g.CompletedAt == nil {
		now := time.Now().UTC()
		g.CompletedAt = &now
	}
	if err := g.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("goal validation failed", err)
	}
	if err := uc.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	uc.notify(service.EventTypeCreated, g)
	return g, nil
}

type UpdateGoalInput struct {
	GoalID      uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description *string
	Deadline    time.Time
	Priority    string
	Completed   bool
	CompletedAt *time.Time
}

// UpdateGoal replaces the goal's fields. completed and completed_at are
// always written together: completing without a timestamp stamps now and
// reopening clears it.
func (uc *GoalUseCase) UpdateGoal(ctx context.Context, in UpdateGoalInput) (*goal.Goal, error) {
	g, err := uc.repo.FindByID(ctx, in.GoalID, in.OwnerID)
	if err != nil {
		return nil, err
	}

	wasCompleted := g.Completed
	g.Title = in.Title
	g.Description = in.Description
	g.Deadline = in.Deadline
	g.Priority = in.Priority
	g.Completed = in.Completed
	switch {
	case in.CompletedAt != nil:
		g.CompletedAt = in.CompletedAt
	case in.Completed && !wasCompleted:
		now := time.Now().UTC()
		g.CompletedAt = &now
	}

	if err := g.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("goal validation failed", err)
	}
	if err := uc.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	uc.notify(service.EventTypeUpdated, g)
	return g, nil
}

func (uc *GoalUseCase) DeleteGoal(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := uc.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	uc.notify(service.EventTypeDeleted, &goal.Goal{ID: id, UserID: ownerID})
	return nil
}

func (uc *GoalUseCase) ListGoals(ctx context.Context, ownerID uuid.UUID, limit int) ([]*goal.Goal, error) {
	return uc.repo.ListByOwner(ctx, ownerID, limit)
}

func (uc *GoalUseCase) notify(eventType string, g *goal.Goal) {
	uc.notifier.Notify(service.GrowthEvent{
		EventType:  eventType,
		UserID:     g.UserID,
		Collection: service.CollectionGoals,
		EntityID:   g.ID,
	})
}
