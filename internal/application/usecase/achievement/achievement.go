package achievement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type AchievementUseCase struct {
	repo     achievement.Repository
	notifier *service.ChangeNotifier
	logger   logger.Logger
}

func NewAchievementUseCase(r achievement.Repository, notifier *service.ChangeNotifier, log logger.Logger) *AchievementUseCase {
	return &AchievementUseCase{repo: r, notifier: notifier, logger: log}
}

type AchievementInput struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description *string
	Date        time.Time
	Icon        string
	Category    string
}

func (uc *AchievementUseCase) CreateAchievement(ctx context.Context, in AchievementInput) (*achievement.Achievement, error) {
	a := &achievement.Achievement{
		ID:          in.ID,
		UserID:      in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Icon:        in.Icon,
		Category:    in.Category,
		CreatedAt:   time.Now().UTC(),
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if err := a.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("achievement validation failed", err)
	}
	if err := uc.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	uc.notify(service.EventTypeCreated, a)
	return a, nil
}

// UpdateAchievement uses in.ID as the target.
func (uc *AchievementUseCase) UpdateAchievement(ctx context.Context, in AchievementInput) (*achievement.Achievement, error) {
	a, err := uc.repo.FindByID(ctx, in.ID, in.OwnerID)
	if err != nil {
		return nil, err
	}

	a.Title = in.Title
	a.Description = in.Description
	a.Date = in.Date
	a.Icon = in.Icon
	a.Category = in.Category

	if err := a.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("achievement validation failed", err)
	}
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.notify(service.EventTypeUpdated, a)
	return a, nil
}

func (uc *AchievementUseCase) DeleteAchievement(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := uc.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	uc.notify(service.EventTypeDeleted, &achievement.Achievement{ID: id, UserID: ownerID})
	return nil
}

func (uc *AchievementUseCase) ListAchievements(ctx context.Context, ownerID uuid.UUID, limit int) ([]*achievement.Achievement, error) {
	return uc.repo.ListByOwner(ctx, ownerID, limit)
}

func (uc *AchievementUseCase) notify(eventType string, a *achievement.Achievement) {
	uc.notifier.Notify(service.GrowthEvent{
		EventType:  eventType,
		UserID:     a.UserID,
		Collection: service.CollectionAchievements,
		EntityID:   a.ID,
	})
}
