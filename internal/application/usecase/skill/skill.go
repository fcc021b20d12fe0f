package skill

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/domain/skill"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type SkillUseCase struct {
	repo     skill.Repository
	notifier *service.ChangeNotifier
	logger   logger.Logger
}

func NewSkillUseCase(r skill.Repository, notifier *service.ChangeNotifier, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{repo: r, notifier: notifier, logger: log}
}

type CreateSkillInput struct {
	// ID is optional; clients that generate their own ids keep them.
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Category  string
	Level     int
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func (uc *SkillUseCase) CreateSkill(ctx context.Context, in CreateSkillInput) (*skill.Skill, error) {
	now := time.Now().UTC()
	s := &skill.Skill{
		ID:        in.ID,
		UserID:    in.OwnerID,
		Name:      in.Name,
		Category:  in.Category,
		Level:     in.Level,
		CreatedAt: orNow(in.CreatedAt, now),
		UpdatedAt: orNow(in.UpdatedAt, now),
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("skill validation failed", err)
	}
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	uc.notify(service.EventTypeCreated, s)
	return s, nil
}

type UpdateSkillInput struct {
	SkillID  uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	Category string
	Level    int
}

func (uc *SkillUseCase) UpdateSkill(ctx context.Context, in UpdateSkillInput) (*skill.Skill, error) {
	s, err := uc.repo.FindByID(ctx, in.SkillID, in.OwnerID)
	if err != nil {
		return nil, err
	}

	s.Name = in.Name
	s.Category = in.Category
	s.Level = in.Level
	s.UpdatedAt = time.Now().UTC()

	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("skill validation failed", err)
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.notify(service.EventTypeUpdated, s)
	return s, nil
}

func (uc *SkillUseCase) DeleteSkill(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := uc.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	uc.notify(service.EventTypeDeleted, &skill.Skill{ID: id, UserID: ownerID})
	return nil
}

func (uc *SkillUseCase) ListSkills(ctx context.Context, ownerID uuid.UUID, limit int) ([]*skill.Skill, error) {
	return uc.repo.ListByOwner(ctx, ownerID, limit)
}

func (uc *SkillUseCase) notify(eventType string, s *skill.Skill) {
	uc.notifier.Notify(service.GrowthEvent{
		EventType:  eventType,
		UserID:     s.UserID,
		Collection: service.CollectionSkills,
		EntityID:   s.ID,
	})
}

func orNow(t *time.Time, now time.Time) time.Time {
	if t == nil || t.IsZero() {
		return now
	}
	return t.UTC()
}
