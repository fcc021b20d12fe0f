package stats

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/internal/domain/skill"
	"github.com/khoahotran/growth-tracker/internal/growth"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

// StatsUseCase serves per-user aggregates, preferring the cache.
type StatsUseCase struct {
	skills       skill.Repository
	goals        goal.Repository
	achievements achievement.Repository
	cache        service.StatsCache
	logger       logger.Logger
}

func NewStatsUseCase(s skill.Repository, g goal.Repository, a achievement.Repository, cache service.StatsCache, log logger.Logger) *StatsUseCase {
	return &StatsUseCase{skills: s, goals: g, achievements: a, cache: cache, logger: log}
}

func (uc *StatsUseCase) GetStats(ctx context.Context, ownerID uuid.UUID) (*growth.Stats, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, ownerID)
		if err != nil {
			uc.logger.Warn("Stats cache read failed", zap.String("user_id", ownerID.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}
	return uc.Recompute(ctx, ownerID)
}

// Recompute reads every row of the owner and refreshes the cache.
func (uc *StatsUseCase) Recompute(ctx context.Context, ownerID uuid.UUID) (*growth.Stats, error) {
	var (
		skills       []*skill.Skill
		goals        []*goal.Goal
		achievements []*achievement.Achievement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		skills, err = uc.skills.ListByOwner(gctx, ownerID, 0)
		return err
	})
	g.Go(func() (err error) {
		goals, err = uc.goals.ListByOwner(gctx, ownerID, 0)
		return err
	})
	g.Go(func() (err error) {
		achievements, err = uc.achievements.ListByOwner(gctx, ownerID, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := growth.Data{
		Skills:       make([]growth.Skill, len(skills)),
		Goals:        make([]growth.Goal, len(goals)),
		Achievements: make([]growth.Achievement, len(achievements)),
	}
	for i, s := range skills {
		data.Skills[i] = growth.Skill{ID: s.ID.String(), Level: s.Level}
	}
	for i, gl := range goals {
		data.Goals[i] = growth.Goal{ID: gl.ID.String(), Completed: gl.Completed}
	}
	for i, a := range achievements {
		data.Achievements[i] = growth.Achievement{ID: a.ID.String()}
	}
	st := growth.ComputeStats(data)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, ownerID, st); err != nil {
			uc.logger.Warn("Stats cache write failed", zap.String("user_id", ownerID.String()), zap.Error(err))
		}
	}
	return &st, nil
}
