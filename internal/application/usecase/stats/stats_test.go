package stats_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/growth-tracker/internal/application/usecase/stats"
	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/internal/domain/skill"
	"github.com/khoahotran/growth-tracker/internal/growth"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, userID uuid.UUID) (*growth.Stats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*growth.Stats), args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, userID uuid.UUID, st growth.Stats) error {
	return m.Called(ctx, userID, st).Error(0)
}

func (m *MockStatsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// listOnly repositories only answer ListByOwner.
type listOnlySkills struct {
	skill.Repository
	rows []*skill.Skill
	err  error
}

func (r listOnlySkills) ListByOwner(context.Context, uuid.UUID, int) ([]*skill.Skill, error) {
	return r.rows, r.err
}

type listOnlyGoals struct {
	goal.Repository
	rows []*goal.Goal
}

func (r listOnlyGoals) ListByOwner(context.Context, uuid.UUID, int) ([]*goal.Goal, error) {
	return r.rows, nil
}

type listOnlyAchievements struct {
	achievement.Repository
	rows []*achievement.Achievement
}

func (r listOnlyAchievements) ListByOwner(context.Context, uuid.UUID, int) ([]*achievement.Achievement, error) {
	return r.rows, nil
}

func fixtures() (listOnlySkills, listOnlyGoals, listOnlyAchievements) {
	return listOnlySkills{rows: []*skill.Skill{{Level: 30}, {Level: 70}, {Level: 50}}},
		listOnlyGoals{rows: []*goal.Goal{{Completed: true}, {}, {}}},
		listOnlyAchievements{rows: []*achievement.Achievement{{}}}
}

func TestStatsUseCase_CacheHit(t *testing.T) {
	owner := uuid.New()
	cache := new(MockStatsCache)
	cached := &growth.Stats{TotalSkills: 9}
	cache.On("Get", mock.Anything, owner).Return(cached, nil).Once()

	s, g, a := fixtures()
	uc := stats.NewStatsUseCase(s, g, a, cache, logger.NewNopLogger())

	st, err := uc.GetStats(context.Background(), owner)
	require.NoError(t, err)
	assert.Same(t, cached, st)
	cache.AssertExpectations(t)
}

func TestStatsUseCase_CacheMissRecomputesAndStores(t *testing.T) {
	owner := uuid.New()
	want := growth.Stats{
		TotalSkills:        3,
		AvgSkillLevel:      50,
		CompletedGoals:     1,
		TotalGoals:         3,
		TotalAchievements:  1,
		GoalCompletionRate: 33,
	}
	cache := new(MockStatsCache)
	cache.On("Get", mock.Anything, owner).Return(nil, nil).Once()
	cache.On("Set", mock.Anything, owner, want).Return(nil).Once()

	s, g, a := fixtures()
	uc := stats.NewStatsUseCase(s, g, a, cache, logger.NewNopLogger())

	st, err := uc.GetStats(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, want, *st)
	cache.AssertExpectations(t)
}

func TestStatsUseCase_CacheErrorsAreNotFatal(t *testing.T) {
	owner := uuid.New()
	cache := new(MockStatsCache)
	cache.On("Get", mock.Anything, owner).Return(nil, errors.New("redis down")).Once()
	cache.On("Set", mock.Anything, owner, mock.Anything).Return(errors.New("redis down")).Once()

	s, g, a := fixtures()
	uc := stats.NewStatsUseCase(s, g, a, cache, logger.NewNopLogger())

	st, err := uc.GetStats(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalSkills)
}

func TestStatsUseCase_RepositoryErrorPropagates(t *testing.T) {
	_, g, a := fixtures()
	boom := errors.New("db down")
	uc := stats.NewStatsUseCase(listOnlySkills{err: boom}, g, a, nil, logger.NewNopLogger())

	_, err := uc.Recompute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
}
