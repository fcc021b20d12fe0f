package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	goalUC "github.com/khoahotran/growth-tracker/internal/application/usecase/goal"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Save(ctx context.Context, g *goal.Goal) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockGoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockGoalRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *MockGoalRepository) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*goal.Goal, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*goal.Goal), args.Error(1)
}

func (m *MockGoalRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*goal.Goal, error) {
	args := m.Called(ctx, ownerID, limit)
	return args.Get(0).([]*goal.Goal), args.Error(1)
}

func newUseCase(repo goal.Repository) *goalUC.GoalUseCase {
	return goalUC.NewGoalUseCase(repo, nil, logger.NewNopLogger())
}

func TestCreateGoal_DefaultsAndValidation(t *testing.T) {
	repo := new(MockGoalRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*goal.Goal")).Return(nil).Once()
	uc := newUseCase(repo)

	g, err := uc.CreateGoal(context.Background(), goalUC.CreateGoalInput{
		OwnerID:  uuid.New(),
		Title:    "Learn Rust",
		Deadline: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, g.ID)
	assert.Equal(t, goal.PriorityMedium, g.Priority)
	assert.Nil(t, g.CompletedAt)
	repo.AssertExpectations(t)

	_, err = uc.CreateGoal(context.Background(), goalUC.CreateGoalInput{OwnerID: uuid.New(), Title: "No deadline"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.CreateGoal(context.Background(), goalUC.CreateGoalInput{
		OwnerID: uuid.New(), Title: "Bad", Deadline: time.Now(), Priority: "urgent",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestUpdateGoal_CompletionTransitions(t *testing.T) {
	owner, id := uuid.New(), uuid.New()
	deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := &goal.Goal{ID: id, UserID: owner, Title: "Run", Deadline: deadline, Priority: goal.PriorityLow}

	repo := new(MockGoalRepository)
	repo.On("FindByID", mock.Anything, id, owner).Return(stored, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*goal.Goal")).Return(nil)
	uc := newUseCase(repo)

	done, err := uc.UpdateGoal(context.Background(), goalUC.UpdateGoalInput{
		GoalID: id, OwnerID: owner, Title: "Run", Deadline: deadline, Priority: goal.PriorityLow, Completed: true,
	})
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	stamped := *done.CompletedAt

	again, err := uc.UpdateGoal(context.Background(), goalUC.UpdateGoalInput{
		GoalID: id, OwnerID: owner, Title: "Run!", Deadline: deadline, Priority: goal.PriorityLow, Completed: true,
	})
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, stamped, *again.CompletedAt)

	reopened, err := uc.UpdateGoal(context.Background(), goalUC.UpdateGoalInput{
		GoalID: id, OwnerID: owner, Title: "Run", Deadline: deadline, Priority: goal.PriorityLow,
	})
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)
}

func TestUpdateGoal_MissingGoal(t *testing.T) {
	owner, id := uuid.New(), uuid.New()
	repo := new(MockGoalRepository)
	repo.On("FindByID", mock.Anything, id, owner).Return(nil, apperror.NewNotFound("goal", id.String())).Once()
	uc := newUseCase(repo)

	_, err := uc.UpdateGoal(context.Background(), goalUC.UpdateGoalInput{GoalID: id, OwnerID: owner, Title: "x", Deadline: time.Now()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
