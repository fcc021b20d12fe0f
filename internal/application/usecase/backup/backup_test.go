package backup_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/growth-tracker/internal/application/usecase/backup"
	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/internal/domain/profile"
	"github.com/khoahotran/growth-tracker/internal/domain/skill"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error) {
	body, _ := io.ReadAll(file)
	args := m.Called(ctx, body, folder, publicID)
	return args.String(0), args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

type stubProfiles struct {
	profile.Repository
	p *profile.Profile
}

func (r stubProfiles) GetByID(context.Context, uuid.UUID) (*profile.Profile, error) {
	if r.p == nil {
		return nil, profile.ErrProfileNotFound
	}
	return r.p, nil
}

type stubSkills struct {
	skill.Repository
	rows []*skill.Skill
	err  error
}

func (r stubSkills) ListByOwner(context.Context, uuid.UUID, int) ([]*skill.Skill, error) {
	return r.rows, r.err
}

type stubGoals struct {
	goal.Repository
	rows []*goal.Goal
}

func (r stubGoals) ListByOwner(context.Context, uuid.UUID, int) ([]*goal.Goal, error) {
	return r.rows, nil
}

type stubAchievements struct {
	achievement.Repository
	rows []*achievement.Achievement
}

func (r stubAchievements) ListByOwner(context.Context, uuid.UUID, int) ([]*achievement.Achievement, error) {
	return r.rows, nil
}

func TestSnapshot_ConvertsRows(t *testing.T) {
	owner := uuid.New()
	created := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	done := created.Add(48 * time.Hour)
	bio := "learning in public"

	uc := backup.NewBackupUseCase(
		stubProfiles{p: &profile.Profile{ID: owner, Name: "Ann", Bio: &bio, IsPublic: true, CreatedAt: created}},
		stubSkills{rows: []*skill.Skill{{ID: uuid.New(), Name: "Go", Category: "编程", Level: 80, CreatedAt: created, UpdatedAt: created}}},
		stubGoals{rows: []*goal.Goal{{ID: uuid.New(), Title: "Ship", Deadline: created, Priority: "high", Completed: true, CompletedAt: &done, CreatedAt: created}}},
		stubAchievements{rows: []*achievement.Achievement{{ID: uuid.New(), Title: "Talk", Date: created, Icon: "🎤", Category: "其他"}}},
		new(MockUploader),
		logger.NewNopLogger(),
	)

	d, err := uc.Snapshot(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, "Ann", d.Profile.Name)
	assert.Equal(t, "2024-03-01T08:30:00.000Z", d.Profile.CreatedAt)
	require.Len(t, d.Skills, 1)
	assert.Equal(t, 80, d.Skills[0].Level)
	require.Len(t, d.Goals, 1)
	assert.Equal(t, "2024-03-01", d.Goals[0].Deadline)
	require.NotNil(t, d.Goals[0].CompletedAt)
	assert.Equal(t, "2024-03-03T08:30:00.000Z", *d.Goals[0].CompletedAt)
	require.Len(t, d.Achievements, 1)
	assert.Equal(t, "2024-03-01", d.Achievements[0].Date)
}

func TestSnapshot_MissingProfileUsesDefault(t *testing.T) {
	uc := backup.NewBackupUseCase(stubProfiles{}, stubSkills{}, stubGoals{}, stubAchievements{}, new(MockUploader), logger.NewNopLogger())

	d, err := uc.Snapshot(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "My Growth Path", d.Profile.Name)
	assert.Empty(t, d.Skills)
}

func TestExecute_UploadsJSONExport(t *testing.T) {
	owner := uuid.New()
	up := new(MockUploader)
	up.On("Upload", mock.Anything, mock.MatchedBy(func(body []byte) bool {
		var doc map[string]any
		if err := json.Unmarshal(body, &doc); err != nil {
			return false
		}
		skills, ok := doc["skills"].([]any)
		return ok && len(skills) == 1 && doc["version"] == "1.0"
	}), backup.Folder, owner.String()+".json").Return("https://cdn.example/backup.json", nil).Once()

	uc := backup.NewBackupUseCase(stubProfiles{}, stubSkills{rows: []*skill.Skill{{ID: uuid.New(), Name: "Go"}}}, stubGoals{}, stubAchievements{}, up, logger.NewNopLogger())

	url, err := uc.Execute(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/backup.json", url)
	up.AssertExpectations(t)
}

func TestExecute_RepoErrorSkipsUpload(t *testing.T) {
	up := new(MockUploader)
	boom := errors.New("db down")
	uc := backup.NewBackupUseCase(stubProfiles{}, stubSkills{err: boom}, stubGoals{}, stubAchievements{}, up, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	up.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
