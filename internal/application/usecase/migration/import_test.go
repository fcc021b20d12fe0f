package migration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/application/usecase/migration"
	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/internal/domain/profile"
	"github.com/khoahotran/growth-tracker/internal/domain/skill"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Import(ctx context.Context, ownerID uuid.UUID, b service.ImportBundle) (service.ImportResult, error) {
	args := m.Called(ctx, ownerID, b)
	return args.Get(0).(service.ImportResult), args.Error(1)
}

func bundleFor(owner uuid.UUID) service.ImportBundle {
	now := time.Now().UTC()
	return service.ImportBundle{
		Profile: &profile.Profile{ID: owner, Name: "Me"},
		Skills:  []*skill.Skill{{ID: uuid.New(), UserID: owner, Name: "Go", Category: "Programming", Level: 150}},
		Goals:   []*goal.Goal{{ID: uuid.New(), UserID: owner, Title: "Ship", Deadline: now}},
		Achievements: []*achievement.Achievement{
			{ID: uuid.New(), UserID: owner, Title: "Cert", Date: now, Category: "Education"},
		},
	}
}

func TestImport_ValidBundle(t *testing.T) {
	owner := uuid.New()
	b := bundleFor(owner)
	importer := new(MockImporter)
	importer.On("Import", mock.Anything, owner, mock.AnythingOfType("service.ImportBundle")).
		Return(service.ImportResult{Skills: 1, Goals: 1, Achievements: 1}, nil).Once()

	uc := migration.NewImportUseCase(importer, nil, logger.NewNopLogger())
	res, err := uc.Execute(context.Background(), migration.ImportInput{OwnerID: owner, Bundle: b})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skills)

	// validation normalizes rows in place
	assert.Equal(t, 100, b.Skills[0].Level)
	assert.Equal(t, goal.PriorityMedium, b.Goals[0].Priority)
	assert.Equal(t, achievement.DefaultIcon, b.Achievements[0].Icon)
	importer.AssertExpectations(t)
}

func TestImport_ForeignRowsAreRejected(t *testing.T) {
	owner := uuid.New()
	b := bundleFor(owner)
	b.Goals[0].UserID = uuid.New()

	importer := new(MockImporter)
	uc := migration.NewImportUseCase(importer, nil, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), migration.ImportInput{OwnerID: owner, Bundle: b})
	assert.ErrorIs(t, err, apperror.ErrPermission)
	importer.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything)
}

func TestImport_InvalidRowIsRejected(t *testing.T) {
	owner := uuid.New()
	b := bundleFor(owner)
	b.Achievements[0].Title = ""

	uc := migration.NewImportUseCase(new(MockImporter), nil, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), migration.ImportInput{OwnerID: owner, Bundle: b})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestImport_StoreFailure(t *testing.T) {
	owner := uuid.New()
	boom := apperror.NewInternal("tx failed", errors.New("boom"))
	importer := new(MockImporter)
	importer.On("Import", mock.Anything, owner, mock.Anything).Return(service.ImportResult{}, boom).Once()

	uc := migration.NewImportUseCase(importer, nil, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), migration.ImportInput{OwnerID: owner, Bundle: bundleFor(owner)})
	assert.ErrorIs(t, err, apperror.ErrInternal)
}
