package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/internal/domain/profile"
	"github.com/khoahotran/growth-tracker/internal/domain/skill"
)

type ImportBundle struct {
	Profile      *profile.Profile
	Skills       []*skill.Skill
	Goals        []*goal.Goal
	Achievements []*achievement.Achievement
}

type ImportResult struct {
	Skills       int
	Goals        int
	Achievements int
}

// Importer writes a bundle in one transaction. Rows whose id already exists
// are skipped, so repeating an import is harmless.
type Importer interface {
	Import(ctx context.Context, ownerID uuid.UUID, b ImportBundle) (ImportResult, error)
}
