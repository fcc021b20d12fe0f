package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/internal/domain/profile"
	"github.com/khoahotran/growth-tracker/internal/domain/skill"
	"github.com/khoahotran/growth-tracker/internal/growth"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

const Folder = "backups/growth"

// BackupUseCase uploads a JSON export of one user's growth data. Each user
// has a single snapshot that is replaced on every run.
type BackupUseCase struct {
	profiles     profile.Repository
	skills       skill.Repository
	goals        goal.Repository
	achievements achievement.Repository
	uploader     service.Uploader
	logger       logger.Logger
	now          func() time.Time
}

func NewBackupUseCase(p profile.Repository, s skill.Repository, g goal.Repository, a achievement.Repository, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		profiles:     p,
		skills:       s,
		goals:        g,
		achievements: a,
		uploader:     uploader,
		logger:       log,
		now:          time.Now,
	}
}

func (uc *BackupUseCase) Execute(ctx context.Context, userID uuid.UUID) (string, error) {
	data, err := uc.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}
	payload, err := growth.ExportJSON(data, uc.now())
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}

	publicID := fmt.Sprintf("%s.json", userID)
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(payload), Folder, publicID)
	if err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}

	uc.logger.Info("Growth backup uploaded",
		zap.String("user_id", userID.String()),
		zap.String("url", url),
		zap.Int("bytes", len(payload)),
	)
	return url, nil
}

// Snapshot reads every row of the user into the client-side dataset shape.
func (uc *BackupUseCase) Snapshot(ctx context.Context, userID uuid.UUID) (growth.Data, error) {
	var (
		prof         *profile.Profile
		skills       []*skill.Skill
		goals        []*goal.Goal
		achievements []*achievement.Achievement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := uc.profiles.GetByID(gctx, userID)
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil
		}
		prof = p
		return err
	})
	g.Go(func() (err error) {
		skills, err = uc.skills.ListByOwner(gctx, userID, 0)
		return err
	})
	g.Go(func() (err error) {
		goals, err = uc.goals.ListByOwner(gctx, userID, 0)
		return err
	})
	g.Go(func() (err error) {
		achievements, err = uc.achievements.ListByOwner(gctx, userID, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return growth.Data{}, err
	}

	data := growth.DefaultData(uc.now())
	if prof != nil {
		data.Profile = growth.Profile{
			Name:      prof.Name,
			Bio:       prof.Bio,
			AvatarURL: prof.AvatarURL,
			Email:     prof.Email,
			Location:  prof.Location,
			Website:   prof.Website,
			IsPublic:  prof.IsPublic,
			CreatedAt: growth.FormatTimestamp(prof.CreatedAt),
		}
	}
	for _, s := range skills {
		data.Skills = append(data.Skills, growth.Skill{
			ID:        s.ID.String(),
			Name:      s.Name,
			Category:  s.Category,
			Level:     s.Level,
			CreatedAt: growth.FormatTimestamp(s.CreatedAt),
			UpdatedAt: growth.FormatTimestamp(s.UpdatedAt),
		})
	}
	for _, gl := range goals {
		row := growth.Goal{
			ID:          gl.ID.String(),
			Title:       gl.Title,
			Description: gl.Description,
			Deadline:    gl.Deadline.UTC().Format(growth.DateLayout),
			Priority:    growth.Priority(gl.Priority),
			Completed:   gl.Completed,
			CreatedAt:   growth.FormatTimestamp(gl.CreatedAt),
		}
		if gl.CompletedAt != nil {
			ts := growth.FormatTimestamp(*gl.CompletedAt)
			row.CompletedAt = &ts
		}
		data.Goals = append(data.Goals, row)
	}
	for _, a := range achievements {
		data.Achievements = append(data.Achievements, growth.Achievement{
			ID:          a.ID.String(),
			Title:       a.Title,
			Description: a.Description,
			Date:        a.Date.UTC().Format(growth.DateLayout),
			Icon:        a.Icon,
			Category:    a.Category,
		})
	}
	return data, nil
}
