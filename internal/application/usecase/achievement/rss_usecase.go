package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/internal/domain/profile"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

const feedItemLimit = 20

// PublicProfileReader is satisfied by the profile use case.
type PublicProfileReader interface {
	PublicProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error)
}

type RSSUseCase struct {
	profiles PublicProfileReader
	repo     achievement.Repository
	baseURL  string
	logger   logger.Logger
}

func NewRSSUseCase(profiles PublicProfileReader, repo achievement.Repository, baseURL string, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{profiles: profiles, repo: repo, baseURL: baseURL, logger: log}
}

// Execute builds the achievements feed of a public profile. Private or
// missing profiles are reported as not found.
func (uc *RSSUseCase) Execute(ctx context.Context, profileID uuid.UUID) (*feeds.Feed, error) {
	p, err := uc.profiles.PublicProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	items, err := uc.repo.ListByOwner(ctx, profileID, feedItemLimit)
	if err != nil {
		uc.logger.Error("Failed to list achievements for RSS", err, zap.String("user_id", profileID.String()))
		return nil, err
	}

	link := fmt.Sprintf("%s/public/profiles/%s/achievements.rss", uc.baseURL, profileID)
	feed := &feeds.Feed{
		Title:   fmt.Sprintf("%s - Achievements", p.Name),
		Link:    &feeds.Link{Href: link},
		Author:  &feeds.Author{Name: p.Name},
		Created: time.Now(),
	}
	if p.Bio != nil {
		feed.Description = *p.Bio
	}

	for _, a := range items {
		item := &feeds.Item{
			Id:      a.ID.String(),
			Title:   fmt.Sprintf("%s %s", a.Icon, a.Title),
			Link:    &feeds.Link{Href: link},
			Created: a.Date,
		}
		if a.Description != nil {
			item.Description = *a.Description
		}
		feed.Items = append(feed.Items, item)
	}
	return feed, nil
}
