package http

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/internal/domain/profile"
	"github.com/khoahotran/growth-tracker/internal/domain/skill"
	"github.com/khoahotran/growth-tracker/internal/growth"
)

const dateLayout = "2006-01-02"

// Auth DTOs

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SessionDTO struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
}

// Profile DTOs

type ProfileDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Email     *string `json:"email"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	IsPublic  bool    `json:"is_public"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ProfileRequest struct {
	ID        string  `json:"id" binding:"required,uuid"`
	Name      string  `json:"name" binding:"required"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	IsPublic  bool    `json:"is_public"`
	CreatedAt string  `json:"created_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		ID:        p.ID.String(),
		Name:      p.Name,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		Email:     p.Email,
		Location:  p.Location,
		Website:   p.Website,
		IsPublic:  p.IsPublic,
		CreatedAt: growth.FormatTimestamp(p.CreatedAt),
		UpdatedAt: growth.FormatTimestamp(p.UpdatedAt),
	}
}

func (req *ProfileRequest) ToDomain() (*profile.Profile, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid profile id: %w", err)
	}
	p := &profile.Profile{
		ID:        id,
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Email:     req.Email,
		Location:  req.Location,
		Website:   req.Website,
		IsPublic:  req.IsPublic,
	}
	if t := parseTimestamp(req.CreatedAt); t != nil {
		p.CreatedAt = *t
	}
	return p, nil
}

// Skill DTOs

type SkillDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Level     int    `json:"level"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SkillRequest struct {
	ID        string `json:"id" binding:"omitempty,uuid"`
	UserID    string `json:"user_id" binding:"required,uuid"`
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Level     int    `json:"level"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func ToSkillDTO(s *skill.Skill) SkillDTO {
	return SkillDTO{
		ID:        s.ID.String(),
		UserID:    s.UserID.String(),
		Name:      s.Name,
		Category:  s.Category,
		Level:     s.Level,
		CreatedAt: growth.FormatTimestamp(s.CreatedAt),
		UpdatedAt: growth.FormatTimestamp(s.UpdatedAt),
	}
}

func (req *SkillRequest) ToDomain() (*skill.Skill, error) {
	ids, err := parseIDs(req.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	s := &skill.Skill{
		ID:       ids[0],
		UserID:   ids[1],
		Name:     req.Name,
		Category: req.Category,
		Level:    req.Level,
	}
	if t := parseTimestamp(req.CreatedAt); t != nil {
		s.CreatedAt = *t
	}
	if t := parseTimestamp(req.UpdatedAt); t != nil {
		s.UpdatedAt = *t
	}
	return s, nil
}

// Goal DTOs

type GoalDTO struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Deadline    string  `json:"deadline"`
	Priority    string  `json:"priority"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completed_at"`
	CreatedAt   string  `json:"created_at"`
}

type GoalRequest struct {
	ID          string  `json:"id" binding:"omitempty,uuid"`
	UserID      string  `json:"user_id" binding:"required,uuid"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Deadline    string  `json:"deadline" binding:"required"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completed_at"`
	CreatedAt   string  `json:"created_at"`
}

func ToGoalDTO(g *goal.Goal) GoalDTO {
	dto := GoalDTO{
		ID:          g.ID.String(),
		UserID:      g.UserID.String(),
		Title:       g.Title,
		Description: g.Description,
		Deadline:    g.Deadline.UTC().Format(dateLayout),
		Priority:    g.Priority,
		Completed:   g.Completed,
		CreatedAt:   growth.FormatTimestamp(g.CreatedAt),
	}
	if g.CompletedAt != nil {
		ts := growth.FormatTimestamp(*g.CompletedAt)
		dto.CompletedAt = &ts
	}
	return dto
}

func (req *GoalRequest) ToDomain() (*goal.Goal, error) {
	ids, err := parseIDs(req.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline: %w", err)
	}
	g := &goal.Goal{
		ID:          ids[0],
		UserID:      ids[1],
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Priority:    req.Priority,
		Completed:   req.Completed,
	}
	if req.CompletedAt != nil {
		g.CompletedAt = parseTimestamp(*req.CompletedAt)
	}
	if t := parseTimestamp(req.CreatedAt); t != nil {
		g.CreatedAt = *t
	}
	return g, nil
}

// Achievement DTOs

type AchievementDTO struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	Icon        string  `json:"icon"`
	Category    string  `json:"category"`
}

type AchievementRequest struct {
	ID          string  `json:"id" binding:"omitempty,uuid"`
	UserID      string  `json:"user_id" binding:"required,uuid"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" binding:"required"`
	Icon        string  `json:"icon"`
	Category    string  `json:"category" binding:"required"`
}

func ToAchievementDTO(a *achievement.Achievement) AchievementDTO {
	return AchievementDTO{
		ID:          a.ID.String(),
		UserID:      a.UserID.String(),
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date.UTC().Format(dateLayout),
		Icon:        a.Icon,
		Category:    a.Category,
	}
}

func (req *AchievementRequest) ToDomain() (*achievement.Achievement, error) {
	ids, err := parseIDs(req.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	return &achievement.Achievement{
		ID:          ids[0],
		UserID:      ids[1],
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Icon:        req.Icon,
		Category:    req.Category,
	}, nil
}

// Migration DTOs

type ImportRequest struct {
	Profile      *ProfileRequest      `json:"profile"`
	Skills       []SkillRequest       `json:"skills" binding:"dive"`
	Goals        []GoalRequest        `json:"goals" binding:"dive"`
	Achievements []AchievementRequest `json:"achievements" binding:"dive"`
}

type ImportResultDTO struct {
	Skills       int `json:"skills"`
	Goals        int `json:"goals"`
	Achievements int `json:"achievements"`
}

// ToBundle converts every row, failing on the first malformed one. Rows
// without timestamps are stamped with now.
func (req *ImportRequest) ToBundle(now time.Time) (service.ImportBundle, error) {
	var b service.ImportBundle
	if req.Profile != nil {
		p, err := req.Profile.ToDomain()
		if err != nil {
			return b, err
		}
		b.Profile = p
	}
	for i := range req.Skills {
		s, err := req.Skills[i].ToDomain()
		if err != nil {
			return b, fmt.Errorf("skill %d: %w", i, err)
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = s.CreatedAt
		}
		b.Skills = append(b.Skills, s)
	}
	for i := range req.Goals {
		g, err := req.Goals[i].ToDomain()
		if err != nil {
			return b, fmt.Errorf("goal %d: %w", i, err)
		}
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
		}
		if g.Completed && g.CompletedAt == nil {
			g.CompletedAt = &now
		}
		b.Goals = append(b.Goals, g)
	}
	for i := range req.Achievements {
		a, err := req.Achievements[i].ToDomain()
		if err != nil {
			return b, fmt.Errorf("achievement %d: %w", i, err)
		}
		a.CreatedAt = now
		b.Achievements = append(b.Achievements, a)
	}
	return b, nil
}

// parseIDs parses an optional row id followed by the required owner id.
// A missing row id stays uuid.Nil so the use case can assign one.
func parseIDs(id, userID string) ([2]uuid.UUID, error) {
	var out [2]uuid.UUID
	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return out, fmt.Errorf("invalid id: %w", err)
		}
		out[0] = parsed
	}
	owner, err := uuid.Parse(userID)
	if err != nil {
		return out, fmt.Errorf("invalid user_id: %w", err)
	}
	out[1] = owner
	return out, nil
}

// parseDate accepts a calendar date or a full timestamp and keeps only the
// UTC date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
