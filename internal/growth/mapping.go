package growth

import "github.com/khoahotran/growth-tracker/internal/remote"

// Every field crosses the remote boundary through one of these functions;
// nothing is passed through implicitly.

func profileFromRow(row *remote.ProfileRow, fallback Profile) Profile {
	if row == nil {
		return fallback
	}
	name := row.Name
	if name == "" {
		name = DefaultProfileName
	}
	return Profile{
		Name:      name,
		Bio:       optional(deref(row.Bio)),
		AvatarURL: optional(deref(row.AvatarURL)),
		Email:     optional(deref(row.Email)),
		Location:  optional(deref(row.Location)),
		Website:   optional(deref(row.Website)),
		IsPublic:  row.IsPublic,
		CreatedAt: normalizeTimestamp(row.CreatedAt),
	}
}

func profileToRow(ownerID string, p Profile, updatedAt string) remote.ProfileRow {
	return remote.ProfileRow{
		ID:        ownerID,
		Name:      p.Name,
		Bio:       clonePtr(p.Bio),
		AvatarURL: clonePtr(p.AvatarURL),
		Email:     clonePtr(p.Email),
		Location:  clonePtr(p.Location),
		Website:   clonePtr(p.Website),
		IsPublic:  p.IsPublic,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func skillFromRow(row remote.SkillRow) Skill {
	return Skill{
		ID:        row.ID,
		Name:      row.Name,
		Category:  row.Category,
		Level:     ClampLevel(row.Level),
		CreatedAt: normalizeTimestamp(row.CreatedAt),
		UpdatedAt: normalizeTimestamp(row.UpdatedAt),
	}
}

func skillToRow(ownerID string, s Skill) remote.SkillRow {
	return remote.SkillRow{
		ID:        s.ID,
		UserID:    ownerID,
		Name:      s.Name,
		Category:  s.Category,
		Level:     ClampLevel(s.Level),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func goalFromRow(row remote.GoalRow) Goal {
	var completedAt *string
	if row.CompletedAt != nil && *row.CompletedAt != "" {
		completedAt = strPtr(normalizeTimestamp(*row.CompletedAt))
	}
	return Goal{
		ID:          row.ID,
		Title:       row.Title,
		Description: optional(deref(row.Description)),
		Deadline:    normalizeDate(row.Deadline),
		Priority:    NormalizePriority(Priority(row.Priority)),
		Completed:   row.Completed,
		CompletedAt: completedAt,
		CreatedAt:   normalizeTimestamp(row.CreatedAt),
	}
}

func goalToRow(ownerID string, g Goal) remote.GoalRow {
	return remote.GoalRow{
		ID:          g.ID,
		UserID:      ownerID,
		Title:       g.Title,
		Description: clonePtr(g.Description),
		Deadline:    normalizeDate(g.Deadline),
		Priority:    string(NormalizePriority(g.Priority)),
		Completed:   g.Completed,
		CompletedAt: clonePtr(g.CompletedAt),
		CreatedAt:   g.CreatedAt,
	}
}

func achievementFromRow(row remote.AchievementRow) Achievement {
	icon := row.Icon
	if icon == "" {
		icon = DefaultAchievementIcon
	}
	return Achievement{
		ID:          row.ID,
		Title:       row.Title,
		Description: optional(deref(row.Description)),
		Date:        normalizeDate(row.Date),
		Icon:        icon,
		Category:    row.Category,
	}
}

func achievementToRow(ownerID string, a Achievement) remote.AchievementRow {
	icon := a.Icon
	if icon == "" {
		icon = DefaultAchievementIcon
	}
	return remote.AchievementRow{
		ID:          a.ID,
		UserID:      ownerID,
		Title:       a.Title,
		Description: clonePtr(a.Description),
		Date:        normalizeDate(a.Date),
		Icon:        icon,
		Category:    a.Category,
	}
}

// toBundle re-stamps every local entity with ownerID, keeping ids and
// timestamps.
func toBundle(ownerID string, d Data, now string) remote.Bundle {
	b := remote.Bundle{
		Profile:      profileToRow(ownerID, d.Profile, now),
		Skills:       make([]remote.SkillRow, 0, len(d.Skills)),
		Goals:        make([]remote.GoalRow, 0, len(d.Goals)),
		Achievements: make([]remote.AchievementRow, 0, len(d.Achievements)),
	}
	for _, s := range d.Skills {
		b.Skills = append(b.Skills, skillToRow(ownerID, s))
	}
	for _, g := range d.Goals {
		b.Goals = append(b.Goals, goalToRow(ownerID, g))
	}
	for _, a := range d.Achievements {
		b.Achievements = append(b.Achievements, achievementToRow(ownerID, a))
	}
	return b
}
