// Package growth holds the canonical growth dataset and the manager that
// keeps it in sync between the local store and the remote CRUD service.
package growth

import (
	"errors"
	"time"
)

const (
	StorageKey = "growth-tracker-data"
	// PendingMigrationKey holds local data whose import failed until a later
	// migration succeeds.
	PendingMigrationKey = StorageKey + ":pending-migration"

	DefaultProfileName     = "My Growth Path"
	DefaultProfileBio      = "Recording every step of growth"
	DefaultAchievementIcon = "🏆"
	DefaultSkillLevel      = 50

	// TimestampLayout keeps lexicographic order equal to chronological order.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
	DateLayout      = "2006-01-02"

	MinSkillLevel = 0
	MaxSkillLevel = 100
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var (
	SkillCategories       = []string{"编程", "语言", "设计", "音乐", "运动", "其他"}
	AchievementCategories = []string{"技能突破", "目标达成", "学习里程碑", "个人成就", "其他"}
	AchievementIcons      = []string{"🏆", "⭐", "🎯", "🚀", "💡", "🎨", "💪", "📚", "🔥", "✨"}
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrEntityNotFound       = errors.New("entity not found")
	ErrInvalidField         = errors.New("invalid field")
)

type Profile struct {
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Email     *string `json:"email,omitempty"`
	Location  *string `json:"location,omitempty"`
	Website   *string `json:"website,omitempty"`
	IsPublic  bool    `json:"isPublic"`
	CreatedAt string  `json:"createdAt"`
}

type Skill struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Level     int    `json:"level"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Goal struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Deadline    string   `json:"deadline"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
	CompletedAt *string  `json:"completedAt,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	Icon        string  `json:"icon"`
	Category    string  `json:"category"`
}

// Data is the aggregate root. Collections are newest-first.
type Data struct {
	Profile      Profile       `json:"profile"`
	Skills       []Skill       `json:"skills"`
	Goals        []Goal        `json:"goals"`
	Achievements []Achievement `json:"achievements"`
}

func DefaultData(now time.Time) Data {
	return Data{
		Profile: Profile{
			Name:      DefaultProfileName,
			Bio:       strPtr(DefaultProfileBio),
			IsPublic:  false,
			CreatedAt: FormatTimestamp(now),
		},
		Skills:       []Skill{},
		Goals:        []Goal{},
		Achievements: []Achievement{},
	}
}

// Clone returns a copy that shares no memory with d.
func (d Data) Clone() Data {
	out := Data{
		Profile:      d.Profile.clone(),
		Skills:       make([]Skill, len(d.Skills)),
		Goals:        make([]Goal, len(d.Goals)),
		Achievements: make([]Achievement, len(d.Achievements)),
	}
	copy(out.Skills, d.Skills)
	for i, g := range d.Goals {
		g.Description = clonePtr(g.Description)
		g.CompletedAt = clonePtr(g.CompletedAt)
		out.Goals[i] = g
	}
	for i, a := range d.Achievements {
		a.Description = clonePtr(a.Description)
		out.Achievements[i] = a
	}
	return out
}

func (p Profile) clone() Profile {
	p.Bio = clonePtr(p.Bio)
	p.AvatarURL = clonePtr(p.AvatarURL)
	p.Email = clonePtr(p.Email)
	p.Location = clonePtr(p.Location)
	p.Website = clonePtr(p.Website)
	return p
}

// normalize fills nil collections so that decoded and freshly built values
// compare equal.
func (d *Data) normalize() {
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	if d.Goals == nil {
		d.Goals = []Goal{}
	}
	if d.Achievements == nil {
		d.Achievements = []Achievement{}
	}
	if d.Profile.Name == "" {
		d.Profile.Name = DefaultProfileName
	}
}

func ClampLevel(level int) int {
	if level < MinSkillLevel {
		return MinSkillLevel
	}
	if level > MaxSkillLevel {
		return MaxSkillLevel
	}
	return level
}

func NormalizePriority(p Priority) Priority {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	}
	return PriorityMedium
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// normalizeTimestamp rewrites any RFC 3339 value into TimestampLayout and
// leaves unparsable input untouched.
func normalizeTimestamp(s string) string {
	if s == "" {
		return s
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return FormatTimestamp(t)
	}
	return s
}

// normalizeDate reduces a date or timestamp to YYYY-MM-DD.
func normalizeDate(s string) string {
	if t, ok := parseDateOrTimestamp(s); ok {
		return t.UTC().Format(DateLayout)
	}
	return s
}

func parseDateOrTimestamp(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func strPtr(s string) *string {
	return &s
}

// optional maps "" to absent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
