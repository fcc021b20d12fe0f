package growth

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const ExportVersion = "1.0"

type exportBundle struct {
	Data
	ExportedAt string `json:"exportedAt"`
	Version    string `json:"version"`
}

// ExportJSON renders the dataset as an indented backup document.
func ExportJSON(d Data, now time.Time) ([]byte, error) {
	d.normalize()
	return json.MarshalIndent(exportBundle{
		Data:       d,
		ExportedAt: FormatTimestamp(now),
		Version:    ExportVersion,
	}, "", "  ")
}

// ExportMarkdown renders a human readable report.
func ExportMarkdown(d Data, now time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("# %s - Growth Report", d.Profile.Name)
	line("")
	bio := deref(d.Profile.Bio)
	if bio == "" {
		bio = DefaultProfileBio
	}
	line("> %s", bio)
	line("")
	line("Exported: %s", now.UTC().Format(DateLayout))
	line("")

	st := ComputeStats(d)
	line("## 📊 Overview")
	line("")
	line("- Skills: %d", st.TotalSkills)
	line("- Average level: %d%%", st.AvgSkillLevel)
	line("- Goals completed: %d/%d", st.CompletedGoals, st.TotalGoals)
	line("- Achievements: %d", st.TotalAchievements)
	line("")

	if len(d.Skills) > 0 {
		line("## 📚 Skills")
		line("")
		skills := append([]Skill{}, d.Skills...)
		sort.SliceStable(skills, func(i, j int) bool { return skills[i].Level > skills[j].Level })
		for _, s := range skills {
			line("- **%s** [%s] %s %d%%", s.Name, s.Category, levelBar(s.Level), s.Level)
		}
		line("")
	}

	if len(d.Goals) > 0 {
		line("## 🎯 Goals")
		line("")
		var active, done []Goal
		for _, g := range d.Goals {
			if g.Completed {
				done = append(done, g)
			} else {
				active = append(active, g)
			}
		}
		if len(active) > 0 {
			line("### In progress")
			for _, g := range active {
				line("- [ ] **%s** - due %s", g.Title, normalizeDate(g.Deadline))
				if g.Description != nil {
					line("  - %s", *g.Description)
				}
			}
			line("")
		}
		if len(done) > 0 {
			line("### Completed")
			for _, g := range done {
				at := g.Deadline
				if g.CompletedAt != nil {
					at = *g.CompletedAt
				}
				line("- [x] **%s** - completed %s", g.Title, normalizeDate(at))
			}
			line("")
		}
	}

	if len(d.Achievements) > 0 {
		line("## 🏆 Achievements")
		line("")
		achievements := append([]Achievement{}, d.Achievements...)
		sort.SliceStable(achievements, func(i, j int) bool {
			ti, _ := parseDateOrTimestamp(achievements[i].Date)
			tj, _ := parseDateOrTimestamp(achievements[j].Date)
			return ti.After(tj)
		})
		for _, a := range achievements {
			icon := a.Icon
			if icon == "" {
				icon = DefaultAchievementIcon
			}
			line("- %s **%s** - %s", icon, a.Title, normalizeDate(a.Date))
			if a.Description != nil {
				line("  - %s", *a.Description)
			}
		}
		line("")
	}

	line("---")
	b.WriteString("*Generated by growth-tracker*")
	return b.String()
}

func levelBar(level int) string {
	filled := ClampLevel(level) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
