package growth

import (
	"math"
	"sort"
	"time"
)

type Stats struct {
	TotalSkills        int `json:"totalSkills"`
	AvgSkillLevel      int `json:"avgSkillLevel"`
	CompletedGoals     int `json:"completedGoals"`
	TotalGoals         int `json:"totalGoals"`
	TotalAchievements  int `json:"totalAchievements"`
	GoalCompletionRate int `json:"goalCompletionRate"`
}

func ComputeStats(d Data) Stats {
	st := Stats{
		TotalSkills:       len(d.Skills),
		TotalGoals:        len(d.Goals),
		TotalAchievements: len(d.Achievements),
	}
	if st.TotalSkills > 0 {
		sum := 0
		for _, s := range d.Skills {
			sum += s.Level
		}
		st.AvgSkillLevel = roundRatio(sum, st.TotalSkills, 1)
	}
	for _, g := range d.Goals {
		if g.Completed {
			st.CompletedGoals++
		}
	}
	if st.TotalGoals > 0 {
		st.GoalCompletionRate = roundRatio(st.CompletedGoals, st.TotalGoals, 100)
	}
	return st
}

// roundRatio rounds scale*num/den half away from zero.
func roundRatio(num, den, scale int) int {
	return int(math.Round(float64(num*scale) / float64(den)))
}

type YearReview struct {
	Year               int           `json:"year"`
	NewSkills          int           `json:"newSkills"`
	GoalsSet           int           `json:"goalsSet"`
	GoalsCompleted     int           `json:"goalsCompleted"`
	Achievements       int           `json:"achievements"`
	TopSkills          []Skill       `json:"topSkills"`
	RecentAchievements []Achievement `json:"recentAchievements"`
}

// ComputeYearReview filters skills and goals by createdAt and achievements by
// date, all within the UTC calendar year. TopSkills is all-time.
func ComputeYearReview(d Data, year int) YearReview {
	inYear := func(s string) bool {
		t, ok := parseDateOrTimestamp(s)
		return ok && t.UTC().Year() == year
	}

	r := YearReview{Year: year}
	for _, s := range d.Skills {
		if inYear(s.CreatedAt) {
			r.NewSkills++
		}
	}
	for _, g := range d.Goals {
		if inYear(g.CreatedAt) {
			r.GoalsSet++
			if g.Completed {
				r.GoalsCompleted++
			}
		}
	}
	var yearAchievements []Achievement
	for _, a := range d.Achievements {
		if inYear(a.Date) {
			yearAchievements = append(yearAchievements, a)
		}
	}
	r.Achievements = len(yearAchievements)
	if n := len(yearAchievements); n > 5 {
		yearAchievements = yearAchievements[n-5:]
	}
	r.RecentAchievements = append([]Achievement{}, yearAchievements...)

	top := append([]Skill{}, d.Skills...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Level > top[j].Level })
	if len(top) > 3 {
		top = top[:3]
	}
	r.TopSkills = top
	return r
}

type Reminder struct {
	Goal     Goal `json:"goal"`
	DaysLeft int  `json:"daysLeft"`
}

const (
	reminderHorizonDays = 7
	reminderOverdueDays = 3
)

// ComputeReminders lists incomplete goals due within a week or overdue by
// at most three days, most urgent first.
func ComputeReminders(goals []Goal, now time.Time) []Reminder {
	today := truncateDay(now)
	out := []Reminder{}
	for _, g := range goals {
		if g.Completed {
			continue
		}
		deadline, ok := parseDateOrTimestamp(g.Deadline)
		if !ok {
			continue
		}
		days := int(truncateDay(deadline).Sub(today).Hours() / 24)
		if days > reminderHorizonDays || days < -reminderOverdueDays {
			continue
		}
		out = append(out, Reminder{Goal: g, DaysLeft: days})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysLeft < out[j].DaysLeft })
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
