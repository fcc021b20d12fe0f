package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/khoahotran/growth-tracker/internal/growth"
)

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals and averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.manager().Stats()
			fmt.Printf("Skills:          %d (avg level %d)\n", st.TotalSkills, st.AvgSkillLevel)
			fmt.Printf("Goals:           %d/%d completed (%d%%)\n", st.CompletedGoals, st.TotalGoals, st.GoalCompletionRate)
			fmt.Printf("Achievements:    %d\n", st.TotalAchievements)
			return nil
		},
	}
}

func reviewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Summarize one calendar year",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			r := a.manager().YearReview(year)
			fmt.Printf("%d in review\n\n", r.Year)
			fmt.Printf("New skills:      %d\n", r.NewSkills)
			fmt.Printf("Goals set:       %d (%d completed)\n", r.GoalsSet, r.GoalsCompleted)
			fmt.Printf("Achievements:    %d\n", r.Achievements)
			if len(r.TopSkills) > 0 {
				fmt.Println("\nTop skills:")
				for _, s := range r.TopSkills {
					fmt.Printf("  %-20s %3d\n", s.Name, s.Level)
				}
			}
			if len(r.RecentAchievements) > 0 {
				fmt.Println("\nHighlights:")
				for _, ach := range r.RecentAchievements {
					fmt.Printf("  %s %s (%s)\n", ach.Icon, ach.Title, ach.Date)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntP("year", "y", 0, "Year to review (default current year)")
	return cmd
}

func remindersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "List open goals due soon or recently overdue",
		RunE: func(cmd *cobra.Command, args []string) error {
			reminders := a.manager().Reminders()
			if len(reminders) == 0 {
				fmt.Println("Nothing due this week")
				return nil
			}
			for _, r := range reminders {
				switch {
				case r.DaysLeft < 0:
					fmt.Printf("⚠️  %s is %d day(s) overdue\n", r.Goal.Title, -r.DaysLeft)
				case r.DaysLeft == 0:
					fmt.Printf("⏰ %s is due today\n", r.Goal.Title)
				default:
					fmt.Printf("📅 %s is due in %d day(s)\n", r.Goal.Title, r.DaysLeft)
				}
			}
			return nil
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all data as JSON or a Markdown report",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("output")

			data := a.manager().Data()
			now := time.Now()
			var payload []byte
			switch format {
			case "json":
				b, err := growth.ExportJSON(data, now)
				if err != nil {
					return err
				}
				payload = b
			case "md", "markdown":
				payload = []byte(growth.ExportMarkdown(data, now))
			default:
				return fmt.Errorf("unknown format %q, want json or md", format)
			}

			if out == "" || out == "-" {
				_, err := os.Stdout.Write(payload)
				return err
			}
			if err := os.WriteFile(out, payload, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Printf("Exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "json", "json or md")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	return cmd
}
