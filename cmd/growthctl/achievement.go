package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/khoahotran/growth-tracker/internal/growth"
)

func achievementCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievement",
		Aliases: []string{"ach"},
		Short:   "Manage achievements",
	}

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Record an achievement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			date, _ := cmd.Flags().GetString("date")
			icon, _ := cmd.Flags().GetString("icon")
			category, _ := cmd.Flags().GetString("category")
			if date == "" {
				date = time.Now().UTC().Format(growth.DateLayout)
			}
			ach, err := a.manager().AddAchievement(cmd.Context(), growth.NewAchievement{
				Title:       args[0],
				Description: description,
				Date:        date,
				Icon:        icon,
				Category:    category,
			})
			if err != nil {
				return describe(err)
			}
			fmt.Printf("%s %s recorded (%s)\n", ach.Icon, ach.Title, ach.ID)
			return nil
		},
	}
	add.Flags().StringP("description", "d", "", "Description")
	add.Flags().String("date", "", "Date as YYYY-MM-DD (default today)")
	add.Flags().String("icon", "", "Icon (default "+growth.DefaultAchievementIcon+")")
	add.Flags().StringP("category", "c", "", "Category")
	_ = add.MarkFlagRequired("category")

	list := &cobra.Command{
		Use:   "list",
		Short: "List achievements, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTITLE\tCATEGORY")
			for _, ach := range a.manager().Data().Achievements {
				fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\n", ach.ID, ach.Date, ach.Icon, ach.Title, ach.Category)
			}
			return w.Flush()
		},
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change achievement fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ach, err := a.manager().UpdateAchievement(cmd.Context(), args[0], growth.AchievementPatch{
				Title:       stringFlag(cmd, "title"),
				Description: stringFlag(cmd, "description"),
				Date:        stringFlag(cmd, "date"),
				Icon:        stringFlag(cmd, "icon"),
				Category:    stringFlag(cmd, "category"),
			})
			if err != nil {
				return describe(err)
			}
			fmt.Printf("Updated %s %s\n", ach.Icon, ach.Title)
			return nil
		},
	}
	update.Flags().String("title", "", "Title")
	update.Flags().StringP("description", "d", "", "Description")
	update.Flags().String("date", "", "Date as YYYY-MM-DD")
	update.Flags().String("icon", "", "Icon")
	update.Flags().StringP("category", "c", "", "Category")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an achievement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.manager().DeleteAchievement(cmd.Context(), args[0]); err != nil {
				return describe(err)
			}
			fmt.Println("Achievement deleted")
			return nil
		},
	}

	cmd.AddCommand(add, list, update, del)
	return cmd
}
