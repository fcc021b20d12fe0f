package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khoahotran/growth-tracker/internal/growth"
)

func skillCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Manage skills",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			level, _ := cmd.Flags().GetInt("level")
			s, err := a.manager().AddSkill(cmd.Context(), growth.NewSkill{
				Name:     args[0],
				Category: category,
				Level:    level,
			})
			if err != nil {
				return describe(err)
			}
			fmt.Printf("Added skill %s (%s) at level %d\n", s.Name, s.ID, s.Level)
			return nil
		},
	}
	add.Flags().StringP("category", "c", "", "Category (default "+growth.SkillCategories[0]+")")
	add.Flags().IntP("level", "l", growth.DefaultSkillLevel, "Level from 0 to 100")

	list := &cobra.Command{
		Use:   "list",
		Short: "List skills, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tLEVEL")
			for _, s := range a.manager().Data().Skills {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Category, s.Level)
			}
			return w.Flush()
		},
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change skill fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.manager().UpdateSkill(cmd.Context(), args[0], growth.SkillPatch{
				Name:     stringFlag(cmd, "name"),
				Category: stringFlag(cmd, "category"),
				Level:    intFlag(cmd, "level"),
			})
			if err != nil {
				return describe(err)
			}
			fmt.Printf("Updated skill %s\n", s.Name)
			return nil
		},
	}
	update.Flags().String("name", "", "Skill name")
	update.Flags().StringP("category", "c", "", "Category")
	update.Flags().IntP("level", "l", 0, "Level from 0 to 100")

	level := &cobra.Command{
		Use:   "level <id> <level>",
		Short: "Set a skill's level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lvl int
			if _, err := fmt.Sscanf(args[1], "%d", &lvl); err != nil {
				return fmt.Errorf("level must be a number: %w", err)
			}
			s, err := a.manager().SetSkillLevel(cmd.Context(), args[0], lvl)
			if err != nil {
				return describe(err)
			}
			fmt.Printf("%s is now at level %d %s\n", s.Name, s.Level, strings.Repeat("█", s.Level/10))
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.manager().DeleteSkill(cmd.Context(), args[0]); err != nil {
				return describe(err)
			}
			fmt.Println("Skill deleted")
			return nil
		},
	}

	cmd.AddCommand(add, list, update, level, del)
	return cmd
}
