package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khoahotran/growth-tracker/internal/growth"
)

func goalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			deadline, _ := cmd.Flags().GetString("deadline")
			priority, _ := cmd.Flags().GetString("priority")
			g, err := a.manager().AddGoal(cmd.Context(), growth.NewGoal{
				Title:       args[0],
				Description: description,
				Deadline:    deadline,
				Priority:    growth.Priority(priority),
			})
			if err != nil {
				return describe(err)
			}
			fmt.Printf("Added goal %s (%s), due %s\n", g.Title, g.ID, g.Deadline)
			return nil
		},
	}
	add.Flags().StringP("description", "d", "", "Description")
	add.Flags().String("deadline", "", "Deadline as YYYY-MM-DD")
	add.Flags().StringP("priority", "p", string(growth.PriorityMedium), "low, medium or high")
	_ = add.MarkFlagRequired("deadline")

	list := &cobra.Command{
		Use:   "list",
		Short: "List goals, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tDEADLINE\tPRIORITY\tDONE")
			for _, g := range a.manager().Data().Goals {
				done := ""
				if g.Completed {
					done = "✓"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", g.ID, g.Title, g.Deadline, g.Priority, done)
			}
			return w.Flush()
		},
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change goal fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := growth.GoalPatch{
				Title:       stringFlag(cmd, "title"),
				Description: stringFlag(cmd, "description"),
				Deadline:    stringFlag(cmd, "deadline"),
				Completed:   boolFlag(cmd, "completed"),
			}
			if p := stringFlag(cmd, "priority"); p != nil {
				priority := growth.Priority(*p)
				patch.Priority = &priority
			}
			g, err := a.manager().UpdateGoal(cmd.Context(), args[0], patch)
			if err != nil {
				return describe(err)
			}
			fmt.Printf("Updated goal %s\n", g.Title)
			return nil
		},
	}
	update.Flags().String("title", "", "Title")
	update.Flags().StringP("description", "d", "", "Description")
	update.Flags().String("deadline", "", "Deadline as YYYY-MM-DD")
	update.Flags().StringP("priority", "p", "", "low, medium or high")
	update.Flags().Bool("completed", false, "Mark completed or, with =false, reopen")

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a goal between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.manager().ToggleGoalComplete(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			if g.Completed {
				fmt.Printf("Completed %s 🎉\n", g.Title)
			} else {
				fmt.Printf("Reopened %s\n", g.Title)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.manager().DeleteGoal(cmd.Context(), args[0]); err != nil {
				return describe(err)
			}
			fmt.Println("Goal deleted")
			return nil
		},
	}

	cmd.AddCommand(add, list, update, toggle, del)
	return cmd
}
