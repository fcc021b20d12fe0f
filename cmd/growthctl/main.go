// Command growthctl is the local-first growth tracker client. It works
// offline against the local store and syncs with the API when signed in.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "growthctl",
		Short:             "Track skills, goals and achievements",
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
	}
	rootCmd.PersistentFlags().StringVar(&a.configDir, "config", ".", "Directory containing config.yaml")

	rootCmd.AddCommand(signUpCmd(a))
	rootCmd.AddCommand(loginCmd(a))
	rootCmd.AddCommand(logoutCmd(a))
	rootCmd.AddCommand(statusCmd(a))
	rootCmd.AddCommand(profileCmd(a))
	rootCmd.AddCommand(skillCmd(a))
	rootCmd.AddCommand(goalCmd(a))
	rootCmd.AddCommand(achievementCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(reviewCmd(a))
	rootCmd.AddCommand(remindersCmd(a))
	rootCmd.AddCommand(exportCmd(a))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	a.close(context.Background())
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
