package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func signUpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and upload local data to it",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if err := a.tracker.Session.SignUp(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("sign up failed: %w", err)
			}
			fmt.Printf("Signed up as %s (%s)\n", email, a.tracker.UserID())
			return nil
		},
	}
	credentialFlags(cmd)
	return cmd
}

func loginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in; local data is uploaded if the account is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if err := a.tracker.Session.SignIn(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Printf("Signed in as %s (%s)\n", email, a.tracker.UserID())
			return nil
		},
	}
	credentialFlags(cmd)
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and keep working from the local copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.tracker.Session.SignOut(cmd.Context())
			fmt.Println("Signed out")
			return nil
		},
	}
}

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session and sync mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.manager()
			userID := a.tracker.UserID()
			switch {
			case userID == "":
				fmt.Println("Mode:    local only")
			case !a.tracker.Online():
				fmt.Println("Mode:    offline (session lookup failed)")
			default:
				fmt.Println("Mode:    synced")
			}
			if userID != "" {
				fmt.Printf("User:    %s\n", userID)
			}
			fmt.Printf("State:   %s\n", m.State())
			return nil
		},
	}
}

func credentialFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("email", "e", "", "Account email")
	cmd.Flags().StringP("password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}
