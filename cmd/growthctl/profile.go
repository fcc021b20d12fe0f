package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khoahotran/growth-tracker/internal/growth"
)

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the profile",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the profile as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(a.manager().Data().Profile)
		},
	})

	set := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields; only the flags given are updated",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.manager().UpdateProfile(cmd.Context(), growth.ProfilePatch{
				Name:      stringFlag(cmd, "name"),
				Bio:       stringFlag(cmd, "bio"),
				AvatarURL: stringFlag(cmd, "avatar-url"),
				Email:     stringFlag(cmd, "email"),
				Location:  stringFlag(cmd, "location"),
				Website:   stringFlag(cmd, "website"),
				IsPublic:  boolFlag(cmd, "public"),
			})
			if err != nil {
				return describe(err)
			}
			fmt.Printf("Profile updated: %s\n", p.Name)
			return nil
		},
	}
	set.Flags().String("name", "", "Display name")
	set.Flags().String("bio", "", "Short bio")
	set.Flags().String("avatar-url", "", "Avatar image URL")
	set.Flags().String("email", "", "Contact email")
	set.Flags().String("location", "", "Location")
	set.Flags().String("website", "", "Website")
	set.Flags().Bool("public", false, "Publish the profile")
	cmd.AddCommand(set)
	return cmd
}
