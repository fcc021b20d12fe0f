package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/growth-tracker/internal/config"
	"github.com/khoahotran/growth-tracker/internal/growth"
	"github.com/khoahotran/growth-tracker/internal/tracker"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type app struct {
	configDir string
	log       logger.Logger
	tracker   *tracker.Tracker
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.log = logger.NewCLILogger()

	t, err := tracker.Open(cfg, a.log)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	t.Start(cmd.Context())
	a.tracker = t
	return nil
}

// close flushes pending remote writes before exiting.
func (a *app) close(ctx context.Context) {
	if a.tracker == nil {
		return
	}
	if err := a.tracker.Close(ctx); err != nil {
		a.log.Error("Failed to close local store", err)
	}
}

func (a *app) manager() *growth.Manager {
	return a.tracker.Manager
}

// describe turns manager errors into short CLI messages.
func describe(err error) error {
	switch {
	case errors.Is(err, growth.ErrEntityNotFound):
		return fmt.Errorf("not found: %w", err)
	case errors.Is(err, growth.ErrMissingRequiredField), errors.Is(err, growth.ErrInvalidField):
		return fmt.Errorf("invalid input: %w", err)
	}
	return err
}

// stringFlag returns a pointer to the flag's value when the user set it.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func intFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}
