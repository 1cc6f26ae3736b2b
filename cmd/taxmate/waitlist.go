package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtrue/taxmate"
)

func newWaitlistCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Inspect and manage waitlist signups",
	}
	cmd.AddCommand(
		newWaitlistCountCommand(opts),
		newWaitlistExportCommand(opts),
		newWaitlistRemoveCommand(opts),
	)
	return cmd
}

func openStore(opts *options) (*taxmate.Store, error) {
	s, err := taxmate.NewStore(opts.env.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open waitlist %q: %w", opts.env.DatabasePath, err)
	}
	return s, nil
}

func newWaitlistCountCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print how many people joined and how many lifetime spots are left",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := taxmate.NewStatsCache(s, time.Minute, opts.env.WaitlistCapacity).Stats()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "joined: %d\nspots left: %d of %d\n", stats.Joined, stats.SpotsLeft, stats.Capacity)
			return err
		},
	}
}

func newWaitlistExportCommand(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every signup as CSV, in waitlist order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			signups, err := s.ListSignups()
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				if err := taxmate.WriteSignupsCSV(cmd.OutOrStdout(), signups); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
				return nil
			}
			if err := exportFile(output, signups); err != nil {
				return err
			}
			opts.logger.Info("waitlist exported", "signups", len(signups), "output", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

// exportFile writes signups to path as CSV. Close errors are returned.
func exportFile(path string, signups []taxmate.Signup) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := taxmate.WriteSignupsCSV(f, signups); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func newWaitlistRemoveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a signup by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteSignup(args[0]); err != nil {
				if errors.Is(err, taxmate.ErrNotFound) {
					return fmt.Errorf("no signup with id %q", args[0])
				}
				return err
			}
			opts.logger.Info("signup removed", "id", args[0])
			return nil
		},
	}
}
