package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dtrue/taxmate"
	"github.com/dtrue/taxmate/views"
)

func newServeCommand(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.env.siteConfig()
			if addr != "" {
				cfg.Addr = addr
			}
			if cfg.SessionSecret == "" {
				return errors.New("ADMIN_SESSION_SECRET is required")
			}
			if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
				opts.logger.Warn("admin routes disabled: set ADMIN_PASSWORD_HASH or ADMIN_PASSWORD to enable them")
			}

			app := taxmate.New(cfg, views.Default(),
				taxmate.WithLogger(opts.logger),
				taxmate.WithStaticDir(opts.env.StaticDir),
			)
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; overrides ADDR")
	return cmd
}
