package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/portfolio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site",
	Long: `Serve the JSON API, sitemap, RSS feed and contact endpoints. HTML pages are
served when the binary is built with view functions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, siteConfig, portfolio.ViewFuncs{})
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	serveCmd.Flags().String("backend", "", "content backend: sanity or sqlite")
	serveCmd.Flags().String("db", "", "SQLite snapshot path for the sqlite backend")
}

func runServe(ctx context.Context, cfg portfolio.SiteConfig, views portfolio.ViewFuncs) error {
	app := portfolio.New(cfg, views)
	defer app.Close()
	return app.Start(ctx)
}
