package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/portfolio"
)

var (
	// flagConfig is set by the --config flag.
	flagConfig string

	// siteConfig is loaded by PersistentPreRunE for every subcommand.
	siteConfig portfolio.SiteConfig
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site backed by a headless content store",
	Long: `portfolio serves a personal site of articles and works read from a Sanity
dataset or a local SQLite snapshot of it, with related-item ranking, an RSS
feed, a sitemap and a contact form relayed by email.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		cfg, err := loadConfig(flagConfig, cmd.Flags())
		if err != nil {
			return err
		}
		siteConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./portfolio.yaml if present)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
}
