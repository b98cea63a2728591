package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/portfolio"
	"github.com/eringen/portfolio/content"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Copy the hosted dataset into a local SQLite file",
	Long: `Fetch every article and work, including content bodies, from the Sanity
dataset and replace the contents of the SQLite snapshot used by the sqlite
backend.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = siteConfig.SnapshotPath
		}
		if out == "" {
			out = "data/content.db"
		}

		log := portfolio.NewLogger(siteConfig.LogLevel, siteConfig.LogFormat, cmd.ErrOrStderr())
		src, err := content.NewClient(siteConfig.SanityClientConfig(), content.WithLogger(log))
		if err != nil {
			return err
		}
		dst, err := content.NewSQLiteStore(out)
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		defer dst.Close()

		start := time.Now()
		res, err := content.Snapshot(cmd.Context(), src, dst)
		if err != nil {
			return err
		}
		log.Info().
			Int("articles", res.Articles).
			Int("works", res.Works).
			Str("path", out).
			Dur("took", time.Since(start)).
			Msg("snapshot written")
		return nil
	},
}

func init() {
	snapshotCmd.Flags().String("out", "", "snapshot file (default: snapshot_path from config)")
}
