package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/Digital-Shane/torrent-tidy/internal/log"
	"github.com/spf13/cobra"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent filing sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			journal := log.NewJournal(cfg.Logging.Dir, cfg.Logging.Enabled)
			summaries, err := journal.Summaries(limit)
			if err != nil {
				return fmt.Errorf("failed to read log sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No sessions recorded.")
				return nil
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				meta := s.Session.Metadata
				rows = append(rows, []string{
					shortID(meta.SessionID),
					s.RelativeTime,
					s.Mode,
					torrentName(meta),
					strconv.Itoa(meta.SuccessfulOps),
					strconv.Itoa(meta.FailedOps),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Session", "When", "Mode", "Torrent", "OK", "Failed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of sessions to show (0 for all)")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func torrentName(meta log.SessionMetadata) string {
	if meta.TorrentPath == "" {
		return ""
	}
	return filepath.Base(meta.TorrentPath)
}
