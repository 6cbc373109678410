package cmd

import (
	"errors"
	"fmt"

	"github.com/Digital-Shane/torrent-tidy/internal/log"
	"github.com/spf13/cobra"
)

func newUndoCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "undo [session-id]",
		Short: "Remove the links made by a filing session",
		Long: `Reverses the most recent session, or the one whose id starts with the given
prefix (see "torrent-tidy history"). Hard links are removed and show folders the
session created are deleted when empty. The torrent files themselves are never
touched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.Logging.Enabled {
				return errors.New("logging is disabled, no sessions to undo")
			}

			id := ""
			if len(args) == 1 {
				id = args[0]
			}

			rt, err := opts.newRunEnv(cmd, cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := rt.lock(); err != nil {
				return err
			}

			stored, err := rt.journal.FindSession(id)
			if err != nil {
				return err
			}

			successful, failed, errs := log.UndoSession(stored.Session)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Undid %d operation%s from session %s\n", successful, plural(successful), shortID(stored.Session.Metadata.SessionID))
			for _, err := range errs {
				fmt.Fprintf(out, "  %v\n", err)
			}
			if failed > 0 {
				return fmt.Errorf("%d operation%s could not be undone", failed, plural(failed))
			}

			if err := rt.journal.Forget(stored); err != nil {
				rt.logger.Warn().Err(err).Msg("failed to remove undone session")
			}
			return nil
		},
	}
}
