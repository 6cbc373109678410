package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Digital-Shane/torrent-tidy/internal/core"
	"github.com/Digital-Shane/torrent-tidy/internal/provider"
	"github.com/Digital-Shane/torrent-tidy/internal/provider/builtin"
	"github.com/spf13/cobra"
)

// Execute runs the command line and exits non-zero on failure. It is called
// by main.main().
func Execute() {
	root := newRootCommand(builtin.Registry())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(registry *provider.Registry) *cobra.Command {
	opts := &rootOptions{registry: registry}

	root := &cobra.Command{
		Use:   "torrent-tidy [flags] <torrent-path>",
		Short: "File finished torrents into a movie and show library",
		Long: `torrent-tidy classifies a finished torrent as a movie or a TV show and hard
links it into your library under a clean name:

  movies: <movies_dir>/Title (Year).ext
  shows:  <shows_dir>/Show Name/Show Name SxxExx - Episode Title.ext

Episode titles and canonical show names come from an online lookup service
(TVMaze by default). Works well as a qBittorrent "run on completion" hook:

  torrent-tidy "%F"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return core.ErrInvalidArguments
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file path (default ~/.torrent-tidy/config.toml)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the link commands instead of running them")
	flags.StringVar(&opts.moviesDir, "movies-dir", "", "Movie library root")
	flags.StringVar(&opts.showsDir, "shows-dir", "", "Show library root")
	flags.StringVar(&opts.provider, "provider", "", "Show lookup provider")
	root.Flags().BoolVar(&opts.selfTest, "self-test", false, "Run the built-in self-test instead of filing a torrent")

	root.AddCommand(
		newSelfTestCommand(opts),
		newHistoryCommand(opts),
		newUndoCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.SelfTest {
		return runSelfTest(cmd, opts)
	}
	if len(args) != 1 {
		return core.ErrInvalidArguments
	}

	rt, err := opts.newRunEnv(cmd, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.lock(); err != nil {
		return err
	}
	if err := rt.journal.Start(args[0], os.Args, cfg.DryRun); err != nil {
		rt.logger.Warn().Err(err).Msg("journal disabled for this run")
	}
	defer func() {
		if err := rt.journal.End(); err != nil {
			rt.logger.Warn().Err(err).Msg("failed to write journal")
		}
	}()

	err = rt.processor.Process(cmd.Context(), args[0])
	if err != nil {
		var lookupErr *core.LookupError
		if errors.As(err, &lookupErr) {
			rt.logger.Debug().Err(lookupErr.Err).Str("show", lookupErr.Show).Msg("lookup failed")
		}
		return err
	}
	return nil
}
