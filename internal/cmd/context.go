package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Digital-Shane/torrent-tidy/internal/config"
	"github.com/Digital-Shane/torrent-tidy/internal/core"
	"github.com/Digital-Shane/torrent-tidy/internal/log"
	"github.com/Digital-Shane/torrent-tidy/internal/provider"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dryRun     bool
	selfTest   bool
	moviesDir  string
	showsDir   string
	provider   string

	registry *provider.Registry
}

// loadConfig reads the config file and applies the flags the user set.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if flags.Changed("self-test") {
		cfg.SelfTest = o.selfTest
	}
	if flags.Changed("movies-dir") {
		if cfg.MoviesDir, err = config.ExpandPath(o.moviesDir); err != nil {
			return nil, err
		}
	}
	if flags.Changed("shows-dir") {
		if cfg.ShowsDir, err = config.ExpandPath(o.showsDir); err != nil {
			return nil, err
		}
	}
	if flags.Changed("provider") {
		cfg.Lookup.Provider = strings.ToLower(strings.TrimSpace(o.provider))
	}

	if err := cfg.Validate(o.registry); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runEnv bundles everything a filing run needs.
type runEnv struct {
	cfg       *config.Config
	logger    zerolog.Logger
	journal   *log.Journal
	processor *core.Processor

	logCloser interface{ Close() error }
	fileLock  *flock.Flock
}

func (o *rootOptions) newRunEnv(cmd *cobra.Command, cfg *config.Config) (*runEnv, error) {
	logDir := ""
	if cfg.Logging.Enabled {
		logDir = cfg.Logging.Dir
	}
	logger, closer, err := log.NewLogger(log.LoggerOptions{
		Level:      cfg.Logging.Level,
		Dir:        logDir,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxAgeDays: cfg.Logging.RetentionDays,
		Console:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	journal := log.NewJournal(cfg.Logging.Dir, cfg.Logging.Enabled)
	if err := journal.Cleanup(cfg.Logging.RetentionDays); err != nil {
		logger.Warn().Err(err).Msg("failed to clean up old sessions")
	}

	lookup := o.registry.Lazy(cfg.Lookup.Provider, cfg.ProviderSettings())
	linker := core.NewLinker(cfg.DryRun, cmd.OutOrStdout(), journal)
	processor := core.NewProcessor(*cfg, lookup, provider.NewMemoryCache(time.Hour), linker, logger)

	return &runEnv{
		cfg:       cfg,
		logger:    logger,
		journal:   journal,
		processor: processor,
		logCloser: closer,
	}, nil
}

// lock serializes runs. Torrent clients may start one hook per finished
// download at the same moment; later runs wait for the current one.
func (rt *runEnv) lock() error {
	if rt.cfg.LockFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(rt.cfg.LockFile), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	rt.fileLock = flock.New(rt.cfg.LockFile)
	if err := rt.fileLock.Lock(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	return nil
}

func (rt *runEnv) Close() {
	if rt.fileLock != nil {
		if err := rt.fileLock.Unlock(); err != nil {
			rt.logger.Warn().Err(err).Msg("failed to release lock")
		}
	}
	if rt.logCloser != nil {
		_ = rt.logCloser.Close()
	}
}
