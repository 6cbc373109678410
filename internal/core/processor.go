package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Digital-Shane/torrent-tidy/internal/config"
	"github.com/Digital-Shane/torrent-tidy/internal/media"
	"github.com/Digital-Shane/torrent-tidy/internal/provider"
	"github.com/rs/zerolog"
)

// Processor files one torrent into the movie or show library.
type Processor struct {
	cfg      config.Config
	provider provider.Provider
	cache    provider.MetadataCache
	linker   *Linker
	logger   zerolog.Logger
}

// ShowDestination is where an episode ends up inside the shows root.
type ShowDestination struct {
	Filename string // "<show> SxxExx - <episode title><ext>"
	ShowName string // canonical show name, also the folder name
}

// NewProcessor wires a processor. The provider may be nil when only movies
// will be handled.
func NewProcessor(cfg config.Config, p provider.Provider, cache provider.MetadataCache, linker *Linker, logger zerolog.Logger) *Processor {
	return &Processor{
		cfg:      cfg,
		provider: p,
		cache:    cache,
		linker:   linker,
		logger:   logger,
	}
}

// Process classifies torrentPath and hands it to the movie or show handler.
func (p *Processor) Process(ctx context.Context, torrentPath string) error {
	if _, err := os.Stat(torrentPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrPathNotFound
		}
		return fmt.Errorf("stat %s: %w", torrentPath, err)
	}

	kind, err := media.Classify(ctx, torrentPath)
	if err != nil {
		return err
	}
	p.logger.Info().Str("path", torrentPath).Stringer("type", kind).Msg("classified torrent")

	switch kind {
	case media.Movie:
		return p.HandleMovie(ctx, torrentPath)
	case media.Show:
		return p.HandleShow(ctx, torrentPath)
	default:
		return ErrUnrecognized
	}
}

// HandleMovie links the largest media file of torrentPath into the movies root.
func (p *Processor) HandleMovie(ctx context.Context, torrentPath string) error {
	moviePath, ok, err := media.SelectMovieFile(ctx, torrentPath)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMovieNotFound
	}

	title, err := media.ParseMovieTitle(filepath.Base(moviePath))
	if err != nil {
		return err
	}

	dest := filepath.Join(p.cfg.MoviesDir, title.Filename())
	outcome, err := p.linker.Link(moviePath, dest)
	if err != nil {
		return err
	}
	p.logger.Info().
		Str("source", moviePath).
		Str("dest", dest).
		Stringer("outcome", outcome).
		Msg("movie filed")
	return nil
}

// HandleShow files a single episode, or every episode found under a
// directory in traversal order. Non-media files and files without a
// season/episode marker are skipped. The first failure stops the run; links already made stay.
func (p *Processor) HandleShow(ctx context.Context, torrentPath string) error {
	info, err := os.Stat(torrentPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", torrentPath, err)
	}
	if !info.IsDir() {
		return p.handleEpisode(ctx, torrentPath)
	}

	files, err := media.Files(ctx, torrentPath)
	if err != nil {
		return err
	}
	for f := range files {
		if !f.IsMedia {
			p.logger.Debug().Str("path", f.Path).Msg("skipping non-media file")
			continue
		}
		if media.ClassifyName(f.Name) != media.Show {
			p.logger.Debug().Str("path", f.Path).Msg("skipping file without episode marker")
			continue
		}
		if err := p.handleEpisode(ctx, f.Path); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) handleEpisode(ctx context.Context, episodePath string) error {
	dest, err := p.ShowTitle(ctx, filepath.Base(episodePath))
	if err != nil {
		return err
	}

	showDir := filepath.Join(p.cfg.ShowsDir, dest.ShowName)
	if err := p.linker.EnsureDir(showDir); err != nil {
		return err
	}

	destPath := filepath.Join(showDir, dest.Filename)
	outcome, err := p.linker.Link(episodePath, destPath)
	if err != nil {
		return err
	}
	p.logger.Info().
		Str("source", episodePath).
		Str("dest", destPath).
		Stringer("outcome", outcome).
		Msg("episode filed")
	return nil
}

// ShowTitle parses an episode filename and resolves its canonical show name
// and episode title through the metadata provider.
func (p *Processor) ShowTitle(ctx context.Context, filename string) (ShowDestination, error) {
	parsed, err := media.ParseShowTitle(filename)
	if err != nil {
		return ShowDestination{}, err
	}
	name := media.NormalizeShowName(parsed.RawName)

	resolved, err := provider.ResolveEpisode(ctx, p.provider, name, parsed.Season, parsed.Episode, p.cache)
	if err != nil {
		return ShowDestination{}, &LookupError{Show: name, Season: parsed.Season, Episode: parsed.Episode, Err: err}
	}
	p.logger.Debug().
		Str("query", name).
		Str("show_id", resolved.ShowID).
		Str("show", resolved.ShowName).
		Str("episode", resolved.EpisodeTitle).
		Msg("resolved episode")

	showName := SanitizeName(resolved.ShowName)
	return ShowDestination{
		Filename: parsed.Filename(showName, SanitizeName(resolved.EpisodeTitle)),
		ShowName: showName,
	}, nil
}
