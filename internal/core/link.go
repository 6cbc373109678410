package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Digital-Shane/torrent-tidy/internal/log"
)

// LinkOutcome says what Link did with a file.
type LinkOutcome int

const (
	LinkCreated LinkOutcome = iota
	LinkSkipped             // destination already existed
	LinkPlanned             // dry run, nothing touched
)

func (o LinkOutcome) String() string {
	switch o {
	case LinkCreated:
		return "created"
	case LinkSkipped:
		return "skipped"
	case LinkPlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// Linker places files into the library with hard links. In dry-run mode it
// prints the commands it would run instead.
type Linker struct {
	DryRun  bool
	Out     io.Writer
	Journal *log.Journal
}

// NewLinker returns a Linker printing to out
func NewLinker(dryRun bool, out io.Writer, journal *log.Journal) *Linker {
	return &Linker{DryRun: dryRun, Out: out, Journal: journal}
}

func (l *Linker) printf(format string, args ...any) {
	if l.Out != nil {
		fmt.Fprintf(l.Out, format, args...)
	}
}

// Link hard links src to dest. A symlinked src is resolved first. An existing
// dest is left alone and reported as LinkSkipped with a nil error.
func (l *Linker) Link(src, dest string) (LinkOutcome, error) {
	if l.DryRun {
		l.printf("ln %q %q\n", src, dest)
		return LinkPlanned, nil
	}

	if _, err := os.Lstat(dest); err == nil {
		l.skip(src, dest)
		return LinkSkipped, nil
	}

	// Link the file a symlinked source points at, not the symlink
	target := src
	if resolved, err := filepath.EvalSymlinks(src); err == nil {
		target = resolved
	}

	if err := os.Link(target, dest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			// Created between the check and the link
			l.skip(src, dest)
			return LinkSkipped, nil
		}
		err = fmt.Errorf("failed to create hard link (possibly cross-filesystem or unsupported): %w", err)
		l.Journal.LogLink(src, dest, err)
		return LinkCreated, err
	}

	l.Journal.LogLink(src, dest, nil)
	return LinkCreated, nil
}

func (l *Linker) skip(src, dest string) {
	l.printf("%s already exists, not moving\n", dest)
	l.Journal.LogSkip(src, dest)
}

// EnsureDir creates dir when it does not exist yet. In dry-run mode the
// mkdir is printed instead.
func (l *Linker) EnsureDir(dir string) error {
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}

	if l.DryRun {
		l.printf("mkdir '%s'\n", dir)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		err = fmt.Errorf("failed to create directory %s: %w", dir, err)
		l.Journal.LogCreateDir(dir, err)
		return err
	}
	l.Journal.LogCreateDir(dir, nil)
	return nil
}
