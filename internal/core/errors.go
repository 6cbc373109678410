package core

import (
	"errors"
	"fmt"

	"github.com/Digital-Shane/torrent-tidy/internal/media"
)

var (
	ErrInvalidArguments = errors.New("invalid args")
	ErrPathNotFound     = errors.New("torrent not found")
	ErrMovieNotFound    = errors.New("movie not found in torrent folder")
	ErrUnrecognized     = errors.New("torrent not recognized")
)

// LookupError reports a failed metadata lookup for one episode.
type LookupError struct {
	Show    string
	Season  int
	Episode int
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s %s: %v", e.Show, media.SeasonEpisodeTag(e.Season, e.Episode), e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
