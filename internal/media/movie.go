package media

import (
	"fmt"
	"strings"
)

// MovieTitle is the structured form of a movie release name.
type MovieTitle struct {
	Title      string
	Year       string
	Extension  string
	Resolution string // marker the name was split on; never part of the output
}

// Filename renders the library filename, e.g. "The Batman (2022).mp4".
func (m MovieTitle) Filename() string {
	return fmt.Sprintf("%s (%s)%s", m.Title, m.Year, m.Extension)
}

// ParseMovieTitle extracts title and year from a movie release filename.
//
// The name is cut at the first resolution marker (see ResolutionMarkers); the
// year is the trailing 4-digit token of what precedes it.
func ParseMovieTitle(filename string) (MovieTitle, error) {
	res, ok := FirstMatch(resolutionRules, filename)
	if !ok {
		return MovieTitle{}, &ParseError{Name: filename, Step: "resolution"}
	}

	prefix := filename[:res.Start]
	m, ok := movieYearRule.Match(prefix)
	if !ok {
		return MovieTitle{}, &ParseError{Name: filename, Step: movieYearRule.Name}
	}

	title := normalizeTitle(m.Groups[0])
	if title == "" {
		return MovieTitle{}, &ParseError{Name: filename, Step: "title"}
	}

	return MovieTitle{
		Title:      title,
		Year:       m.Groups[1],
		Extension:  ExtractExtension(filename),
		Resolution: res.Text,
	}, nil
}

// normalizeTitle turns a dot separated release fragment into display text.
func normalizeTitle(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, ".", " "))
}
