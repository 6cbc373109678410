package media

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Filename parsing patterns.
//
// Release names are noisy, so every extraction step is expressed as a named Rule
// and evaluated in a fixed order. The order is part of the behavior: changing it
// changes which marker wins when several are present.
var (
	// seasonEpisodeMarkerRe flags a show: some text, an SxxExx marker, more text.
	seasonEpisodeMarkerRe = regexp.MustCompile(`.+[Ss]\d{1,2}[Ee]\d{1,2}.+`)

	// yearMarkerRe flags a movie: a 1900-2099 year with text on both sides.
	yearMarkerRe = regexp.MustCompile(`.+(?:19|20)[0-9][0-9].+`)

	// mediaExtRe matches the container formats we move into the library.
	mediaExtRe = regexp.MustCompile(`(?i)\.(mp4|mkv)$`)
)

// ResolutionMarkers are the parsing anchors for movie names, in priority order.
// The first marker present in a name wins, regardless of where it appears.
var ResolutionMarkers = []string{"720p", "1080p", "2160p"}

var (
	resolutionRules = markerRules("resolution", ResolutionMarkers)

	// movieYearRule takes the last 4-digit run of the pre-resolution prefix as the
	// year and everything before its separator as the raw title.
	movieYearRule = Rule{Name: "year", Pattern: regexp.MustCompile(`(.+)(?:\s|.)+(\d\d\d\d)`)}

	// showMarkerRule captures the raw show name and the season/episode numbers.
	// The character directly before the S is treated as a separator and dropped.
	showMarkerRule = Rule{Name: "season/episode", Pattern: regexp.MustCompile(`(.+).[Ss](\d{1,2})[Ee](\d{1,2})`)}
)

// IsMedia reports whether filename has a recognized media extension.
func IsMedia(filename string) bool {
	return mediaExtRe.MatchString(filename)
}

// ExtractExtension returns the extension of filename including the dot, verbatim.
func ExtractExtension(filename string) string {
	return filepath.Ext(filename)
}

// TorrentName returns the last path element of a torrent path. A path ending in a
// separator falls back to the segment before it.
func TorrentName(path string) string {
	trimmed := strings.TrimRight(path, `/`+string(filepath.Separator))
	if trimmed == "" {
		return filepath.Base(path)
	}
	return filepath.Base(trimmed)
}

func markerRules(kind string, markers []string) []Rule {
	rules := make([]Rule, 0, len(markers))
	for _, marker := range markers {
		rules = append(rules, Rule{
			Name:    kind + " " + marker,
			Pattern: regexp.MustCompile(regexp.QuoteMeta(marker)),
		})
	}
	return rules
}
