package media

import (
	"fmt"
	"strconv"
	"strings"
)

// ShowTitle is the structured form of an episode release name.
type ShowTitle struct {
	RawName   string // show name as it appears before the SxxExx marker
	Season    int
	Episode   int
	Extension string
}

// Tag renders the season/episode marker, always two digits per field.
func (s ShowTitle) Tag() string {
	return SeasonEpisodeTag(s.Season, s.Episode)
}

// Filename renders "<show> <SxxExx> - <episode title><ext>".
func (s ShowTitle) Filename(showName, episodeTitle string) string {
	return fmt.Sprintf("%s %s - %s%s", showName, s.Tag(), episodeTitle, s.Extension)
}

// SeasonEpisodeTag formats season and episode as SxxExx.
func SeasonEpisodeTag(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

// ParseShowTitle locates the SxxExx marker in an episode filename.
func ParseShowTitle(filename string) (ShowTitle, error) {
	m, ok := showMarkerRule.Match(filename)
	if !ok {
		return ShowTitle{}, &ParseError{Name: filename, Step: showMarkerRule.Name}
	}

	season, err := strconv.Atoi(m.Groups[1])
	if err != nil {
		return ShowTitle{}, &ParseError{Name: filename, Step: "season"}
	}
	episode, err := strconv.Atoi(m.Groups[2])
	if err != nil {
		return ShowTitle{}, &ParseError{Name: filename, Step: "episode"}
	}

	return ShowTitle{
		RawName:   m.Groups[0],
		Season:    season,
		Episode:   episode,
		Extension: ExtractExtension(filename),
	}, nil
}

// NormalizeShowName cleans a raw show name for the metadata search.
//
//	"the.boys.2019" -> "the boys"
//	"The Boys -"    -> "The Boys"
func NormalizeShowName(raw string) string {
	name := normalizeTitle(raw)

	// A release year folded into the name. A name made only of digits is kept.
	if len(name) > 4 && isDigits(name[len(name)-4:]) {
		name = strings.TrimSpace(name[:len(name)-5])
	}

	return strings.TrimSuffix(name, " -")
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
