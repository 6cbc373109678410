package media

import "context"

// Classification is the kind of torrent a path holds.
type Classification int

const (
	Other Classification = iota
	Movie
	Show
)

func (c Classification) String() string {
	switch c {
	case Movie:
		return "MOVIE"
	case Show:
		return "SHOW"
	default:
		return "OTHER"
	}
}

// ShowBundleThreshold is the media file count at which an untagged torrent is
// treated as a season pack. A movie shipped with enough extras trips it too.
const ShowBundleThreshold = 3

// Classify decides whether path is a movie, a show, or neither.
//
// Checks run in order: an SxxExx marker in the name, then the number of media
// files under the path, then a release year in the name.
func Classify(ctx context.Context, path string) (Classification, error) {
	name := TorrentName(path)
	if seasonEpisodeMarkerRe.MatchString(name) {
		return Show, nil
	}

	count, err := CountMedia(ctx, path)
	if err != nil {
		return Other, err
	}
	if count >= ShowBundleThreshold {
		return Show, nil
	}

	return ClassifyName(name), nil
}

// ClassifyName classifies by name alone, skipping the media file count.
func ClassifyName(name string) Classification {
	switch {
	case seasonEpisodeMarkerRe.MatchString(name):
		return Show
	case yearMarkerRe.MatchString(name):
		return Movie
	default:
		return Other
	}
}
