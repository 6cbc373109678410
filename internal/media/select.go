package media

import "context"

// SelectMovieFile picks the file to link for a movie torrent.
//
// A media file path is returned as is. For a directory the largest media file
// wins; on equal sizes the first one in traversal order is kept. The boolean is
// false when the torrent holds no media at all.
func SelectMovieFile(ctx context.Context, path string) (string, bool, error) {
	files, err := Files(ctx, path)
	if err != nil {
		return "", false, err
	}

	var (
		best  File
		found bool
	)
	for f := range files {
		if !f.IsMedia {
			continue
		}
		if !found || f.Size > best.Size {
			best, found = f, true
		}
	}
	if !found {
		return "", false, nil
	}
	return best.Path, true, nil
}
