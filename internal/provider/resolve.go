package provider

import (
	"context"
	"fmt"
)

// ResolvedEpisode is the canonical naming of one episode.
type ResolvedEpisode struct {
	ShowID       string
	ShowName     string
	EpisodeTitle string
}

// ResolveEpisode looks up the canonical show name and the episode title.
//
// The show is searched by name first; its ID then addresses the episode by
// season and number. Show results are cached so a season pack searches once.
// A nil cache disables caching.
func ResolveEpisode(ctx context.Context, p Provider, name string, season, episode int, cache MetadataCache) (*ResolvedEpisode, error) {
	if p == nil {
		return nil, fmt.Errorf("no metadata provider configured")
	}
	if name == "" {
		return nil, &ProviderError{Provider: p.Name(), Code: CodeInvalidReq, Message: "empty show name"}
	}

	showKey := GenerateMetadataKey(MediaTypeShow, name, 0, 0)
	showMeta := getFromCache(cache, showKey)
	if showMeta == nil {
		var err error
		showMeta, err = p.Fetch(ctx, FetchRequest{MediaType: MediaTypeShow, Name: name})
		if err != nil {
			return nil, err
		}
		if showMeta == nil {
			return nil, &ProviderError{Provider: p.Name(), Code: CodeNotFound, Message: fmt.Sprintf("no show matching %q", name)}
		}
		setInCache(cache, showKey, showMeta)
	}

	showID := extractShowID(showMeta)
	if showID == "" {
		return nil, &ProviderError{Provider: p.Name(), Code: CodeAPIError, Message: fmt.Sprintf("show %q has no id", name)}
	}
	showName := showMeta.Core.Title
	if showName == "" {
		showName = name
	}

	epMeta, err := p.Fetch(ctx, FetchRequest{
		MediaType: MediaTypeEpisode,
		ID:        showID,
		Name:      showName,
		Year:      showMeta.Core.Year,
		Season:    season,
		Episode:   episode,
	})
	if err != nil {
		return nil, err
	}
	if epMeta == nil || epMeta.Core.EpisodeName == "" {
		return nil, &ProviderError{
			Provider: p.Name(),
			Code:     CodeNotFound,
			Message:  fmt.Sprintf("no episode S%02dE%02d for show %q", season, episode, showName),
		}
	}

	return &ResolvedEpisode{
		ShowID:       showID,
		ShowName:     showName,
		EpisodeTitle: epMeta.Core.EpisodeName,
	}, nil
}

func getFromCache(cache MetadataCache, key string) *Metadata {
	if cache == nil {
		return nil
	}
	meta, _ := cache.Get(key)
	return meta
}

func setInCache(cache MetadataCache, key string, meta *Metadata) {
	if cache == nil || meta == nil {
		return
	}
	cache.Set(key, meta)
}

func extractShowID(meta *Metadata) string {
	if meta == nil {
		return ""
	}
	for _, key := range []string{"series_id", "tvmaze_id", "tmdb_id", "tvdb_id", "imdb_id"} {
		if id, ok := meta.IDs[key]; ok && id != "" {
			return id
		}
	}
	return ""
}
