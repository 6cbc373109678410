package core

import (
	"context"
	"strings"

	"github.com/Digital-Shane/torrent-tidy/internal/media"
	"github.com/Digital-Shane/torrent-tidy/internal/provider"
)

type fakeShow struct {
	id       string
	name     string
	episodes map[string]string // SxxExx -> title
}

type fakeProvider struct {
	shows map[string]fakeShow // keyed by lowercased query
	err   error
	calls []provider.FetchRequest
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{shows: map[string]fakeShow{
		"family guy": {id: "84", name: "Family Guy", episodes: map[string]string{
			"S20E20": "Jersey Bore",
			"S20E19": "Girlfriend, Eh?",
		}},
		"stranger things": {id: "2993", name: "Stranger Things", episodes: map[string]string{
			"S04E01": "Chapter One: The Hellfire Club",
		}},
		"brooklyn nine-nine": {id: "49", name: "Brooklyn Nine-Nine", episodes: map[string]string{
			"S05E19": "Bachelor/ette Party",
		}},
		"the boys": {id: "15299", name: "The Boys", episodes: map[string]string{
			"S02E01": "The Big Ride",
		}},
	}}
}

func (f *fakeProvider) Name() string                                 { return "fake" }
func (f *fakeProvider) Description() string                          { return "in-memory show catalog" }
func (f *fakeProvider) Configure(config map[string]interface{}) error { return nil }

func (f *fakeProvider) Fetch(ctx context.Context, req provider.FetchRequest) (*provider.Metadata, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}

	notFound := &provider.ProviderError{Provider: "fake", Code: provider.CodeNotFound, Message: "no match"}
	switch req.MediaType {
	case provider.MediaTypeShow:
		show, ok := f.shows[strings.ToLower(req.Name)]
		if !ok {
			return nil, notFound
		}
		return &provider.Metadata{
			Core: provider.CoreMetadata{Title: show.name, MediaType: provider.MediaTypeShow},
			IDs:  map[string]string{"series_id": show.id},
		}, nil
	case provider.MediaTypeEpisode:
		for _, show := range f.shows {
			if show.id != req.ID {
				continue
			}
			title, ok := show.episodes[media.SeasonEpisodeTag(req.Season, req.Episode)]
			if !ok {
				return nil, notFound
			}
			return &provider.Metadata{Core: provider.CoreMetadata{
				Title:       show.name,
				MediaType:   provider.MediaTypeEpisode,
				SeasonNum:   req.Season,
				EpisodeNum:  req.Episode,
				EpisodeName: title,
			}}, nil
		}
	}
	return nil, notFound
}
