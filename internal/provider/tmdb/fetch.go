package tmdb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Digital-Shane/torrent-tidy/internal/provider"
)

// Fetch retrieves metadata based on the request
func (p *Provider) Fetch(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	if p.client == nil {
		return nil, fmt.Errorf("provider not configured")
	}

	switch request.MediaType {
	case provider.MediaTypeShow:
		return p.fetchShow(ctx, request)
	case provider.MediaTypeEpisode:
		return p.fetchEpisode(ctx, request)
	default:
		return nil, fmt.Errorf("unsupported media type: %s", request.MediaType)
	}
}

// fetchShow searches for a show and keeps the best match
func (p *Provider) fetchShow(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	results, err := p.client.SearchTv(request.Name, map[string]string{
		"language": p.getLanguage(request),
	})
	if err != nil {
		return nil, p.mapError(err)
	}

	if results == nil || len(results.Results) == 0 {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  fmt.Sprintf("no results found for show: %s", request.Name),
		}
	}

	show := results.Results[0]
	id := strconv.Itoa(show.ID)
	return &provider.Metadata{
		Core: provider.CoreMetadata{
			Title:     show.Name,
			Year:      provider.FirstYear(show.FirstAirDate),
			MediaType: provider.MediaTypeShow,
		},
		IDs: map[string]string{
			"series_id": id,
			"tmdb_id":   id,
		},
	}, nil
}

// fetchEpisode fetches a single episode by number
func (p *Provider) fetchEpisode(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	showID, err := strconv.Atoi(request.ID)
	if err != nil {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidReq,
			Message:  fmt.Sprintf("invalid TMDB show id %q", request.ID),
		}
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	episode, err := p.client.GetTvEpisodeInfo(showID, request.Season, request.Episode, map[string]string{
		"language": p.getLanguage(request),
	})
	if err != nil {
		return nil, p.mapError(err)
	}

	if episode == nil || episode.Name == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  fmt.Sprintf("episode S%02dE%02d not found", request.Season, request.Episode),
		}
	}

	return &provider.Metadata{
		Core: provider.CoreMetadata{
			Title:       request.Name,
			Year:        request.Year,
			MediaType:   provider.MediaTypeEpisode,
			EpisodeName: episode.Name,
			SeasonNum:   episode.SeasonNumber,
			EpisodeNum:  episode.EpisodeNumber,
		},
		IDs: map[string]string{
			"series_id":       request.ID,
			"tmdb_episode_id": strconv.Itoa(episode.ID),
		},
	}, nil
}

func (p *Provider) getLanguage(request provider.FetchRequest) string {
	if request.Language != "" {
		return request.Language
	}
	return p.language
}
