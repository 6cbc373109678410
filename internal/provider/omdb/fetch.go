package omdb

import (
	"context"
	"strconv"
	"strings"

	"github.com/Digital-Shane/omdb"
	"github.com/Digital-Shane/torrent-tidy/internal/provider"
)

// fetchShow searches for a series by title.
func (p *Provider) fetchShow(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	title := strings.TrimSpace(request.Name)
	if title == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidReq,
			Message:  "show fetch requires a title",
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := p.client.SearchByTitle(omdb.QueryData{
		Title:      title,
		Year:       request.Year,
		SearchType: "series",
	})
	if err != nil {
		return nil, p.mapError(err)
	}

	var series omdb.SeriesResult
	switch r := result.(type) {
	case omdb.SeriesResult:
		series = r
	case *omdb.SeriesResult:
		series = *r
	default:
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  "series not found",
		}
	}

	return &provider.Metadata{
		Core: provider.CoreMetadata{
			Title:     series.Title,
			Year:      omdb.FirstYear(series.Year),
			MediaType: provider.MediaTypeShow,
		},
		IDs: map[string]string{
			"series_id": series.ImdbID,
			"imdb_id":   series.ImdbID,
		},
	}, nil
}

// fetchEpisode looks an episode up by the series IMDb ID.
func (p *Provider) fetchEpisode(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	if request.Season <= 0 || request.Episode <= 0 {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidReq,
			Message:  "episode fetch requires valid season and episode numbers",
		}
	}

	id := strings.TrimSpace(request.ID)
	title := strings.TrimSpace(request.Name)
	if id == "" && title == "" {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeInvalidReq,
			Message:  "episode fetch requires a title or an IMDb ID",
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := omdb.QueryData{
		Title:   title,
		Season:  strconv.Itoa(request.Season),
		Episode: strconv.Itoa(request.Episode),
	}

	var result any
	var err error
	if id != "" {
		query.ImdbID = id
		result, err = p.client.SearchByImdbID(query)
	} else {
		result, err = p.client.SearchByTitle(query)
	}
	if err != nil {
		return nil, p.mapError(err)
	}

	var episode omdb.EpisodeResult
	switch r := result.(type) {
	case omdb.EpisodeResult:
		episode = r
	case *omdb.EpisodeResult:
		episode = *r
	default:
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  "episode not found",
		}
	}

	meta := &provider.Metadata{
		Core: provider.CoreMetadata{
			Title:       request.Name,
			Year:        request.Year,
			MediaType:   provider.MediaTypeEpisode,
			EpisodeName: episode.Title,
			SeasonNum:   request.Season,
			EpisodeNum:  request.Episode,
		},
		IDs: map[string]string{},
	}
	if episode.ImdbID != "" {
		meta.IDs["imdb_id"] = episode.ImdbID
	}
	if episode.SeriesID != "" {
		meta.IDs["series_id"] = episode.SeriesID
	}
	return meta, nil
}
