package tvdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Digital-Shane/torrent-tidy/internal/provider"
	"github.com/dashotv/tvdb/openapi/models/operations"
	"github.com/dashotv/tvdb/openapi/models/shared"
)

// series is the part of a search hit the lookup keeps.
type series struct {
	ID   int64
	Name string
	Year string
}

func (p *Provider) fetchShow(request provider.FetchRequest) (*provider.Metadata, error) {
	s, err := p.searchSeries(request)
	if err != nil {
		return nil, err
	}

	id := strconv.FormatInt(s.ID, 10)
	return &provider.Metadata{
		Core: provider.CoreMetadata{
			Title:     s.Name,
			Year:      s.Year,
			MediaType: provider.MediaTypeShow,
		},
		IDs: map[string]string{
			"series_id": id,
			"tvdb_id":   id,
		},
	}, nil
}

// fetchEpisode looks the episode up under the series ID from a previous show
// lookup. Without one the series is searched by name first.
func (p *Provider) fetchEpisode(request provider.FetchRequest) (*provider.Metadata, error) {
	if request.Season <= 0 || request.Episode <= 0 {
		return nil, &provider.ProviderError{Provider: providerName, Code: provider.CodeInvalidReq, Message: "episode fetch requires valid season and episode numbers"}
	}

	seriesID := provider.NumericID(request.ID)
	if seriesID == 0 {
		s, err := p.searchSeries(request)
		if err != nil {
			return nil, err
		}
		seriesID = s.ID
	}

	season, number := int64(request.Season), int64(request.Episode)
	resp, err := p.client.GetSeriesEpisodes(operations.GetSeriesEpisodesRequest{
		ID:            float64(seriesID),
		SeasonType:    "official",
		Season:        &season,
		EpisodeNumber: &number,
	})
	if err != nil {
		return nil, mapError(err)
	}

	data := resp.GetData()
	episode, ok := pickEpisode(data.GetEpisodes(), number)
	if !ok {
		return nil, &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  fmt.Sprintf("episode S%02dE%02d not found", request.Season, request.Episode),
		}
	}

	title := request.Name
	if s := data.GetSeries(); s != nil {
		title = provider.FirstNonEmpty(provider.StringValue(s.Name), title)
	}

	return &provider.Metadata{
		Core: provider.CoreMetadata{
			Title:       title,
			Year:        request.Year,
			SeasonNum:   request.Season,
			EpisodeNum:  request.Episode,
			EpisodeName: provider.StringValue(episode.Name),
			MediaType:   provider.MediaTypeEpisode,
		},
		IDs: map[string]string{
			"series_id": strconv.FormatInt(seriesID, 10),
		},
	}, nil
}

// pickEpisode prefers the record numbered like the request and falls back to
// the first record the season filter returned.
func pickEpisode(episodes []shared.EpisodeBaseRecord, number int64) (shared.EpisodeBaseRecord, bool) {
	if len(episodes) == 0 {
		return shared.EpisodeBaseRecord{}, false
	}
	for _, e := range episodes {
		if e.Number != nil && *e.Number == number {
			return e, true
		}
	}
	return episodes[0], true
}

func (p *Provider) searchSeries(request provider.FetchRequest) (*series, error) {
	query := strings.TrimSpace(request.Name)
	if query == "" {
		return nil, &provider.ProviderError{Provider: providerName, Code: provider.CodeInvalidReq, Message: "series fetch requires a title"}
	}

	kind := "series"
	req := operations.GetSearchResultsRequest{Query: &query, Type: &kind}
	if yr, err := strconv.Atoi(strings.TrimSpace(request.Year)); err == nil {
		y := float64(yr)
		req.Year = &y
	}

	resp, err := p.client.GetSearchResults(req)
	if err != nil {
		return nil, mapError(err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, &provider.ProviderError{Provider: providerName, Code: provider.CodeNotFound, Message: fmt.Sprintf("no results found for show: %s", request.Name)}
	}

	for _, hit := range resp.Data {
		if !strings.EqualFold(provider.StringValue(hit.Type), "series") {
			continue
		}
		if s := toSeries(hit); s.ID != 0 {
			return s, nil
		}
	}
	return nil, &provider.ProviderError{Provider: providerName, Code: provider.CodeNotFound, Message: "series not found"}
}

// toSeries reads a search hit. The numeric tvdb_id is preferred; the search
// ID carries a "series-" prefix.
func toSeries(hit shared.SearchResult) *series {
	id := provider.NumericID(provider.StringValue(hit.TvdbID))
	if id == 0 {
		id = provider.NumericID(strings.TrimPrefix(provider.StringValue(hit.ID), "series-"))
	}
	return &series{
		ID:   id,
		Name: provider.FirstNonEmpty(provider.StringValue(hit.Name), provider.StringValue(hit.NameTranslated), provider.StringValue(hit.Title)),
		Year: provider.StringValue(hit.Year),
	}
}
