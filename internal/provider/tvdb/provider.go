package tvdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/Digital-Shane/torrent-tidy/internal/provider"
	tvdbapi "github.com/dashotv/tvdb"
	"github.com/dashotv/tvdb/openapi/models/operations"
)

const providerName = "tvdb"

// TVDBClient is the subset of the TVDB v4 client the show lookup uses.
type TVDBClient interface {
	GetSearchResults(request operations.GetSearchResultsRequest) (*tvdbapi.GetSearchResultsResponse, error)
	GetSeriesEpisodes(request operations.GetSeriesEpisodesRequest) (*tvdbapi.GetSeriesEpisodesResponse, error)
}

// Provider implements provider.Provider backed by TheTVDB.
type Provider struct {
	client TVDBClient
}

// New returns an unconfigured TVDB provider.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) Description() string {
	return "TheTVDB (TVDB) series and episode titles"
}

// Configure logs in with the API key. TVDB tokens are issued per login, so
// a bad key fails here rather than on the first lookup.
func (p *Provider) Configure(config map[string]interface{}) error {
	apiKey, _ := config["api_key"].(string)
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("api_key is required")
	}

	client, err := tvdbapi.Login(apiKey)
	if err != nil {
		return mapError(err)
	}
	p.client = client
	return nil
}

// Fetch answers a show search or an episode title lookup.
func (p *Provider) Fetch(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	if p.client == nil {
		return nil, fmt.Errorf("provider not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch request.MediaType {
	case provider.MediaTypeShow:
		return p.fetchShow(request)
	case provider.MediaTypeEpisode:
		return p.fetchEpisode(request)
	default:
		return nil, fmt.Errorf("unsupported media type: %s", request.MediaType)
	}
}

// mapError classifies client errors. The client only surfaces HTTP failures
// as text, so the status is recovered from the message.
func mapError(err error) error {
	msg := err.Error()
	perr := &provider.ProviderError{Provider: providerName, Code: provider.CodeAPIError, Message: msg}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "401"), strings.Contains(lower, "unauthorized"), strings.Contains(lower, "apikey"):
		perr.Code = provider.CodeAuthFailed
		perr.Message = "TVDB authentication failed: " + msg
	case strings.Contains(lower, "429"), strings.Contains(lower, "too many"):
		perr.Code = provider.CodeRateLimited
		perr.Retry = true
		perr.RetryAfter = 5
	case strings.Contains(lower, "404"), strings.Contains(lower, "not found"):
		perr.Code = provider.CodeNotFound
	}
	return perr
}
