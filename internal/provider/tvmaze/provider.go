package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Digital-Shane/torrent-tidy/internal/provider"
)

const (
	providerName   = "tvmaze"
	defaultBaseURL = "https://api.tvmaze.com"
)

// Provider implements provider.Provider against the public TVMaze API.
// No API key is needed.
type Provider struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *provider.RateLimiter
}

type showResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Premiered string `json:"premiered"`
}

type episodeResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}

// New returns a provider with default settings.
func New() *Provider {
	return &Provider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		// TVMaze allows 20 calls every 10 seconds per IP
		rateLimiter: provider.NewRateLimiter(20, 10*time.Second),
	}
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) Description() string {
	return "TVMaze show and episode titles"
}

// Configure accepts optional "base_url" and "timeout_seconds" settings.
func (p *Provider) Configure(config map[string]interface{}) error {
	if raw, ok := config["base_url"].(string); ok && strings.TrimSpace(raw) != "" {
		if _, err := url.Parse(raw); err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
		p.baseURL = strings.TrimRight(raw, "/")
	}
	if secs, ok := config["timeout_seconds"].(int); ok && secs > 0 {
		p.httpClient.Timeout = time.Duration(secs) * time.Second
	}
	return nil
}

// Fetch retrieves show or episode metadata based on the request.
func (p *Provider) Fetch(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	switch request.MediaType {
	case provider.MediaTypeShow:
		return p.fetchShow(ctx, request)
	case provider.MediaTypeEpisode:
		return p.fetchEpisode(ctx, request)
	default:
		return nil, fmt.Errorf("unsupported media type: %s", request.MediaType)
	}
}

// fetchShow uses singlesearch, which returns the single best match for a name.
func (p *Provider) fetchShow(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, &provider.ProviderError{Provider: providerName, Code: provider.CodeInvalidReq, Message: "show fetch requires a name"}
	}

	var show showResponse
	if err := p.get(ctx, "/singlesearch/shows", url.Values{"q": {name}}, &show); err != nil {
		return nil, err
	}

	id := strconv.Itoa(show.ID)
	return &provider.Metadata{
		Core: provider.CoreMetadata{
			Title:     show.Name,
			Year:      provider.FirstYear(show.Premiered),
			MediaType: provider.MediaTypeShow,
		},
		IDs: map[string]string{
			"series_id": id,
			"tvmaze_id": id,
		},
	}, nil
}

func (p *Provider) fetchEpisode(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	if request.ID == "" {
		return nil, &provider.ProviderError{Provider: providerName, Code: provider.CodeInvalidReq, Message: "episode fetch requires a show id"}
	}

	query := url.Values{
		"season": {strconv.Itoa(request.Season)},
		"number": {strconv.Itoa(request.Episode)},
	}
	var ep episodeResponse
	path := "/shows/" + url.PathEscape(request.ID) + "/episodebynumber"
	if err := p.get(ctx, path, query, &ep); err != nil {
		return nil, err
	}

	return &provider.Metadata{
		Core: provider.CoreMetadata{
			Title:       request.Name,
			Year:        request.Year,
			MediaType:   provider.MediaTypeEpisode,
			EpisodeName: ep.Name,
			SeasonNum:   ep.Season,
			EpisodeNum:  ep.Number,
		},
		IDs: map[string]string{
			"series_id":         request.ID,
			"tvmaze_episode_id": strconv.Itoa(ep.ID),
		},
	}, nil
}

// get performs a rate limited GET and decodes a JSON body into out.
func (p *Provider) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeNetworkError, Message: err.Error(), Retry: true}
	}
	defer resp.Body.Close()

	if err := mapStatus(resp, path); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeAPIError, Message: "decode response: " + err.Error()}
	}
	return nil
}

func mapStatus(resp *http.Response, path string) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeNotFound, Message: fmt.Sprintf("no match for %s", path)}
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeRateLimited, Message: "TVMaze rate limit exceeded", Retry: true, RetryAfter: retryAfter}
	default:
		return &provider.ProviderError{Provider: providerName, Code: provider.CodeAPIError, Message: fmt.Sprintf("unexpected status %s", resp.Status)}
	}
}
