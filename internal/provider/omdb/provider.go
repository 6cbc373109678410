package omdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Digital-Shane/omdb"
	"github.com/Digital-Shane/torrent-tidy/internal/provider"
)

const providerName = "omdb"

// Provider implements provider.Provider backed by the OMDb API.
type Provider struct {
	client     *omdb.Client
	httpClient *http.Client
	apiKey     string
}

// New returns an unconfigured OMDb provider.
func New() *Provider {
	return &Provider{}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

// Description returns a human readable description.
func (p *Provider) Description() string {
	return "Open Movie Database (OMDb) series and episode titles"
}

// Configure stores the API key and prepares the HTTP client.
func (p *Provider) Configure(config map[string]interface{}) error {
	apiKeyRaw, ok := config["api_key"].(string)
	if !ok {
		return fmt.Errorf("api_key is required")
	}

	apiKey := strings.TrimSpace(apiKeyRaw)
	if apiKey == "" {
		return fmt.Errorf("api_key is required")
	}

	if p.httpClient == nil {
		timeout := 10 * time.Second
		if secs, ok := config["timeout_seconds"].(int); ok && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
		p.httpClient = &http.Client{Timeout: timeout}
	}

	p.apiKey = apiKey
	p.client = omdb.NewClient(p.apiKey, p.httpClient)

	return nil
}

// Fetch retrieves series or episode metadata based on the request.
func (p *Provider) Fetch(ctx context.Context, request provider.FetchRequest) (*provider.Metadata, error) {
	if p.client == nil || p.apiKey == "" {
		return nil, fmt.Errorf("provider not configured")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
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

func (p *Provider) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "invalid api key"), strings.Contains(lower, "missing omdb api key"):
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeAuthFailed,
			Message:  "OMDb authentication failed: " + msg,
		}
	case strings.Contains(lower, "not found"):
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  msg,
		}
	case strings.Contains(lower, "limit reached"), strings.Contains(lower, "too many requests"):
		return &provider.ProviderError{
			Provider:   providerName,
			Code:       provider.CodeRateLimited,
			Message:    msg,
			Retry:      true,
			RetryAfter: 5,
		}
	default:
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeAPIError,
			Message:  msg,
		}
	}
}
