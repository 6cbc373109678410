package tmdb

import (
	"fmt"
	"strings"
	"time"

	"github.com/Digital-Shane/torrent-tidy/internal/provider"
	"github.com/ryanbradynd05/go-tmdb"
)

const (
	providerName = "tmdb"
)

// Provider implements the provider.Provider interface for TMDB
type Provider struct {
	client      TMDBClient
	language    string
	apiKey      string
	rateLimiter *provider.RateLimiter
}

// TMDBClient is the subset of *tmdb.TMDb the show lookup uses
type TMDBClient interface {
	SearchTv(name string, options map[string]string) (*tmdb.TvSearchResults, error)
	GetTvEpisodeInfo(showID, seasonNum, episodeNum int, options map[string]string) (*tmdb.TvEpisode, error)
}

// New creates a new TMDB provider instance
func New() *Provider {
	return &Provider{
		language: "en-US",
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return providerName
}

// Description returns the provider description
func (p *Provider) Description() string {
	return "The Movie Database (TMDB) show and episode titles"
}

// Configure applies configuration to the provider
func (p *Provider) Configure(config map[string]interface{}) error {
	apiKey, ok := config["api_key"].(string)
	if !ok || apiKey == "" {
		return fmt.Errorf("api_key is required")
	}
	p.apiKey = apiKey

	if language, ok := config["language"].(string); ok && language != "" {
		p.language = language
	}

	p.client = tmdb.Init(tmdb.Config{
		APIKey:   p.apiKey,
		Proxies:  nil,
		UseProxy: false,
	})

	// 38 requests per 10 seconds
	p.rateLimiter = provider.NewRateLimiter(38, 10*time.Second)

	return nil
}

// mapError maps TMDB errors to provider errors
func (p *Provider) mapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "unauthorized") {
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeAuthFailed,
			Message:  "TMDB authentication failed: " + err.Error(),
		}
	}
	if strings.Contains(errStr, "404") || strings.Contains(errStr, "not found") {
		return &provider.ProviderError{
			Provider: providerName,
			Code:     provider.CodeNotFound,
			Message:  "TMDB resource not found",
		}
	}
	if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") {
		return &provider.ProviderError{
			Provider:   providerName,
			Code:       provider.CodeRateLimited,
			Message:    "TMDB rate limit exceeded",
			Retry:      true,
			RetryAfter: 10,
		}
	}

	return &provider.ProviderError{
		Provider: providerName,
		Code:     provider.CodeAPIError,
		Message:  "TMDB error: " + err.Error(),
	}
}
