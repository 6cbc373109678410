package provider

import (
	"context"
	"errors"
	"fmt"
)

// MediaType represents the kind of record a lookup asks for
type MediaType string

const (
	MediaTypeShow    MediaType = "show"
	MediaTypeEpisode MediaType = "episode"
)

// Provider is the interface every show metadata backend implements
type Provider interface {
	// Identification
	Name() string
	Description() string

	// Configuration
	Configure(config map[string]interface{}) error

	// Data fetching
	Fetch(ctx context.Context, request FetchRequest) (*Metadata, error)
}

// FetchRequest represents a request for metadata.
//
// A show request searches by Name. An episode request addresses the episode by
// the show ID returned from the show lookup plus Season and Episode.
type FetchRequest struct {
	MediaType MediaType
	Name      string
	Year      string
	Season    int
	Episode   int
	ID        string // Provider-specific show ID if known
	Language  string // Preferred language
}

// Metadata represents the fetched metadata
type Metadata struct {
	Core CoreMetadata

	// Provider-specific IDs; every backend sets "series_id" on show results
	IDs map[string]string
}

// CoreMetadata contains the fields the renamer consumes
type CoreMetadata struct {
	Title     string
	Year      string
	MediaType MediaType

	SeasonNum   int
	EpisodeName string
	EpisodeNum  int
}

// Error codes shared by all backends
const (
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimited  = "RATE_LIMITED"
	CodeAuthFailed   = "AUTH_FAILED"
	CodeAPIError     = "API_ERROR"
	CodeNetworkError = "NETWORK_ERROR"
	CodeInvalidReq   = "INVALID_REQUEST"
)

// ProviderError represents an error from a provider
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	Retry      bool
	RetryAfter int // Seconds to wait before retry
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// IsNotFound reports whether err is a provider error signalling no match.
func IsNotFound(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Code == CodeNotFound
}
