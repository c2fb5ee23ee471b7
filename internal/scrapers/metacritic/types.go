package metacritic

import (
	"errors"
	"time"

	"metascrape/internal/components/telemetry"
)

const (
	DEFAULT_BASE_URL   = "https://www.metacritic.com/game/"
	DEFAULT_USER_AGENT = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var (
	// ErrFetchFailed is returned when the game page could not be retrieved at all.
	ErrFetchFailed = errors.New("page could not be loaded")
	// ErrMalformedStructuredData is returned when the JSON-LD payload of a page is not a JSON object.
	ErrMalformedStructuredData = errors.New("json data could not be parsed")
	// ErrRelatedGamesExtraction is returned when the product cards of a page could not be walked.
	ErrRelatedGamesExtraction = errors.New("related games could not be fetched")
)

type ClientOptions struct {
	// BaseUrl is what slugs get appended to, defaults to DEFAULT_BASE_URL.
	BaseUrl string
	// UserAgent defaults to DEFAULT_USER_AGENT.
	UserAgent string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
	// CloudflareBypass wraps the transport with cloudflare-bp, note that this makes
	// requests carry extra browser-like headers.
	CloudflareBypass bool
	// Output receives a dump of every HTTP exchange, it can be nil.
	Output telemetry.MessageOutput
}

// StructuredData is the decoded JSON-LD object of a game page, numbers are kept
// as json.Number.
type StructuredData map[string]any

// GameRecord holds every field of a game page, a nil field means the page did not have it.
type GameRecord struct {
	Name        *string  `json:"name,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	Metascore   *int     `json:"metascore,omitempty"`
	Publisher   *string  `json:"publisher,omitempty"`
	ReleaseDate *string  `json:"release_date,omitempty"`
	Summary     *string  `json:"summary,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

type RelatedGame struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}
