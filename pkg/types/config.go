package types

import "time"

// HTTPConfig holds HTTP settings for the search request.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with the request
	// (e.g. "dblp-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds the resolved settings for one search invocation.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the search API root; the query type and "/api" are appended
	// (default https://dblp.org/search).
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// OutputFormat selects how a decoded response is written to stdout.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputCSL  OutputFormat = "csl"
)
