// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the dblp-search packages:
// the typed view of a DBLP search API response and the resolved search settings.
//
// The response types are read-only once decoded. JSON tags use plain field
// names; the "@" attribute prefix of the API's wire format is handled by the
// decoder in internal/dblp, not by these tags.
package types

// SearchResponse is the top-level envelope of a DBLP search API response.
type SearchResponse struct {
	Result SearchResult `json:"result" yaml:"result"`
}

// SearchResult holds everything the API returned for one query.
type SearchResult struct {
	Completions Completions `json:"completions" yaml:"completions"`
	Hits        Hits        `json:"hits" yaml:"hits"`

	// Query is the query string as echoed back by the API.
	Query  string `json:"query" yaml:"query"`
	Status Status `json:"status" yaml:"status"`
	Time   Time   `json:"time" yaml:"time"`
}

// Completions lists the auto-complete suggestions for the query.
type Completions struct {
	C []Completion `json:"c" yaml:"c"`

	Total    string `json:"total,omitempty" yaml:"total,omitempty"`
	Computed string `json:"computed,omitempty" yaml:"computed,omitempty"`
	Sent     string `json:"sent,omitempty" yaml:"sent,omitempty"`
}

// Completion is a single auto-complete suggestion.
type Completion struct {
	Text string `json:"text" yaml:"text"`
}

// Hits lists the search results in API order.
type Hits struct {
	Hit []Hit `json:"hit" yaml:"hit"`

	// Pagination attributes reported by the API. Kept as text and empty
	// when the API omits them.
	Total    string `json:"total,omitempty" yaml:"total,omitempty"`
	Computed string `json:"computed,omitempty" yaml:"computed,omitempty"`
	Sent     string `json:"sent,omitempty" yaml:"sent,omitempty"`
	First    string `json:"first,omitempty" yaml:"first,omitempty"`
}

// Hit is one search result record.
type Hit struct {
	ID string `json:"id" yaml:"id"`

	// Score is the relevance score exactly as the API wrote it. It is never
	// parsed so that echo output round-trips the original text.
	Score string `json:"score" yaml:"score"`
	Info  Info   `json:"info" yaml:"info"`
	URL   string `json:"url" yaml:"url"`
}

// Info is the bibliographic record of a hit. Access, DOI, Number, Pages and
// Volume are optional and empty when the API omits them.
type Info struct {
	Title   string  `json:"title" yaml:"title"`
	Authors Authors `json:"authors" yaml:"authors"`
	Venue   string  `json:"venue" yaml:"venue"`
	Year    string  `json:"year" yaml:"year"`

	// EE is the electronic edition link.
	EE   string `json:"ee" yaml:"ee"`
	Key  string `json:"key" yaml:"key"`
	URL  string `json:"url" yaml:"url"`
	Type string `json:"type" yaml:"type"`

	Access string `json:"access" yaml:"access"`
	DOI    string `json:"doi" yaml:"doi"`
	Number string `json:"number" yaml:"number"`
	Pages  string `json:"pages" yaml:"pages"`
	Volume string `json:"volume" yaml:"volume"`
}

// Authors lists the authors of a record in canonical source order.
type Authors struct {
	Author []Author `json:"author" yaml:"author"`
}

// Author is a person credited on a record. PID is empty when the API does
// not disambiguate the person.
type Author struct {
	Text string `json:"text" yaml:"text"`
	PID  string `json:"pid,omitempty" yaml:"pid,omitempty"`
}

// Status is the request status reported by the API.
type Status struct {
	Code string `json:"code" yaml:"code"`
	Text string `json:"text" yaml:"text"`
}

// Time is the processing duration reported by the API.
type Time struct {
	Unit string `json:"unit" yaml:"unit"`
	Text string `json:"text" yaml:"text"`
}

// AuthorNames returns the display names of the authors in source order.
func (a Authors) AuthorNames() []string {
	names := make([]string, len(a.Author))
	for i, au := range a.Author {
		names[i] = au.Text
	}
	return names
}
