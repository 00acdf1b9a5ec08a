// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dblp queries the DBLP search API and decodes its JSON responses.
package dblp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryType selects the DBLP search endpoint.
type QueryType string

const (
	QueryPublication QueryType = "publ"
	QueryAuthor      QueryType = "author"
	QueryVenue       QueryType = "venue"
)

// QueryTypes lists the supported query types in help-text order.
var QueryTypes = []QueryType{QueryPublication, QueryAuthor, QueryVenue}

// ParseQueryType converts s to a QueryType.
func ParseQueryType(s string) (QueryType, error) {
	for _, t := range QueryTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported query type %q: use publ, author, or venue", s)
}

// Format is the response format requested from the API.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ParseFormat converts s to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatXML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported format %q: use json or xml", s)
}

// API defaults and caps. The API silently caps h and c at 1000.
const (
	DefaultHits       = 30
	DefaultFirst      = 0
	DefaultCompletion = 10
	MaxHits           = 1000
	MaxCompletion     = 1000
)

// Query holds the parameters of one search request.
type Query struct {
	Type QueryType
	Text string

	Format Format

	// Hits is the maximum number of results (h), First the offset of the
	// first result (f) and Completion the maximum number of completion
	// terms (c).
	Hits       int
	First      int
	Completion int
}

// NewQuery returns a JSON query of type t for text with the API defaults.
func NewQuery(t QueryType, text string) Query {
	return Query{
		Type:       t,
		Text:       text,
		Format:     FormatJSON,
		Hits:       DefaultHits,
		First:      DefaultFirst,
		Completion: DefaultCompletion,
	}
}

// Validate reports the first problem with q, or nil.
func (q Query) Validate() error {
	if _, err := ParseQueryType(string(q.Type)); err != nil {
		return err
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("query is empty: provide a search term")
	}
	if _, err := ParseFormat(string(q.Format)); err != nil {
		return err
	}
	if q.Hits < 0 {
		return fmt.Errorf("hits must not be negative, got %d", q.Hits)
	}
	if q.First < 0 {
		return fmt.Errorf("first must not be negative, got %d", q.First)
	}
	if q.Completion < 0 {
		return fmt.Errorf("completion must not be negative, got %d", q.Completion)
	}
	return nil
}

// Params returns the query-string fields for q. Hits and Completion are
// clamped to the API caps.
func (q Query) Params() url.Values {
	return url.Values{
		"q":      {q.Text},
		"format": {string(q.Format)},
		"h":      {strconv.Itoa(min(q.Hits, MaxHits))},
		"f":      {strconv.Itoa(q.First)},
		"c":      {strconv.Itoa(min(q.Completion, MaxCompletion))},
	}
}

// URL returns the request URL for q under base (e.g. https://dblp.org/search).
func (q Query) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base URL %q must be absolute", base)
	}
	u = u.JoinPath(string(q.Type), "api")
	u.RawQuery = q.Params().Encode()
	return u.String(), nil
}
