// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/dblp-search/internal/httputil"
	"github.com/pdiddy/dblp-search/pkg/types"
)

// DefaultBaseURL is the root of the DBLP search API.
const DefaultBaseURL = "https://dblp.org/search"

// Client performs DBLP search requests. One request per call, no retry.
type Client struct {
	HTTP *http.Client

	// BaseURL overrides DefaultBaseURL; tests point it at an httptest server.
	BaseURL   string
	UserAgent string

	// Log receives request diagnostics. Nil discards them.
	Log logrus.FieldLogger
}

// NewClient builds a Client from cfg.
func NewClient(cfg types.SearchConfig, log logrus.FieldLogger) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		Log:       log,
	}
}

// Fetch validates q, performs the GET request and returns the raw body in
// the requested format. Failures to complete the request are returned as
// *TransportError.
func (c *Client) Fetch(ctx context.Context, q Query) ([]byte, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	reqURL, err := q.URL(base)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if c.UserAgent != "" {
		header.Set("User-Agent", c.UserAgent)
	}

	log := c.logger().WithField("url", reqURL)
	log.Debug("sending search request")

	start := time.Now()
	resp, err := httputil.Get(ctx, c.HTTP, reqURL, header)
	if err != nil {
		te := &TransportError{URL: reqURL, Err: err}
		var se *httputil.StatusError
		if errors.As(err, &se) {
			te.StatusCode = se.StatusCode
		}
		log.WithError(err).Debug("search request failed")
		return nil, te
	}

	log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"bytes":   len(resp.Body),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("received search response")
	return resp.Body, nil
}

// Search fetches q as JSON and decodes the body into the response model.
// A body that does not match the model is returned as
// *MalformedResponseError; nothing is returned alongside it.
func (c *Client) Search(ctx context.Context, q Query) (*types.SearchResponse, error) {
	if q.Format != FormatJSON {
		return nil, fmt.Errorf("search decodes json responses only, got format %q", q.Format)
	}

	body, err := c.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	resp, err := Decode(body)
	if err != nil {
		return nil, err
	}

	r := resp.Result
	c.logger().WithFields(logrus.Fields{
		"query":       r.Query,
		"status_code": r.Status.Code,
		"status_text": r.Status.Text,
		"time":        r.Time.Text + " " + r.Time.Unit,
		"hits_total":  r.Hits.Total,
		"hits_first":  r.Hits.First,
		"hits_sent":   r.Hits.Sent,
		"completions": len(r.Completions.C),
	}).Debug("decoded search response")
	return resp, nil
}

// discardLog is used when Client.Log is nil.
var discardLog = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

func (c *Client) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return discardLog
}
