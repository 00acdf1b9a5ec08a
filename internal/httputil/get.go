// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the single-request HTTP helper used by the DBLP client.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxBodySize caps how many bytes Get reads from a response body. Tests
// override this to exercise the limit.
var MaxBodySize int64 = 32 << 20

// StatusError reports a response whose status code was not 2xx.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %s", e.Status)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Get issues one GET request for rawURL and reads the whole body. Headers in
// header are added to the request. There is no retry: a transport failure
// is returned as-is, and a non-2xx status is returned as a *StatusError
// alongside the response so the caller can inspect the body.
//
// Bodies larger than MaxBodySize produce an error rather than a truncated
// document.
func Get(ctx context.Context, client *http.Client, rawURL string, header http.Header) (*Response, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > MaxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxBodySize)
	}

	out := &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return out, nil
}
