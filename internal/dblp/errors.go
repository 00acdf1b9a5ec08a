// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by MalformedResponseError.
var (
	ErrMissingField = errors.New("missing required field")
	ErrTypeMismatch = errors.New("type mismatch")
)

// TransportError reports that the search request did not complete: it could
// not be sent, the body could not be read, or the API answered with a
// non-2xx status (StatusCode is then set).
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError reports a response body that could not be decoded
// into the response model. Path is the dotted JSON path of the offending
// field using the API's own key names (e.g. "result.hits.hit[0].info.title");
// it is empty when the body is not JSON at all.
type MalformedResponseError struct {
	Path string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed response: %v", e.Err)
	}
	return fmt.Sprintf("malformed response at %s: %v", e.Path, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
