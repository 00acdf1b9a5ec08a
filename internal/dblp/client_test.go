// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dblp-search/pkg/types"
)

// dblpTestServer answers every request with statusCode and body. When seen
// is non-nil the request is sent on it.
func dblpTestServer(statusCode int, body string, seen chan<- *http.Request) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			seen <- r.Clone(context.Background())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func testClient(ts *httptest.Server) *Client {
	return &Client{HTTP: ts.Client(), BaseURL: ts.URL, UserAgent: "dblp-search/test"}
}

func TestClientSearch(t *testing.T) {
	seenCh := make(chan *http.Request, 1)
	ts := dblpTestServer(http.StatusOK, sampleResponseJSON, seenCh)
	defer ts.Close()

	q := NewQuery(QueryPublication, "attention is all")
	q.Hits = 2
	resp, err := testClient(ts).Search(context.Background(), q)
	require.NoError(t, err)
	seen := <-seenCh

	assert.Equal(t, "/publ/api", seen.URL.Path)
	assert.Equal(t, "attention is all", seen.URL.Query().Get("q"))
	assert.Equal(t, "2", seen.URL.Query().Get("h"))
	assert.Equal(t, "0", seen.URL.Query().Get("f"))
	assert.Equal(t, "10", seen.URL.Query().Get("c"))
	assert.Equal(t, "json", seen.URL.Query().Get("format"))
	assert.Equal(t, "dblp-search/test", seen.Header.Get("User-Agent"))

	require.Len(t, resp.Result.Hits.Hit, 2)
	assert.Equal(t, "Attention is All you Need.", resp.Result.Hits.Hit[0].Info.Title)
}

func TestClientSearchLogsDiagnostics(t *testing.T) {
	ts := dblpTestServer(http.StatusOK, sampleResponseJSON, nil)
	defer ts.Close()

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	c := testClient(ts)
	c.Log = log
	_, err := c.Search(context.Background(), NewQuery(QueryPublication, "attention"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sending search request")
	assert.Contains(t, out, "received search response")
	assert.Contains(t, out, "hits_total=1234")
}

func TestClientSearchHTTPError(t *testing.T) {
	ts := dblpTestServer(http.StatusServiceUnavailable, "try later", nil)
	defer ts.Close()

	_, err := testClient(ts).Search(context.Background(), NewQuery(QueryPublication, "x"))
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te), "want *TransportError, got %T", err)
	assert.Equal(t, http.StatusServiceUnavailable, te.StatusCode)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestClientSearchNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := testClient(ts).Search(context.Background(), NewQuery(QueryPublication, "x"))
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientSearchNetworkFailure(t *testing.T) {
	ts := dblpTestServer(http.StatusOK, "", nil)
	c := testClient(ts)
	ts.Close()

	_, err := c.Search(context.Background(), NewQuery(QueryPublication, "x"))
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.StatusCode)
	assert.NotNil(t, te.Unwrap())
}

func TestClientSearchMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html page", "<html>oops</html>"},
		{"missing result", `{"status": "ok"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := dblpTestServer(http.StatusOK, tt.body, nil)
			defer ts.Close()

			resp, err := testClient(ts).Search(context.Background(), NewQuery(QueryPublication, "x"))
			assert.Nil(t, resp)
			var mre *MalformedResponseError
			assert.True(t, errors.As(err, &mre), "want *MalformedResponseError, got %T", err)
		})
	}
}

func TestClientSearchInvalidQueryMakesNoRequest(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	_, err := testClient(ts).Search(context.Background(), NewQuery("book", "x"))
	assert.ErrorContains(t, err, "unsupported query type")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClientSearchRejectsXML(t *testing.T) {
	q := NewQuery(QueryPublication, "x")
	q.Format = FormatXML
	_, err := (&Client{}).Search(context.Background(), q)
	assert.ErrorContains(t, err, "json responses only")
}

func TestClientFetchXML(t *testing.T) {
	const xmlBody = `<?xml version="1.0"?><result><query>x</query></result>`
	seenCh := make(chan *http.Request, 1)
	ts := dblpTestServer(http.StatusOK, xmlBody, seenCh)
	defer ts.Close()

	q := NewQuery(QueryAuthor, "x")
	q.Format = FormatXML
	body, err := testClient(ts).Fetch(context.Background(), q)
	require.NoError(t, err)
	seen := <-seenCh
	assert.Equal(t, xmlBody, string(body))
	assert.Equal(t, "xml", seen.URL.Query().Get("format"))
	assert.Equal(t, "/author/api", seen.URL.Path)
}

func TestNewClient(t *testing.T) {
	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "ua"},
		BaseURL:    "http://example.test/search",
	}
	c := NewClient(cfg, nil)
	assert.Equal(t, "ua", c.UserAgent)
	assert.Equal(t, "http://example.test/search", c.BaseURL)
	require.NotNil(t, c.HTTP)
}

func TestClientWithoutLoggerSharesDiscardLogger(t *testing.T) {
	a, b := (&Client{}).logger(), (&Client{}).logger()
	assert.Same(t, a, b)

	l, ok := a.(*logrus.Logger)
	require.True(t, ok)
	assert.False(t, l.IsLevelEnabled(logrus.DebugLevel))
}
