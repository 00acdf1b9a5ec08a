// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dblp-search/internal/render"
)

const oneHitJSON = `{"result": {
  "query": "knuth*",
  "status": {"@code": "200", "text": "OK"},
  "time": {"@unit": "msecs", "text": "0.5"},
  "completions": {"@total": "0"},
  "hits": {"@total": "1", "hit": {"@id": "9", "@score": "4", "url": "URL#9", "info": {
    "title": "The Art of Computer Programming.", "authors": {"author": {"text": "Donald E. Knuth"}},
    "venue": "Addison-Wesley", "year": "1968", "ee": "E", "key": "books/aw/Knuth68", "url": "u",
    "type": "Books and Theses"
  }}}
}}`

const zeroHitsJSON = `{"result": {
  "query": "zzzz*",
  "status": {"@code": "200", "text": "OK"},
  "time": {"@unit": "msecs", "text": "0.1"},
  "completions": {"@total": "0", "@computed": "0", "@sent": "0"},
  "hits": {"@total": "0", "@computed": "0", "@sent": "0", "@first": "0"}
}}`

// resetFlags restores every flag to its default. Commands are package
// globals, so values set by one Execute would otherwise leak into the next.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	searchCmd.Flags().VisitAll(reset)
}

type cliResult struct {
	stdout string
	stderr string
	query  url.Values
	err    error
}

// executeSearch runs "dblp search" against a test server answering with
// body and reports what the CLI printed and which query string it sent.
func executeSearch(t *testing.T, body string, args ...string) cliResult {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	seen := make(chan url.Values, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.URL.Query()
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"search", "--base-url", ts.URL, "--color", "never"}, args...))
	err := rootCmd.Execute()

	res := cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
	select {
	case res.query = <-seen:
	default:
	}
	return res
}

func TestSearchCommandText(t *testing.T) {
	res := executeSearch(t, oneHitJSON, "-t", "publ", "-q", "knuth")
	require.NoError(t, res.err)

	want := "The Art of Computer Programming.\nDonald E. Knuth\nAddison-Wesley   1968\nE\n9\n4\n" + render.Separator + "\n"
	assert.Equal(t, want, res.stdout)
}

func TestSearchCommandHitsShorthand(t *testing.T) {
	res := executeSearch(t, oneHitJSON, "-t", "author", "-q", "knuth", "-h", "5", "-i", "10", "-c", "3")
	require.NoError(t, res.err)
	require.NotNil(t, res.query)

	assert.Equal(t, "5", res.query.Get("h"))
	assert.Equal(t, "10", res.query.Get("f"))
	assert.Equal(t, "3", res.query.Get("c"))
	assert.Equal(t, "knuth", res.query.Get("q"))
	assert.Equal(t, "json", res.query.Get("format"))
}

func TestSearchCommandDefaults(t *testing.T) {
	res := executeSearch(t, oneHitJSON, "-t", "publ", "knuth", "art")
	require.NoError(t, res.err)
	require.NotNil(t, res.query)

	assert.Equal(t, "30", res.query.Get("h"))
	assert.Equal(t, "0", res.query.Get("f"))
	assert.Equal(t, "10", res.query.Get("c"))
	assert.Equal(t, "knuth art", res.query.Get("q"))
}

func TestSearchCommandHelp(t *testing.T) {
	res := executeSearch(t, oneHitJSON, "--help")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Usage:")
	assert.Contains(t, res.stdout, "-h, --hits")
	assert.Contains(t, res.stdout, "--help")
	assert.Contains(t, res.stdout, "same publication record")
	assert.Nil(t, res.query, "help must not send a request")
}

func TestSearchCommandZeroHits(t *testing.T) {
	res := executeSearch(t, zeroHitsJSON, "-t", "publ", "-q", "zzzz")
	require.NoError(t, res.err)
	assert.Equal(t, render.NoResults+"\n", res.stdout)
}

func TestSearchCommandXMLPassthrough(t *testing.T) {
	const xmlBody = "<?xml version=\"1.0\" encoding=\"US-ASCII\"?>\n<result><query>knuth*</query><hits total=\"0\"/></result>\n"
	res := executeSearch(t, xmlBody, "-t", "publ", "-q", "knuth", "-f", "xml")
	require.NoError(t, res.err)
	require.NotNil(t, res.query)

	assert.Equal(t, "xml", res.query.Get("format"))
	assert.Equal(t, xmlBody, res.stdout)
}

func TestSearchCommandVerboseLogsToStderr(t *testing.T) {
	res := executeSearch(t, oneHitJSON, "--verbose", "-t", "publ", "-q", "knuth")
	require.NoError(t, res.err)

	assert.Contains(t, res.stderr, "sending search request")
	assert.Contains(t, res.stderr, "decoded search response")
	assert.NotContains(t, res.stdout, "level=")
	assert.NotContains(t, res.stdout, "search request")
	assert.Equal(t, "The Art of Computer Programming.", firstLine(res.stdout))
}

func TestSearchCommandQuietByDefault(t *testing.T) {
	res := executeSearch(t, oneHitJSON, "-t", "publ", "-q", "knuth")
	require.NoError(t, res.err)
	assert.Empty(t, res.stderr)
}

func TestSearchCommandMalformed(t *testing.T) {
	res := executeSearch(t, `{"result": {}}`, "-t", "publ", "-q", "knuth")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "malformed response at result.completions")
	assert.Contains(t, res.stderr, "Error: malformed response")
	assert.Empty(t, res.stdout)
}

func TestSearchCommandMissingType(t *testing.T) {
	res := executeSearch(t, oneHitJSON, "-q", "knuth")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "query type is required")
	assert.Nil(t, res.query)
}

func TestColorEnabled(t *testing.T) {
	on, err := colorEnabled("always")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := colorEnabled("never")
	require.NoError(t, err)
	assert.False(t, off)

	_, err = colorEnabled("rainbow")
	assert.Error(t, err)
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
