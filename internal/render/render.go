// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a decoded DBLP search response into output: the
// human-readable text view, an indented JSON echo, or a CSL-YAML
// bibliography. All renderers are pure functions of their input and write
// only to the writer they are given.
package render

import (
	"errors"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pdiddy/dblp-search/pkg/types"
)

const (
	// Separator ends every hit block.
	Separator = "-----------------------------"

	// NoResults replaces the hit blocks when the response has no hits.
	NoResults = "No results found."

	completionsHeader = "Completions:"
)

// ErrNilResponse is returned when there is no response to render.
var ErrNilResponse = errors.New("render: nil response")

// Renderer produces the text view of a search response.
type Renderer struct {
	// Color renders titles in bold using ANSI escapes. The text content of
	// every line is the same either way.
	Color bool
}

// Lines returns the text view of resp, one element per output line:
//
//   - a "Completions:" header and one "- <text>" line per completion,
//     followed by a blank line; omitted when there are no completions
//   - per hit: title, authors joined by ", ", the
//     "venue pages (number) volume year" line, ee, id, score and Separator
//   - NoResults instead of the hit blocks when there are no hits
func (r Renderer) Lines(resp *types.SearchResponse) []string {
	if resp == nil {
		return nil
	}
	res := resp.Result

	var lines []string
	if len(res.Completions.C) > 0 {
		lines = append(lines, completionsHeader)
		for _, c := range res.Completions.C {
			lines = append(lines, "- "+c.Text)
		}
		lines = append(lines, "")
	}

	if len(res.Hits.Hit) == 0 {
		return append(lines, NoResults)
	}

	for _, h := range res.Hits.Hit {
		lines = append(lines,
			r.title(h.Info.Title),
			strings.Join(h.Info.Authors.AuthorNames(), ", "),
			venueLine(h.Info),
			h.Info.EE,
			h.ID,
			h.Score,
			Separator,
		)
	}
	return lines
}

// Write writes the text view of resp to w, one line per element of Lines.
func (r Renderer) Write(w io.Writer, resp *types.SearchResponse) error {
	if resp == nil {
		return ErrNilResponse
	}
	var b strings.Builder
	for _, line := range r.Lines(resp) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// venueLine writes "venue pages (number) volume year". Venue, pages and
// year are space-separated slots that stay in place when empty; number and
// volume share one slot and leave it empty when both are missing.
func venueLine(info types.Info) string {
	issue := info.Volume
	if info.Number != "" {
		issue = strings.TrimSpace("(" + info.Number + ") " + info.Volume)
	}
	return strings.Join([]string{info.Venue, info.Pages, issue, info.Year}, " ")
}

func (r Renderer) title(s string) string {
	if !r.Color {
		return s
	}
	c := color.New(color.Bold)
	c.EnableColor()
	return c.Sprint(s)
}
