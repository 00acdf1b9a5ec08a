// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dblp-search/internal/dblp"
	"github.com/pdiddy/dblp-search/internal/render"
	"github.com/pdiddy/dblp-search/pkg/types"
)

const defaultTimeout = 30 * time.Second

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one DBLP search and print the results",
	Long: `Search queries the DBLP search API once and prints the hits in API order.
The query text comes from --q or, if that is empty, from the arguments.

With --format xml the raw XML document is copied to stdout unchanged.
With --format json (the default) the response is decoded and printed as
text, JSON, or CSL-YAML depending on --output.

Author and venue searches are decoded with the same publication record
schema, so hits that lack a title, ee, or year fail as a malformed response.
Use --format xml to see such results unprocessed.

Because -h selects the number of hits, help is available as --help only.`,
	Example: `  dblp search -t publ -q "attention is all you need"
  dblp search -t author -q knuth -h 5
  dblp search -t venue neurips --output json`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	// Declared here so cobra does not add its default -h shorthand, which
	// belongs to --hits.
	f.Bool("help", false, "help for search")
	f.StringP("type", "t", "", "query type: publ, author, or venue")
	f.StringP("q", "q", "", "query string to search for")
	f.StringP("format", "f", string(dblp.FormatJSON), "result format requested from the API: json or xml")
	f.IntP("hits", "h", dblp.DefaultHits, "maximum number of hits to return (capped at 1000)")
	f.IntP("first", "i", dblp.DefaultFirst, "index of the first hit to return, starting at 0")
	f.IntP("completion", "c", dblp.DefaultCompletion, "maximum number of completion terms (capped at 1000)")
	f.StringP("output", "o", string(types.OutputText), "output for json results: text, json, or csl")
	f.String("color", "auto", "highlight titles: auto, always, or never")
	f.Duration("timeout", defaultTimeout, "HTTP request timeout")
	f.String("base-url", dblp.DefaultBaseURL, "DBLP search API root")
	f.String("user-agent", "", "User-Agent header (default dblp-search/<version>)")

	for key, flag := range map[string]string{
		"type":       "type",
		"query":      "q",
		"format":     "format",
		"hits":       "hits",
		"first":      "first",
		"completion": "completion",
		"output":     "output",
		"color":      "color",
		"timeout":    "timeout",
		"base_url":   "base-url",
		"user_agent": "user-agent",
	} {
		viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(searchCmd)
}

// searchOptions is the resolved invocation of the search command.
type searchOptions struct {
	Query  dblp.Query
	Config types.SearchConfig
	Output types.OutputFormat
	Color  bool
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts, err := resolveSearchOptions(args)
	if err != nil {
		return err
	}

	client := dblp.NewClient(opts.Config, log)
	out := cmd.OutOrStdout()
	ctx := context.Background()

	if opts.Query.Format == dblp.FormatXML {
		body, err := client.Fetch(ctx, opts.Query)
		if err != nil {
			return err
		}
		_, err = out.Write(body)
		return err
	}

	resp, err := client.Search(ctx, opts.Query)
	if err != nil {
		return err
	}
	return writeOutput(out, resp, opts.Output, opts.Color)
}

// resolveSearchOptions reads flags, config file and environment through
// viper and validates the result.
func resolveSearchOptions(args []string) (searchOptions, error) {
	typeName := viper.GetString("type")
	if typeName == "" {
		return searchOptions{}, fmt.Errorf("query type is required: use -t publ, author, or venue")
	}
	qt, err := dblp.ParseQueryType(typeName)
	if err != nil {
		return searchOptions{}, err
	}
	format, err := dblp.ParseFormat(viper.GetString("format"))
	if err != nil {
		return searchOptions{}, err
	}

	text := viper.GetString("query")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}

	q := dblp.Query{
		Type:       qt,
		Text:       text,
		Format:     format,
		Hits:       viper.GetInt("hits"),
		First:      viper.GetInt("first"),
		Completion: viper.GetInt("completion"),
	}
	if err := q.Validate(); err != nil {
		return searchOptions{}, err
	}

	output := types.OutputFormat(viper.GetString("output"))
	switch output {
	case types.OutputText, types.OutputJSON, types.OutputCSL:
	default:
		return searchOptions{}, fmt.Errorf("unsupported output %q: use text, json, or csl", output)
	}

	useColor, err := colorEnabled(viper.GetString("color"))
	if err != nil {
		return searchOptions{}, err
	}

	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = "dblp-search/" + version
	}
	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return searchOptions{
		Query: q,
		Config: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: userAgent},
			BaseURL:    viper.GetString("base_url"),
		},
		Output: output,
		Color:  useColor,
	}, nil
}

// colorEnabled resolves a --color mode. "auto" follows fatih/color's
// terminal and NO_COLOR detection for stdout.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "auto", "":
		return !color.NoColor, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	}
	return false, fmt.Errorf("unsupported color mode %q: use auto, always, or never", mode)
}

func writeOutput(w io.Writer, resp *types.SearchResponse, output types.OutputFormat, useColor bool) error {
	switch output {
	case types.OutputJSON:
		return render.JSON(w, resp)
	case types.OutputCSL:
		return render.CSL(w, resp)
	default:
		return render.Renderer{Color: useColor}.Write(w, resp)
	}
}
