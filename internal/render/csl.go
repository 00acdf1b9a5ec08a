package render

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dblp-search/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps DBLP record types to CSL item types.
var cslTypes = map[string]string{
	"Journal Articles":                "article-journal",
	"Conference and Workshop Papers":  "paper-conference",
	"Books and Theses":                "book",
	"Editorship":                      "book",
	"Parts in Books or Collections":   "chapter",
	"Reference Works":                 "entry",
	"Informal and Other Publications": "article",
	"Informal Publications":           "article",
	"Data and Artifacts":              "dataset",
}

// CSL writes the hits of resp as a CSL-YAML list to w, in hit order.
func CSL(w io.Writer, resp *types.SearchResponse) error {
	if resp == nil {
		return ErrNilResponse
	}
	items := make([]CSLItem, len(resp.Result.Hits.Hit))
	for i, h := range resp.Result.Hits.Hit {
		items[i] = toCSLItem(h.Info)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a DBLP record to a CSLItem keyed by the DBLP record key.
func toCSLItem(info types.Info) CSLItem {
	item := CSLItem{
		ID:             info.Key,
		Type:           cslType(info.Type),
		Title:          strings.TrimSuffix(info.Title, "."),
		ContainerTitle: info.Venue,
		Volume:         info.Volume,
		Issue:          info.Number,
		Page:           info.Pages,
		DOI:            info.DOI,
		URL:            info.EE,
	}

	for _, a := range info.Authors.Author {
		item.Author = append(item.Author, parseAuthorName(a.Text))
	}

	if year, err := strconv.Atoi(info.Year); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}
	return item
}

func cslType(dblpType string) string {
	if t, ok := cslTypes[dblpType]; ok {
		return t
	}
	return "article"
}

// parseAuthorName splits a DBLP display name into CSL family/given parts.
// A trailing homonym number ("Wei Wang 0001") is dropped first. The last
// token is the family name; single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	fields := strings.Fields(name)
	if n := len(fields); n > 1 && isHomonymSuffix(fields[n-1]) {
		fields = fields[:n-1]
	}
	switch len(fields) {
	case 0:
		return CSLName{}
	case 1:
		return CSLName{Literal: fields[0]}
	}
	last := len(fields) - 1
	return CSLName{
		Given:  strings.Join(fields[:last], " "),
		Family: fields[last],
	}
}

func isHomonymSuffix(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
