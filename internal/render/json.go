// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"io"

	"github.com/pdiddy/dblp-search/pkg/types"
)

// JSON writes resp as indented JSON to w. Field names are the plain model
// names (no "@" prefix) and text fields such as score are echoed verbatim.
func JSON(w io.Writer, resp *types.SearchResponse) error {
	if resp == nil {
		return ErrNilResponse
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
