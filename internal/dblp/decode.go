// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pdiddy/dblp-search/pkg/types"
)

// Decode parses a DBLP JSON search response into the response model.
//
// Decoding is all-or-nothing. Every field is required unless it is one of
// access, doi, number, pages, volume, @pid or a pagination attribute
// (@total, @computed, @sent, @first); those default to "". A missing required
// field or a value of the wrong JSON type yields a *MalformedResponseError
// naming the field path. Collections (completions.c, hits.hit,
// authors.author) accept an array, a single object, or no key at all, since
// the API collapses one-element lists and drops empty ones.
func Decode(data []byte) (*types.SearchResponse, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &MalformedResponseError{
				Err: fmt.Errorf("%w: expected object, got %s", ErrTypeMismatch, typeErr.Value),
			}
		}
		return nil, &MalformedResponseError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if m == nil {
		return nil, &MalformedResponseError{Err: fmt.Errorf("%w: expected object, got null", ErrTypeMismatch)}
	}

	d := &decoder{}
	resp := &types.SearchResponse{
		Result: d.result(d.child(object{m: m}, "result")),
	}
	if d.err != nil {
		return nil, d.err
	}
	return resp, nil
}

// object is a decoded JSON object together with its path from the root.
type object struct {
	path string
	m    map[string]json.RawMessage
}

// decoder walks the document keeping the first error; once it is set every
// further read returns a zero value.
type decoder struct {
	err error
}

func (d *decoder) fail(path string, err error) {
	if d.err == nil {
		d.err = &MalformedResponseError{Path: path, Err: err}
	}
}

func (d *decoder) result(o object) types.SearchResult {
	r := types.SearchResult{
		Completions: d.completions(d.child(o, "completions")),
		Hits:        d.hits(d.child(o, "hits")),
		Query:       d.text(o, "query"),
	}
	status := d.child(o, "status")
	r.Status = types.Status{Code: d.text(status, "@code"), Text: d.text(status, "text")}
	t := d.child(o, "time")
	r.Time = types.Time{Unit: d.text(t, "@unit"), Text: d.text(t, "text")}
	return r
}

func (d *decoder) completions(o object) types.Completions {
	c := types.Completions{
		Total:    d.optText(o, "@total"),
		Computed: d.optText(o, "@computed"),
		Sent:     d.optText(o, "@sent"),
	}
	for _, item := range d.list(o, "c") {
		c.C = append(c.C, types.Completion{Text: d.text(item, "text")})
	}
	return c
}

func (d *decoder) hits(o object) types.Hits {
	h := types.Hits{
		Total:    d.optText(o, "@total"),
		Computed: d.optText(o, "@computed"),
		Sent:     d.optText(o, "@sent"),
		First:    d.optText(o, "@first"),
	}
	for _, item := range d.list(o, "hit") {
		h.Hit = append(h.Hit, types.Hit{
			ID:    d.text(item, "@id"),
			Score: d.text(item, "@score"),
			Info:  d.info(d.child(item, "info")),
			URL:   d.text(item, "url"),
		})
	}
	return h
}

func (d *decoder) info(o object) types.Info {
	return types.Info{
		Title:   d.text(o, "title"),
		Authors: d.authors(d.child(o, "authors")),
		Venue:   d.text(o, "venue"),
		Year:    d.text(o, "year"),
		EE:      d.text(o, "ee"),
		Key:     d.text(o, "key"),
		URL:     d.text(o, "url"),
		Type:    d.text(o, "type"),
		Access:  d.optText(o, "access"),
		DOI:     d.optText(o, "doi"),
		Number:  d.optText(o, "number"),
		Pages:   d.optText(o, "pages"),
		Volume:  d.optText(o, "volume"),
	}
}

func (d *decoder) authors(o object) types.Authors {
	var a types.Authors
	for _, item := range d.list(o, "author") {
		a.Author = append(a.Author, types.Author{
			Text: d.text(item, "text"),
			PID:  d.optText(item, "@pid"),
		})
	}
	return a
}

// child returns the required object stored under key.
func (d *decoder) child(o object, key string) object {
	if d.err != nil {
		return object{}
	}
	path := joinPath(o.path, key)
	raw, ok := o.m[key]
	if !ok {
		d.fail(path, ErrMissingField)
		return object{}
	}
	return d.asObject(raw, path)
}

func (d *decoder) asObject(raw json.RawMessage, path string) object {
	if k := kindOf(raw); k != "object" {
		d.fail(path, fmt.Errorf("%w: expected object, got %s", ErrTypeMismatch, k))
		return object{}
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		d.fail(path, err)
		return object{}
	}
	return object{path: path, m: m}
}

// text returns the required string stored under key.
func (d *decoder) text(o object, key string) string {
	if d.err != nil {
		return ""
	}
	path := joinPath(o.path, key)
	raw, ok := o.m[key]
	if !ok {
		d.fail(path, ErrMissingField)
		return ""
	}
	return d.asString(raw, path)
}

// optText returns the string stored under key, or "" when the key is absent
// or null.
func (d *decoder) optText(o object, key string) string {
	if d.err != nil {
		return ""
	}
	raw, ok := o.m[key]
	if !ok || kindOf(raw) == "null" {
		return ""
	}
	return d.asString(raw, joinPath(o.path, key))
}

func (d *decoder) asString(raw json.RawMessage, path string) string {
	if k := kindOf(raw); k != "string" {
		d.fail(path, fmt.Errorf("%w: expected string, got %s", ErrTypeMismatch, k))
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		d.fail(path, err)
		return ""
	}
	return s
}

// list returns the objects of the collection stored under key. A missing key
// or null is an empty collection and a bare object is a one-element one.
func (d *decoder) list(o object, key string) []object {
	if d.err != nil {
		return nil
	}
	path := joinPath(o.path, key)
	raw, ok := o.m[key]
	if !ok {
		return nil
	}

	switch k := kindOf(raw); k {
	case "null":
		return nil
	case "object":
		item := d.asObject(raw, path)
		if d.err != nil {
			return nil
		}
		return []object{item}
	case "array":
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			d.fail(path, err)
			return nil
		}
		items := make([]object, 0, len(elems))
		for i, e := range elems {
			item := d.asObject(e, fmt.Sprintf("%s[%d]", path, i))
			if d.err != nil {
				return nil
			}
			items = append(items, item)
		}
		return items
	default:
		d.fail(path, fmt.Errorf("%w: expected array or object, got %s", ErrTypeMismatch, k))
		return nil
	}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// kindOf names the JSON type of an already validated raw value.
func kindOf(raw json.RawMessage) string {
	s := bytes.TrimSpace(raw)
	if len(s) == 0 {
		return "nothing"
	}
	switch s[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
