// Package models defines the source JSON shape shared by every merge
// source: a top-level "items" list of point-of-interest records plus an
// optional "@meta" object.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrItemsMissing reports JSON whose top-level "items" field is absent,
// null, or not an array.
var ErrItemsMissing = errors.New("items[] missing or not a list")

// Location is the optional coordinate block of an item. Lat and Lng keep
// their decoded JSON value so that garbage coordinates (strings, nulls)
// mark the item invalid instead of failing the whole document decode.
type Location struct {
	Lat     any    `json:"lat"`
	Lng     any    `json:"lng"`
	Address string `json:"address"`
}

// Coords returns the numeric coordinates and whether both are present.
func (l *Location) Coords() (lat, lng float64, ok bool) {
	if l == nil {
		return 0, 0, false
	}
	la, okLat := l.Lat.(float64)
	ln, okLng := l.Lng.(float64)
	if !okLat || !okLng {
		return 0, 0, false
	}
	return la, ln, true
}

// Item is one point-of-interest record. Every field is optional in the
// source; absent strings decode to "".
type Item struct {
	ID       any       `json:"id"`
	Title    string    `json:"title"`
	Href     string    `json:"href"`
	Marker   string    `json:"marker"`
	Type     string    `json:"type"`
	Status   string    `json:"status"`
	SiteID   string    `json:"siteId"`
	Location *Location `json:"location"`
}

// Coords returns the item's numeric coordinates and whether it has both.
// Items failing this check never become waypoints.
func (it Item) Coords() (lat, lng float64, ok bool) {
	return it.Location.Coords()
}

// IDString returns the item id as text, or "" when absent.
func (it Item) IDString() string {
	return ScalarString(it.ID)
}

// Name resolves the waypoint display name: title, then id, then the
// literal fallback "Untitled".
func (it Item) Name() string {
	if it.Title != "" {
		return it.Title
	}
	if s := it.IDString(); s != "" {
		return s
	}
	return "Untitled"
}

// LinkText resolves the link label: title, then id, then the href itself.
func (it Item) LinkText() string {
	if it.Title != "" {
		return it.Title
	}
	if s := it.IDString(); s != "" {
		return s
	}
	return it.Href
}

// Document is the parsed form of one merge source.
type Document struct {
	Items []Item
	Meta  map[string]any
}

// ParseDocument decodes one source body. The "items" field must be a JSON
// array; anything else (including an absent or null field) yields
// ErrItemsMissing so the caller can report a schema failure rather than a
// read failure.
func ParseDocument(data []byte) (Document, error) {
	var raw struct {
		Items json.RawMessage `json:"items"`
		Meta  map[string]any  `json:"@meta"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, err
	}
	v := bytes.TrimLeft(raw.Items, " \t\r\n")
	if len(v) == 0 || v[0] != '[' {
		return Document{}, ErrItemsMissing
	}
	var items []Item
	if err := json.Unmarshal(raw.Items, &items); err != nil {
		return Document{}, err
	}
	return Document{Items: items, Meta: raw.Meta}, nil
}

// ScalarString renders a decoded JSON scalar: strings verbatim, numbers in
// their shortest exact form, booleans as true/false, nil as "".
func ScalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
