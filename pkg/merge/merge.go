// Package merge concatenates the items of every loaded document, optionally
// collapsing duplicates, and derives the output file path.
package merge

import (
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kass/json2gpx/pkg/loader"
	"github.com/kass/json2gpx/pkg/models"
)

// keySep never appears in source text, so joined key parts cannot collide.
const keySep = "\x00"

// Key derives the dedup identity of an item. Items carrying an id collapse
// on the id alone; everything else falls back to the coordinates rounded to
// 7 decimal places plus the title. Items without numeric coordinates still
// take the geo branch with empty coordinate parts, so two title-equal
// coordinate-less items collapse even though neither produces a waypoint.
func Key(it models.Item) string {
	if it.ID != nil {
		return "id" + keySep + models.ScalarString(it.ID)
	}

	lat, lng := "none", "none"
	if loc := it.Location; loc != nil {
		if v, ok := loc.Lat.(float64); ok {
			lat = strconv.FormatFloat(v, 'f', 7, 64)
		}
		if v, ok := loc.Lng.(float64); ok {
			lng = strconv.FormatFloat(v, 'f', 7, 64)
		}
	}
	return strings.Join([]string{"geo", lat, lng, it.Title}, keySep)
}

// Merge concatenates the items of all documents in source order and picks
// the @meta of the first document that has one. When dedup is true, later
// items whose Key matches an earlier one are dropped; the first occurrence
// wins and relative order is preserved.
func Merge(docs []models.Document, dedup bool) ([]models.Item, map[string]any) {
	var items []models.Item
	var meta map[string]any
	for _, d := range docs {
		if meta == nil {
			meta = d.Meta
		}
		items = append(items, d.Items...)
	}
	if !dedup {
		return items, meta
	}

	seen := make(map[string]struct{}, len(items))
	kept := items[:0]
	for _, it := range items {
		k := Key(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, it)
	}
	return kept, meta
}

// OutputPath derives the output file path. An explicit path wins verbatim.
// Otherwise the first source provides the stem: a URL uses the final path
// segment ("merged" when the URL has none), a local file its own name with
// the directory kept. A lone source gets ".gpx", a multi-source merge
// "_merged.gpx".
func OutputPath(sources []string, explicit string) string {
	if explicit != "" {
		return explicit
	}

	suffix := ".gpx"
	if len(sources) > 1 {
		suffix = "_merged.gpx"
	}

	first := sources[0]
	if loader.IsURL(first) {
		stem := ""
		if u, err := url.Parse(first); err == nil {
			stem = stripExt(path.Base(u.Path))
		}
		if stem == "" || stem == "." || stem == "/" {
			stem = "merged"
		}
		return stem + suffix
	}
	return filepath.Join(filepath.Dir(first), stripExt(filepath.Base(first))+suffix)
}

func stripExt(base string) string {
	return strings.TrimSuffix(base, filepath.Ext(base))
}
