// Package gpx renders point-of-interest items as a GPX 1.1 waypoint
// document carrying streetart vendor extension elements.
package gpx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kass/json2gpx/pkg/models"
)

// DefaultCreator is used when the source metadata carries no generator.
const DefaultCreator = "json2gpx"

const vendorNS = "https://streetart.media/ns/1.0"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape makes s safe for embedding as XML text or attribute content.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Build renders the full GPX document. Items without numeric coordinates
// produce no waypoint and no diagnostic. The timestamp is passed in so it
// is captured once per invocation, not per item.
func Build(items []models.Item, meta map[string]any, now time.Time) string {
	creator := DefaultCreator
	if g, ok := meta["generator"].(string); ok && g != "" {
		creator = g
	}

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<gpx version=\"1.1\"\n")
	fmt.Fprintf(&b, "     creator=\"%s\"\n", Escape(creator))
	b.WriteString("     xmlns=\"http://www.topografix.com/GPX/1/1\"\n")
	b.WriteString("     xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\"\n")
	fmt.Fprintf(&b, "     xmlns:sa=\"%s\"\n", vendorNS)
	b.WriteString("     xsi:schemaLocation=\"http://www.topografix.com/GPX/1/1\n")
	b.WriteString("                         http://www.topografix.com/GPX/1/1/gpx.xsd\">\n")
	b.WriteString("  <metadata>\n")
	fmt.Fprintf(&b, "    <time>%s</time>\n", Escape(now.Format(time.RFC3339)))
	b.WriteString("  </metadata>\n")

	var wpts []string
	for _, it := range items {
		if w, ok := waypoint(it); ok {
			wpts = append(wpts, w)
		}
	}
	b.WriteString(strings.Join(wpts, "\n"))
	b.WriteString("\n</gpx>\n")
	return b.String()
}

// CountWaypoints counts the emitted <wpt> elements in a rendered document.
func CountWaypoints(doc string) int {
	return strings.Count(doc, "<wpt ")
}

func waypoint(it models.Item) (string, bool) {
	lat, lng, ok := it.Coords()
	if !ok {
		return "", false
	}

	var desc []string
	if it.Location.Address != "" {
		desc = append(desc, it.Location.Address)
	}
	if it.Marker != "" {
		desc = append(desc, "marker: "+it.Marker)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  <wpt lat=\"%s\" lon=\"%s\">\n", formatCoord(lat), formatCoord(lng))
	fmt.Fprintf(&b, "    <name>%s</name>", Escape(it.Name()))
	if it.Href != "" {
		fmt.Fprintf(&b, "\n    <link href=\"%s\"><text>%s</text></link>", Escape(it.Href), Escape(it.LinkText()))
	}
	fmt.Fprintf(&b, "\n    <desc>%s</desc>", Escape(strings.Join(desc, "\n")))
	if it.Type != "" {
		fmt.Fprintf(&b, "\n    <type>%s</type>", Escape(it.Type))
	}
	if ext := extensions(it); ext != "" {
		b.WriteString("\n    <extensions>\n      " + ext + "\n    </extensions>")
	}
	b.WriteString("\n  </wpt>")
	return b.String(), true
}

// extensions renders the sa: vendor fields in fixed order, skipping empty
// ones. An empty result suppresses the <extensions> wrapper entirely.
func extensions(it models.Item) string {
	var fields []string
	if s := it.IDString(); s != "" {
		fields = append(fields, "<sa:id>"+Escape(s)+"</sa:id>")
	}
	if it.SiteID != "" {
		fields = append(fields, "<sa:siteId>"+Escape(it.SiteID)+"</sa:siteId>")
	}
	if it.Status != "" {
		fields = append(fields, "<sa:status>"+Escape(it.Status)+"</sa:status>")
	}
	if it.Marker != "" {
		fields = append(fields, "<sa:marker>"+Escape(it.Marker)+"</sa:marker>")
	}
	return strings.Join(fields, "")
}

// formatCoord emits the coordinate in its natural textual form, with no
// range clamping.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
