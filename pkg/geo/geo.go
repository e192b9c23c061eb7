// Package geo provides an R-Tree index over merged point-of-interest items
// for radius and nearest-neighbor lookups.
package geo

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/kass/json2gpx/pkg/models"
)

const (
	tolerance   = 0.0001
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
	earthRadius = 6371.0 // km
)

// Waypoint is one indexed item with its resolved coordinates.
type Waypoint struct {
	Item models.Item
	Lat  float64
	Lng  float64
}

// spatialWaypoint wraps a Waypoint to implement rtreego.Spatial
type spatialWaypoint struct {
	*Waypoint
	rect *rtreego.Rect
}

func (sw *spatialWaypoint) Bounds() *rtreego.Rect {
	return sw.rect
}

// Index is an R-Tree over the coordinate-bearing subset of an item list.
// It is built once per invocation and never mutated afterwards.
type Index struct {
	tree *rtreego.Rtree
	size int
}

// NewIndex indexes every item with numeric coordinates. Items without them
// are skipped, mirroring waypoint emission.
func NewIndex(items []models.Item) *Index {
	idx := &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
	for _, it := range items {
		lat, lng, ok := it.Coords()
		if !ok {
			continue
		}
		wp := &Waypoint{Item: it, Lat: lat, Lng: lng}
		rect := rtreego.Point{lat, lng}.ToRect(tolerance)
		idx.tree.Insert(&spatialWaypoint{wp, rect})
		idx.size++
	}
	return idx
}

// Size returns the number of indexed waypoints.
func (idx *Index) Size() int {
	return idx.size
}

// Radius returns all waypoints within radiusKm of the center, closest
// first. The R-Tree narrows candidates with a bounding box; the exact
// haversine distance filters the box corners out.
func (idx *Index) Radius(lat, lng, radiusKm float64) []*Waypoint {
	deg := (radiusKm / earthRadius) * (180 / math.Pi)
	bounds, err := rtreego.NewRect(
		rtreego.Point{lat - deg, lng - deg},
		[]float64{2 * deg, 2 * deg},
	)
	if err != nil {
		return nil
	}

	var out []*Waypoint
	for _, result := range idx.tree.SearchIntersect(bounds) {
		sw, ok := result.(*spatialWaypoint)
		if !ok {
			continue
		}
		if Distance(lat, lng, sw.Lat, sw.Lng) <= radiusKm {
			out = append(out, sw.Waypoint)
		}
	}
	sortByDistance(out, lat, lng)
	return out
}

// Nearest returns up to k waypoints closest to the given location.
func (idx *Index) Nearest(lat, lng float64, k int) []*Waypoint {
	results := idx.tree.NearestNeighbors(k, rtreego.Point{lat, lng})

	out := make([]*Waypoint, 0, len(results))
	for _, result := range results {
		sw, ok := result.(*spatialWaypoint)
		if !ok {
			continue
		}
		out = append(out, sw.Waypoint)
	}
	sortByDistance(out, lat, lng)
	return out
}

func sortByDistance(wps []*Waypoint, lat, lng float64) {
	sort.Slice(wps, func(i, j int) bool {
		return Distance(lat, lng, wps[i].Lat, wps[i].Lng) <
			Distance(lat, lng, wps[j].Lat, wps[j].Lng)
	})
}

// Distance calculates the haversine distance between two points in
// kilometers.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lon1Rad := lon1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	lon2Rad := lon2 * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
