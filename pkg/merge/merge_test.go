package merge

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kass/json2gpx/pkg/models"
)

func loc(lat, lng float64) *models.Location {
	return &models.Location{Lat: lat, Lng: lng}
}

func TestKey(t *testing.T) {
	testCases := []struct {
		name string
		a, b models.Item
		same bool
	}{
		{
			name: "same id collapses",
			a:    models.Item{ID: "x1", Title: "One", Location: loc(1, 2)},
			b:    models.Item{ID: "x1", Title: "Other", Location: loc(3, 4)},
			same: true,
		},
		{
			name: "numeric and string id collapse on text form",
			a:    models.Item{ID: float64(7)},
			b:    models.Item{ID: "7"},
			same: true,
		},
		{
			name: "different ids stay apart",
			a:    models.Item{ID: "x1"},
			b:    models.Item{ID: "x2"},
			same: false,
		},
		{
			name: "geo fallback equal to 7 decimals",
			a:    models.Item{Title: "Wall", Location: loc(48.85000001, 2.35)},
			b:    models.Item{Title: "Wall", Location: loc(48.85000001, 2.35)},
			same: true,
		},
		{
			name: "geo fallback differs past 7 decimals is still equal",
			a:    models.Item{Title: "Wall", Location: loc(48.850000011, 2.35)},
			b:    models.Item{Title: "Wall", Location: loc(48.850000019, 2.35)},
			same: true,
		},
		{
			name: "geo fallback title mismatch",
			a:    models.Item{Title: "Wall", Location: loc(48.85, 2.35)},
			b:    models.Item{Title: "Other", Location: loc(48.85, 2.35)},
			same: false,
		},
		{
			name: "coordinate-less items collapse on title",
			a:    models.Item{Title: "Ghost"},
			b:    models.Item{Title: "Ghost"},
			same: true,
		},
		{
			name: "coordinate-less vs located title twin",
			a:    models.Item{Title: "Ghost"},
			b:    models.Item{Title: "Ghost", Location: loc(1, 2)},
			same: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.same {
				assert.Equal(t, Key(tc.a), Key(tc.b))
			} else {
				assert.NotEqual(t, Key(tc.a), Key(tc.b))
			}
		})
	}
}

func TestMergeDedup(t *testing.T) {
	docs := []models.Document{
		{Items: []models.Item{
			{ID: "1", Title: "First"},
			{ID: "2", Title: "Second"},
		}},
		{Items: []models.Item{
			{ID: "1", Title: "Shadowed"},
			{ID: "3", Title: "Third"},
		}},
	}

	items, _ := Merge(docs, true)
	require.Len(t, items, 3)
	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "Second", items[1].Title)
	assert.Equal(t, "Third", items[2].Title)
}

func TestMergeNoDedup(t *testing.T) {
	docs := []models.Document{
		{Items: []models.Item{{ID: "1"}, {ID: "1"}}},
		{Items: []models.Item{{ID: "1"}}},
	}

	items, _ := Merge(docs, false)
	assert.Len(t, items, 3)
}

func TestMergeMetaFirstWins(t *testing.T) {
	docs := []models.Document{
		{Meta: map[string]any{"generator": "first"}},
		{Meta: map[string]any{"generator": "second"}},
	}

	_, meta := Merge(docs, true)
	assert.Equal(t, "first", meta["generator"])
}

func TestMergeMetaSkipsDocumentsWithout(t *testing.T) {
	docs := []models.Document{
		{},
		{Meta: map[string]any{"generator": "late"}},
	}

	_, meta := Merge(docs, true)
	assert.Equal(t, "late", meta["generator"])
}

func TestOutputPath(t *testing.T) {
	testCases := []struct {
		name     string
		sources  []string
		explicit string
		want     string
	}{
		{"single file", []string{"a.json"}, "", "a.gpx"},
		{"two files", []string{"a.json", "b.json"}, "", "a_merged.gpx"},
		{"explicit wins", []string{"a.json", "b.json"}, "out.gpx", "out.gpx"},
		{"file keeps directory", []string{filepath.Join("data", "a.json")}, "", filepath.Join("data", "a.gpx")},
		{"file without extension", []string{"points"}, "", "points.gpx"},
		{"url stem", []string{"https://example.com/city/points.json"}, "", "points.gpx"},
		{"url stem merged", []string{"https://example.com/points.json", "b.json"}, "", "points_merged.gpx"},
		{"url without path", []string{"https://example.com"}, "", "merged.gpx"},
		{"url root path", []string{"https://example.com/"}, "", "merged.gpx"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OutputPath(tc.sources, tc.explicit))
		})
	}
}
