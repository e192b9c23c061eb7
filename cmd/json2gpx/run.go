package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kass/json2gpx/pkg/geo"
	"github.com/kass/json2gpx/pkg/gpx"
	"github.com/kass/json2gpx/pkg/loader"
	"github.com/kass/json2gpx/pkg/merge"
)

// runOptions is the fully resolved configuration of one run: CLI arguments
// and flags folded together with the optional manifest.
type runOptions struct {
	Sources []string
	Output  string
	Dedup   bool
}

// resolveOptions folds the manifest (if any) into the flag values. CLI
// sources come first so manifest sources merge after them, and explicit
// flags always win over manifest defaults.
func resolveOptions(args []string) (runOptions, error) {
	opts := runOptions{Sources: args, Output: outputPath, Dedup: !noDedup}
	if manifestPath != "" {
		m, err := loadManifest(manifestPath)
		if err != nil {
			return runOptions{}, err
		}
		opts.Sources = append(opts.Sources, m.Sources...)
		if opts.Output == "" {
			opts.Output = m.Output
		}
		if !noDedup && m.Dedup != nil {
			opts.Dedup = *m.Dedup
		}
	}
	if len(opts.Sources) == 0 {
		return runOptions{}, errors.New("at least one source is required")
	}
	return opts, nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(args)
	if err != nil {
		return err
	}
	return executeMerge(opts, cmd.OutOrStdout())
}

// executeMerge runs the whole transform: load every source, merge, render,
// and write the output file in one final step so a failing source never
// leaves a partial file behind.
func executeMerge(opts runOptions, out io.Writer) error {
	docs, err := loader.LoadAll(opts.Sources)
	if err != nil {
		return err
	}

	items, meta := merge.Merge(docs, opts.Dedup)
	doc := gpx.Build(items, meta, time.Now())

	outPath := merge.OutputPath(opts.Sources, opts.Output)
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	abs, err := filepath.Abs(outPath)
	if err != nil {
		abs = outPath
	}
	prefix := ""
	if isatty.IsTerminal(os.Stdout.Fd()) {
		prefix = "✅ "
	}
	fmt.Fprintf(out, "%sSaved GPX to %s  (waypoints: %d)\n", prefix, abs, gpx.CountWaypoints(doc))
	return nil
}

func runNearby(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(args)
	if err != nil {
		return err
	}
	return executeNearby(opts, nearbyLat, nearbyLon, nearbyRadius, nearbyCount, cmd.OutOrStdout())
}

func executeNearby(opts runOptions, lat, lon, radiusKm float64, k int, out io.Writer) error {
	docs, err := loader.LoadAll(opts.Sources)
	if err != nil {
		return err
	}

	items, _ := merge.Merge(docs, opts.Dedup)
	idx := geo.NewIndex(items)

	var hits []*geo.Waypoint
	if radiusKm > 0 {
		hits = idx.Radius(lat, lon, radiusKm)
	} else {
		hits = idx.Nearest(lat, lon, k)
	}

	if len(hits) == 0 {
		fmt.Fprintln(out, "no waypoints found")
		return nil
	}
	for i, wp := range hits {
		dist := geo.Distance(lat, lon, wp.Lat, wp.Lng)
		fmt.Fprintf(out, "%d. %s (%.6f, %.6f) - %.2f km\n", i+1, wp.Item.Name(), wp.Lat, wp.Lng, dist)
	}
	return nil
}
