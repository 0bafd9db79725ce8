// Command tpswarp solves a thin-plate-spline warp from a landmark file and
// deforms query points or a generated grid through it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"tps-warp/internal/landmark"
	"tps-warp/internal/version"
	"tps-warp/pkg/geometry"
	"tps-warp/pkg/warp"
)

func main() {
	landmarks := flag.String("landmarks", "", "Path to landmark correspondence file (JSON)")
	points := flag.String("points", "", "Path to query points file (JSON array of {x,y})")
	grid := flag.String("grid", "", "Deform a COLSxROWS grid over the landmark bounding box (e.g. 20x20)")
	lambda := flag.Float64("lambda", -1, "Stiffness override; negative uses the value from the landmark file")
	robust := flag.Bool("robust", false, "Screen landmark outliers with RANSAC before solving")
	threshold := flag.Float64("threshold", 3.0, "RANSAC inlier threshold (with -robust)")
	energy := flag.Bool("energy", false, "Print the bending energy of the solved warp")
	out := flag.String("o", "", "Output file for deformed points (default stdout)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *landmarks == "" {
		fmt.Println("Usage: tpswarp -landmarks <file> [-points <file> | -grid COLSxROWS] [-lambda <v>] [-robust] [-energy] [-o <file>]")
		os.Exit(1)
	}

	lm, err := landmark.Load(*landmarks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load landmarks: %v\n", err)
		os.Exit(1)
	}

	stiffness := lm.Stiffness
	if *lambda >= 0 {
		stiffness = *lambda
	}

	var field *warp.Field2D
	if *robust {
		cfg := warp.DefaultRANSACConfig()
		cfg.Threshold = *threshold
		var inliers []int
		field, inliers, err = warp.Solve2DRobust(lm.Source, lm.Target, stiffness, cfg)
		if err == nil {
			log.Printf("RANSAC kept %d of %d correspondences", len(inliers), len(lm.Source))
		}
	} else {
		field, err = warp.Solve2D(lm.Source, lm.Target, stiffness)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Solve failed: %v\n", err)
		os.Exit(1)
	}

	if *energy {
		fmt.Printf("bending energy: %g\n", field.BendingEnergy())
	}

	queries, err := loadQueries(*points, *grid, lm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if len(queries) == 0 {
		// Solve-only invocation; nothing to deform.
		return
	}

	deformed := field.ApplyAll(queries)
	if err := writePoints(*out, deformed); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}
}

// loadQueries reads query points from a file, or generates a grid over the
// landmark bounding box.
func loadQueries(pointsPath, gridSpec string, lm *landmark.File) ([]geometry.Point2D, error) {
	if pointsPath != "" && gridSpec != "" {
		return nil, fmt.Errorf("use either -points or -grid, not both")
	}

	if pointsPath != "" {
		data, err := os.ReadFile(pointsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read query points: %w", err)
		}
		var pts []geometry.Point2D
		if err := json.Unmarshal(data, &pts); err != nil {
			return nil, fmt.Errorf("failed to parse query points: %w", err)
		}
		return pts, nil
	}

	if gridSpec != "" {
		var cols, rows int
		if _, err := fmt.Sscanf(gridSpec, "%dx%d", &cols, &rows); err != nil || cols < 1 || rows < 1 {
			return nil, fmt.Errorf("invalid grid spec %q, want COLSxROWS", gridSpec)
		}
		bounds := geometry.BoundingBox(lm.Source)
		return geometry.GenerateGridPoints(bounds, cols, rows), nil
	}

	return nil, nil
}

// writePoints writes the deformed points as indented JSON.
func writePoints(path string, points []geometry.Point2D) error {
	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
