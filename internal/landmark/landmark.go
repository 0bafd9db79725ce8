// Package landmark provides landmark-correspondence file handling for the
// command-line tools.
package landmark

import (
	"encoding/json"
	"fmt"
	"os"

	"tps-warp/pkg/geometry"
)

// File represents a landmark correspondence file (.json): the source points
// and the positions they should deform onto.
type File struct {
	Version   int                `json:"version"`
	Name      string             `json:"name,omitempty"`
	Stiffness float64            `json:"stiffness,omitempty"`
	Source    []geometry.Point2D `json:"source"`
	Target    []geometry.Point2D `json:"target"`
}

// New creates an empty landmark file with default settings.
func New(name string) *File {
	return &File{
		Version: 1,
		Name:    name,
	}
}

// Add appends one correspondence.
func (f *File) Add(src, dst geometry.Point2D) {
	f.Source = append(f.Source, src)
	f.Target = append(f.Target, dst)
}

// Validate checks that the file holds a usable correspondence set.
func (f *File) Validate() error {
	if len(f.Source) != len(f.Target) {
		return fmt.Errorf("landmark: source has %d points, target has %d", len(f.Source), len(f.Target))
	}
	if len(f.Source) < 3 {
		return fmt.Errorf("landmark: need at least 3 correspondences, got %d", len(f.Source))
	}
	if f.Stiffness < 0 {
		return fmt.Errorf("landmark: stiffness must be non-negative, got %v", f.Stiffness)
	}
	return nil
}

// Load loads landmarks from a JSON file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("landmark: parse %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes the landmarks to a file.
func (f *File) Save(path string) error {
	if err := f.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
