package landmark_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tps-warp/internal/landmark"
	"tps-warp/pkg/geometry"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	f := landmark.New("triangle")
	f.Stiffness = 1.0
	f.Add(geometry.NewPoint2D(0, 1), geometry.NewPoint2D(0, 1))
	f.Add(geometry.NewPoint2D(1, 0), geometry.NewPoint2D(1.1, 0))
	f.Add(geometry.NewPoint2D(1, 1), geometry.NewPoint2D(1.2, 1.5))

	path := filepath.Join(t.TempDir(), "triangle.json")
	require.NoError(t, f.Save(path))

	loaded, err := landmark.Load(path)
	require.NoError(t, err)
	require.Equal(t, f.Version, loaded.Version)
	require.Equal(t, f.Name, loaded.Name)
	require.Equal(t, f.Stiffness, loaded.Stiffness)
	require.Equal(t, f.Source, loaded.Source)
	require.Equal(t, f.Target, loaded.Target)
}

func TestValidate(t *testing.T) {
	f := landmark.New("bad")
	f.Add(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(0, 0))
	f.Add(geometry.NewPoint2D(1, 0), geometry.NewPoint2D(1, 0))
	require.Error(t, f.Validate(), "too few correspondences")

	f.Add(geometry.NewPoint2D(0, 1), geometry.NewPoint2D(0, 1))
	require.NoError(t, f.Validate())

	f.Source = append(f.Source, geometry.NewPoint2D(2, 2))
	require.Error(t, f.Validate(), "mismatched lengths")

	f.Target = append(f.Target, geometry.NewPoint2D(2, 2))
	f.Stiffness = -1
	require.Error(t, f.Validate(), "negative stiffness")
}

func TestLoadErrors(t *testing.T) {
	_, err := landmark.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = landmark.Load(bad)
	require.Error(t, err)

	short := filepath.Join(t.TempDir(), "short.json")
	require.NoError(t, os.WriteFile(short, []byte(`{"version":1,"source":[{"x":0,"y":0}],"target":[{"x":0,"y":0}]}`), 0o644))
	_, err = landmark.Load(short)
	require.Error(t, err, "validation runs on load")
}
