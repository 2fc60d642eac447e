package delivery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/airbusgeo/godal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwatch/driftwatch-research-cli/internal/sentinel"
	"github.com/driftwatch/driftwatch-research-cli/internal/usecase"
)

func TestMain(m *testing.M) {
	godal.RegisterAll()
	os.Exit(m.Run())
}

// stubPredictor echoes the NIR band as the probability map, which makes the
// expected classification trivial to derive from the synthetic scene.
type stubPredictor struct{}

func (stubPredictor) Predict(ctx context.Context, scene *sentinel.Raster) (*sentinel.Raster, error) {
	nir, err := scene.BandByLabel("B8")
	if err != nil {
		return nil, err
	}
	return &sentinel.Raster{
		Labels:       []string{"PROB"},
		Width:        scene.Width,
		Height:       scene.Height,
		Data:         append([]float64(nil), nir...),
		GeoTransform: scene.GeoTransform,
		Projection:   scene.Projection,
	}, nil
}

// writeSyntheticScene builds a 12-band scene in digital numbers. The left
// half of B8 scales to 0.9 reflectance and the right half to 0.1, so a 0.4
// cutoff flags exactly the left half.
func writeSyntheticScene(t *testing.T, path string, width, height int) {
	t.Helper()

	scene := &sentinel.Raster{
		Labels:       append([]string(nil), sentinel.CanonicalBands...),
		Width:        width,
		Height:       height,
		Data:         make([]float64, len(sentinel.CanonicalBands)*width*height),
		GeoTransform: [6]float64{24.5, 0.0001, 0, 38.2, 0, -0.0001},
	}
	for b := range scene.Labels {
		band := scene.Band(b)
		for i := range band {
			band[i] = 5000
		}
	}
	nir, err := scene.BandByLabel("B8")
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				nir[y*width+x] = 9000
			} else {
				nir[y*width+x] = 1000
			}
		}
	}

	require.NoError(t, sentinel.WriteGeoTIFF(path, scene, godal.Float64))
}

func readSingleBand(t *testing.T, path string) ([]float64, int, int) {
	t.Helper()

	ds, err := godal.Open(path)
	require.NoError(t, err)
	defer ds.Close()

	structure := ds.Structure()
	data := make([]float64, structure.SizeX*structure.SizeY)
	require.NoError(t, ds.Bands()[0].Read(0, 0, data, structure.SizeX, structure.SizeY))
	return data, structure.SizeX, structure.SizeY
}

func TestPredictScene(t *testing.T) {
	tilesDir := t.TempDir()
	outputDir := t.TempDir()

	const width, height = 8, 6
	scenePath := filepath.Join(tilesDir, "demo_scene.tif")
	writeSyntheticScene(t, scenePath, width, height)

	result, err := PredictScene(context.Background(), stubPredictor{}, scenePath, outputDir, FullSceneThreshold)
	require.NoError(t, err)

	// Left half of the scene is above the cutoff.
	assert.Equal(t, width/2*height, result.Detections)

	class, w, h := readSingleBand(t, result.ClassificationPath)
	require.Equal(t, width, w)
	require.Equal(t, height, h)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			expected := 0.0
			if x < width/2 {
				expected = 1.0
			}
			assert.Equal(t, expected, class[y*width+x], "pixel (%d,%d)", x, y)
		}
	}

	prob, _, _ := readSingleBand(t, result.ProbabilityPath)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			expected := 0.1
			if x < width/2 {
				expected = 0.9
			}
			assert.InDelta(t, expected, prob[y*width+x], 1e-6)
		}
	}

	// All bands equal makes NDVI 0 everywhere except where B8 diverges.
	ndvi, _, _ := readSingleBand(t, result.NDVIPath)
	assert.InDelta(t, (0.9-0.5)/(0.9+0.5), ndvi[0], 1e-6)
	assert.InDelta(t, (0.1-0.5)/(0.1+0.5), ndvi[height*width-1], 1e-6)

	assert.FileExists(t, result.QuicklookPath)
	assert.FileExists(t, filepath.Join(outputDir, "demo_scene_prob.png"))
	assert.FileExists(t, result.DetectionsPath)
}

func TestRunUseCases(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)

	tilesDir := filepath.Join(root, "data", "tiles")
	require.NoError(t, os.MkdirAll(tilesDir, 0755))

	const width, height = 10, 10
	writeSyntheticScene(t, filepath.Join(tilesDir, "demo_scene.tif"), width, height)

	useCases := []usecase.UseCase{
		{Name: "harbor", Scene: "demo_scene.tif", Col: 0, Row: 0, Width: 4, Height: 4},
		{Name: "open_water", Scene: "demo_scene.tif", Col: 6, Row: 6, Width: 4, Height: 4},
	}

	results, err := RunUseCases(context.Background(), stubPredictor{}, useCases)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// The harbor window sits in the high-NIR half, open water in the low one.
	assert.Equal(t, 16, results[0].Detections)
	assert.Equal(t, 0, results[1].Detections)

	for _, result := range results {
		assert.FileExists(t, result.ProbabilityPath)
		assert.FileExists(t, result.ClassificationPath)
	}
}

func TestRunUseCasesWindowOutOfBounds(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)

	tilesDir := filepath.Join(root, "data", "tiles")
	require.NoError(t, os.MkdirAll(tilesDir, 0755))
	writeSyntheticScene(t, filepath.Join(tilesDir, "demo_scene.tif"), 6, 6)

	useCases := []usecase.UseCase{
		{Name: "too_big", Scene: "demo_scene.tif", Col: 4, Row: 4, Width: 8, Height: 8},
	}

	_, err := RunUseCases(context.Background(), stubPredictor{}, useCases)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")
}
