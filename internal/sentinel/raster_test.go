package sentinel

import (
	"os"
	"testing"

	"github.com/airbusgeo/godal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	godal.RegisterAll()
	os.Exit(m.Run())
}

func TestScaleReflectance(t *testing.T) {
	r := &Raster{
		Labels: []string{"B1"},
		Width:  2,
		Height: 2,
		Data:   []float64{0, 5000, 10000, 20000},
	}

	r.ScaleReflectance()
	assert.Equal(t, []float64{0, 0.5, 1, 1}, r.Data)
}

func TestWindowCrop(t *testing.T) {
	r := newTestRaster(CanonicalBands, 10, 10)

	window, err := r.Window(2, 3, 4, 5)
	require.NoError(t, err)

	assert.Equal(t, 4, window.Width)
	assert.Equal(t, 5, window.Height)
	assert.Equal(t, r.Labels, window.Labels)

	// Origin shifts by whole pixels along the affine transform.
	assert.InDelta(t, r.GeoTransform[0]+2*r.GeoTransform[1], window.GeoTransform[0], 1e-12)
	assert.InDelta(t, r.GeoTransform[3]+3*r.GeoTransform[5], window.GeoTransform[3], 1e-12)
	assert.Equal(t, r.GeoTransform[1], window.GeoTransform[1])
	assert.Equal(t, r.GeoTransform[5], window.GeoTransform[5])

	for b := 0; b < window.NBands(); b++ {
		for _, v := range window.Band(b) {
			assert.Equal(t, float64(b), v)
		}
	}
}

func TestWindowOutOfBounds(t *testing.T) {
	r := newTestRaster(CanonicalBands, 10, 10)

	_, err := r.Window(8, 8, 4, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")

	_, err = r.Window(-1, 0, 2, 2)
	require.Error(t, err)
}

func TestPixelToLonLat(t *testing.T) {
	r := &Raster{
		Labels:       []string{"B1"},
		Width:        4,
		Height:       4,
		Data:         make([]float64, 16),
		GeoTransform: [6]float64{10, 0.5, 0, 45, 0, -0.5},
	}

	lon, lat := r.PixelToLonLat(0, 0)
	assert.InDelta(t, 10.25, lon, 1e-12)
	assert.InDelta(t, 44.75, lat, 1e-12)

	lon, lat = r.PixelToLonLat(3, 2)
	assert.InDelta(t, 11.75, lon, 1e-12)
	assert.InDelta(t, 43.75, lat, 1e-12)
}
