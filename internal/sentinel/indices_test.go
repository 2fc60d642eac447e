package sentinel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantRaster(labels []string, width, height int, value float64) *Raster {
	r := newTestRaster(labels, width, height)
	for i := range r.Data {
		r.Data[i] = value
	}
	return r
}

func TestNDVIAllOnesIsZero(t *testing.T) {
	r := constantRaster(CanonicalBands, 8, 8, 1)

	ndvi, err := NDVI(r)
	require.NoError(t, err)
	for _, v := range ndvi.Data {
		assert.Zero(t, v)
	}
}

func TestFDIAllOnesIsZero(t *testing.T) {
	r := constantRaster(CanonicalBands, 8, 8, 1)

	fdi, err := FDI(r)
	require.NoError(t, err)
	for _, v := range fdi.Data {
		assert.Zero(t, v)
	}
}

func TestNDVIBounded(t *testing.T) {
	r := newTestRaster(CanonicalBands, 16, 16)
	rng := rand.New(rand.NewSource(42))
	for i := range r.Data {
		r.Data[i] = rng.Float64()
	}

	ndvi, err := NDVI(r)
	require.NoError(t, err)
	for _, v := range ndvi.Data {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestNDVIZeroReflectanceGuard(t *testing.T) {
	r := constantRaster(CanonicalBands, 2, 2, 0)

	ndvi, err := NDVI(r)
	require.NoError(t, err)
	for _, v := range ndvi.Data {
		assert.Zero(t, v)
	}
}

func TestFDIDeterministic(t *testing.T) {
	r := newTestRaster(CanonicalBands, 16, 16)
	rng := rand.New(rand.NewSource(7))
	for i := range r.Data {
		r.Data[i] = rng.Float64()
	}

	first, err := FDI(r)
	require.NoError(t, err)
	second, err := FDI(r)
	require.NoError(t, err)

	require.Equal(t, first.Data, second.Data)
}

func TestIndicesRejectMissingBands(t *testing.T) {
	r := newTestRaster([]string{"B1", "B2"}, 2, 2)

	_, err := NDVI(r)
	require.Error(t, err)

	_, err = FDI(r)
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	prob := &Raster{
		Labels: []string{"PROB"},
		Width:  2,
		Height: 2,
		Data:   []float64{0.1, 0.4, 0.5, 0.9},
	}

	class := Classify(prob, 0.4)
	assert.Equal(t, []float64{0, 1, 1, 1}, class.Data)

	class = Classify(prob, 0.5)
	assert.Equal(t, []float64{0, 0, 1, 1}, class.Data)
}
