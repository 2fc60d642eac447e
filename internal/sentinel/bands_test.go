package sentinel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRaster builds a raster whose band i is filled with the value i, so
// reordering is visible in the data.
func newTestRaster(labels []string, width, height int) *Raster {
	size := width * height
	r := &Raster{
		Labels:       append([]string(nil), labels...),
		Width:        width,
		Height:       height,
		Data:         make([]float64, len(labels)*size),
		GeoTransform: [6]float64{10, 0.1, 0, 45, 0, -0.1},
	}
	for b := range labels {
		band := r.Band(b)
		for i := range band {
			band[i] = float64(b)
		}
	}
	return r
}

func TestSelectCanonicalBandsLevel1C(t *testing.T) {
	r := newTestRaster(Level1CBands, 4, 3)

	out, err := SelectCanonicalBands(r)
	require.NoError(t, err)

	require.Equal(t, CanonicalBands, out.Labels)
	require.Equal(t, 12, out.NBands())

	// Each canonical band must carry the value of the matching source band,
	// which means B10 (source band 10) was dropped.
	sourcePositions := map[string]int{}
	for i, label := range Level1CBands {
		sourcePositions[label] = i
	}
	for i, label := range CanonicalBands {
		band := out.Band(i)
		for _, v := range band {
			assert.Equal(t, float64(sourcePositions[label]), v, "band %s", label)
		}
	}

	assert.Equal(t, r.GeoTransform, out.GeoTransform)
}

func TestSelectCanonicalBandsLevel2AIdentity(t *testing.T) {
	r := newTestRaster(CanonicalBands, 5, 5)

	out, err := SelectCanonicalBands(r)
	require.NoError(t, err)
	assert.Same(t, r, out)
}

func TestSelectCanonicalBandsUnsupportedCount(t *testing.T) {
	labels := make([]string, 14)
	for i := range labels {
		labels[i] = fmt.Sprintf("B%d", i+1)
	}
	r := newTestRaster(labels, 2, 2)

	_, err := SelectCanonicalBands(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported band count")
}

func TestLabelsForBandCount(t *testing.T) {
	labels, err := LabelsForBandCount(12)
	require.NoError(t, err)
	assert.Equal(t, CanonicalBands, labels)

	labels, err = LabelsForBandCount(13)
	require.NoError(t, err)
	assert.Equal(t, Level1CBands, labels)

	_, err = LabelsForBandCount(8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported band count")
}
