package sentinel

import "fmt"

// Band roles used by the spectral indices, keyed by canonical label so a
// change in the canonical sequence cannot silently shift a position.
const (
	redBand   = "B4"
	red2Band  = "B6"
	nirBand   = "B8"
	swir1Band = "B11"
)

// Central wavelengths (nm) of the bands entering the FDI baseline.
var wavelengths = map[string]float64{
	redBand:   664.8,
	nirBand:   832.9,
	swir1Band: 1612.05,
}

// epsilon guards the NDVI denominator when both reflectances are zero.
const epsilon = 1e-12

// NDVI computes the Normalized Difference Vegetation Index,
// (NIR - RED) / (NIR + RED), as a single-band raster.
func NDVI(r *Raster) (*Raster, error) {
	nir, err := r.BandByLabel(nirBand)
	if err != nil {
		return nil, fmt.Errorf("ndvi: %v", err)
	}
	red, err := r.BandByLabel(redBand)
	if err != nil {
		return nil, fmt.Errorf("ndvi: %v", err)
	}

	data := make([]float64, len(nir))
	for i := range data {
		data[i] = (nir[i] - red[i]) / (nir[i] + red[i] + epsilon)
	}
	return r.derived("NDVI", data), nil
}

// FDI computes the Floating Debris Index: the NIR reflectance minus a
// baseline NIR interpolated between the RED2 and SWIR1 bands.
func FDI(r *Raster) (*Raster, error) {
	nir, err := r.BandByLabel(nirBand)
	if err != nil {
		return nil, fmt.Errorf("fdi: %v", err)
	}
	red2, err := r.BandByLabel(red2Band)
	if err != nil {
		return nil, fmt.Errorf("fdi: %v", err)
	}
	swir1, err := r.BandByLabel(swir1Band)
	if err != nil {
		return nil, fmt.Errorf("fdi: %v", err)
	}

	factor := 10 * (wavelengths[nirBand] - wavelengths[redBand]) /
		(wavelengths[swir1Band] - wavelengths[redBand])

	data := make([]float64, len(nir))
	for i := range data {
		baseline := red2[i] + (swir1[i]-red2[i])*factor
		data[i] = nir[i] - baseline
	}
	return r.derived("FDI", data), nil
}

// Classify thresholds a probability raster into a binary 0/1 raster.
func Classify(prob *Raster, threshold float64) *Raster {
	data := make([]float64, len(prob.Data))
	for i, p := range prob.Data {
		if p >= threshold {
			data[i] = 1
		}
	}
	return prob.derived("CLASS", data)
}
