package sentinel

import "fmt"

// CanonicalBands is the 12-band Level-2A ordering the segmentation model was
// trained on. Level-1C products carry the extra cirrus band B10, which the
// atmospheric correction removes.
var CanonicalBands = []string{"B1", "B2", "B3", "B4", "B5", "B6", "B7", "B8", "B8A", "B9", "B11", "B12"}

var Level1CBands = []string{"B1", "B2", "B3", "B4", "B5", "B6", "B7", "B8", "B8A", "B9", "B10", "B11", "B12"}

// LabelsForBandCount maps a raw band count onto the matching label sequence.
func LabelsForBandCount(n int) ([]string, error) {
	switch n {
	case len(CanonicalBands):
		return append([]string(nil), CanonicalBands...), nil
	case len(Level1CBands):
		return append([]string(nil), Level1CBands...), nil
	default:
		return nil, fmt.Errorf("unsupported band count: %d bands, expected %d or %d", n, len(CanonicalBands), len(Level1CBands))
	}
}

// SelectCanonicalBands reorders a raster into the canonical 12-band Level-2A
// sequence. A 12-band raster passes through unchanged; a 13-band Level-1C
// raster has its B10 band dropped. Any other band count is rejected.
func SelectCanonicalBands(r *Raster) (*Raster, error) {
	switch r.NBands() {
	case len(CanonicalBands):
		return r, nil
	case len(Level1CBands):
	default:
		return nil, fmt.Errorf("unsupported band count: %d bands, expected %d or %d", r.NBands(), len(CanonicalBands), len(Level1CBands))
	}

	positions := make(map[string]int, r.NBands())
	for i, label := range r.Labels {
		positions[label] = i
	}

	size := r.Width * r.Height
	out := &Raster{
		Labels:       append([]string(nil), CanonicalBands...),
		Width:        r.Width,
		Height:       r.Height,
		Data:         make([]float64, len(CanonicalBands)*size),
		GeoTransform: r.GeoTransform,
		Projection:   r.Projection,
	}

	for i, label := range CanonicalBands {
		src, ok := positions[label]
		if !ok {
			return nil, fmt.Errorf("band %s missing from input raster", label)
		}
		copy(out.Band(i), r.Band(src))
	}

	return out, nil
}
