package sentinel

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// reflectanceScale converts Sentinel-2 digital numbers to [0,1] reflectance.
const reflectanceScale = 1e-4

// Raster is a multi-band scene: a band-major pixel buffer plus the
// georeferencing metadata of the file it was read from. The geotransform and
// projection are opaque pass-through values, copied verbatim into any raster
// derived from this one.
type Raster struct {
	Labels       []string
	Width        int
	Height       int
	Data         []float64 // band-major, len = len(Labels)*Width*Height
	GeoTransform [6]float64
	Projection   string
}

func (r *Raster) NBands() int {
	return len(r.Labels)
}

// Band returns the pixel buffer of band i as a view into Data.
func (r *Raster) Band(i int) []float64 {
	size := r.Width * r.Height
	return r.Data[i*size : (i+1)*size]
}

// BandByLabel returns the pixel buffer of the band carrying the given label.
func (r *Raster) BandByLabel(label string) ([]float64, error) {
	for i, l := range r.Labels {
		if l == label {
			return r.Band(i), nil
		}
	}
	return nil, fmt.Errorf("band %s not present in raster", label)
}

// ReadRaster loads every band of a GeoTIFF into memory and labels the bands
// from the band count: 12 bands are taken as a Level-2A product, 13 as
// Level-1C. Any other count is rejected.
func ReadRaster(path string) (*Raster, error) {
	ds, err := godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("%s", msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer ds.Close()

	structure := ds.Structure()
	width, height := structure.SizeX, structure.SizeY

	labels, err := LabelsForBandCount(structure.NBands)
	if err != nil {
		return nil, err
	}

	geoTransform, err := ds.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("failed to read geotransform of %s: %v", path, err)
	}

	raster := &Raster{
		Labels:       labels,
		Width:        width,
		Height:       height,
		Data:         make([]float64, structure.NBands*width*height),
		GeoTransform: geoTransform,
		Projection:   ds.Projection(),
	}

	for i, band := range ds.Bands() {
		if err := band.Read(0, 0, raster.Band(i), width, height); err != nil {
			return nil, fmt.Errorf("failed to read band %s of %s: %v", labels[i], path, err)
		}
	}

	return raster, nil
}

// ScaleReflectance converts raw digital numbers to reflectance in [0,1],
// in place.
func (r *Raster) ScaleReflectance() {
	for i, v := range r.Data {
		v *= reflectanceScale
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		r.Data[i] = v
	}
}

// Window crops a col/row aligned window out of the raster, shifting the
// geotransform origin so the crop stays georeferenced.
func (r *Raster) Window(col, row, width, height int) (*Raster, error) {
	if col < 0 || row < 0 || width <= 0 || height <= 0 || col+width > r.Width || row+height > r.Height {
		return nil, fmt.Errorf("window (%d,%d %dx%d) out of bounds for %dx%d raster", col, row, width, height, r.Width, r.Height)
	}

	geoTransform := r.GeoTransform
	geoTransform[0] += float64(col) * r.GeoTransform[1]
	geoTransform[3] += float64(row) * r.GeoTransform[5]

	out := &Raster{
		Labels:       append([]string(nil), r.Labels...),
		Width:        width,
		Height:       height,
		Data:         make([]float64, r.NBands()*width*height),
		GeoTransform: geoTransform,
		Projection:   r.Projection,
	}

	for b := 0; b < r.NBands(); b++ {
		src := r.Band(b)
		dst := out.Band(b)
		for y := 0; y < height; y++ {
			copy(dst[y*width:(y+1)*width], src[(row+y)*r.Width+col:(row+y)*r.Width+col+width])
		}
	}

	return out, nil
}

// PixelToLonLat converts pixel coordinates to geographic coordinates using
// the raster's geotransform.
func (r *Raster) PixelToLonLat(col, row int) (float64, float64) {
	lon := r.GeoTransform[0] + (float64(col)+0.5)*r.GeoTransform[1]
	lat := r.GeoTransform[3] + (float64(row)+0.5)*r.GeoTransform[5]
	return lon, lat
}

// derived builds a single-band raster carrying this raster's georeferencing.
func (r *Raster) derived(label string, data []float64) *Raster {
	return &Raster{
		Labels:       []string{label},
		Width:        r.Width,
		Height:       r.Height,
		Data:         data,
		GeoTransform: r.GeoTransform,
		Projection:   r.Projection,
	}
}
