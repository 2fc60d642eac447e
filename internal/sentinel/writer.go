package sentinel

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// WriteGeoTIFF serializes a raster into a new GeoTIFF at path, copying the
// raster's geotransform and projection verbatim. The file gets one band per
// raster band and pixels of the requested data type. An existing file at the
// same path is overwritten without warning.
func WriteGeoTIFF(path string, r *Raster, dtype godal.DataType) error {
	ds, err := godal.Create(godal.GTiff, path, r.NBands(), dtype, r.Width, r.Height)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}

	if err := ds.SetGeoTransform(r.GeoTransform); err != nil {
		ds.Close()
		return fmt.Errorf("failed to set geotransform on %s: %v", path, err)
	}
	if r.Projection != "" {
		if err := ds.SetProjection(r.Projection); err != nil {
			ds.Close()
			return fmt.Errorf("failed to set projection on %s: %v", path, err)
		}
	}

	for i, band := range ds.Bands() {
		if err := writeBand(band, r.Band(i), r.Width, r.Height, dtype); err != nil {
			ds.Close()
			return fmt.Errorf("failed to write band %d of %s: %v", i+1, path, err)
		}
	}

	if err := ds.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %v", path, err)
	}
	return nil
}

func writeBand(band godal.Band, data []float64, width, height int, dtype godal.DataType) error {
	switch dtype {
	case godal.Byte:
		buf := make([]byte, len(data))
		for i, v := range data {
			buf[i] = byte(v)
		}
		return band.Write(0, 0, buf, width, height)
	case godal.Float32:
		buf := make([]float32, len(data))
		for i, v := range data {
			buf[i] = float32(v)
		}
		return band.Write(0, 0, buf, width, height)
	case godal.Float64:
		return band.Write(0, 0, data, width, height)
	default:
		return fmt.Errorf("unsupported output data type %d", dtype)
	}
}
