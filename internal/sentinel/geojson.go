package sentinel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/driftwatch/driftwatch-research-cli/internal/properties"
)

// LoadAOIGeometry reads the area-of-interest geometry for a named site from
// ROOT_PATH/data/geojsons/<site>.geojson. The first feature of the collection
// defines the area.
func LoadAOIGeometry(site string) (orb.Geometry, error) {
	filePath := filepath.Join(properties.GeojsonsPath(), site+".geojson")

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read AOI file %s: %v", filePath, err)
	}

	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("invalid GeoJSON in %s: %v", filePath, err)
	}

	if len(collection.Features) == 0 {
		return nil, fmt.Errorf("no features found in %s", filePath)
	}

	return collection.Features[0].Geometry, nil
}

// CentroidLatLon returns the centroid of an AOI geometry as (lat, lon).
func CentroidLatLon(geometry orb.Geometry) (float64, float64, error) {
	centroid, area := planar.CentroidArea(geometry)
	if area <= 0 {
		return 0, 0, errors.New("error getting centroid")
	}
	return centroid.Y(), centroid.X(), nil
}
