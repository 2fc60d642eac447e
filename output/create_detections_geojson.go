package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/driftwatch/driftwatch-research-cli/internal/sentinel"
)

// CreateDetectionsGeoJSON exports every classified floating-object pixel as a
// point feature at the pixel center, with its probability attached.
func CreateDetectionsGeoJSON(classification, prob *sentinel.Raster, outputPath string) (int, error) {
	if !strings.HasSuffix(outputPath, ".geojson") {
		outputPath += ".geojson"
	}

	collection := geojson.NewFeatureCollection()
	width, height := classification.Width, classification.Height
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if classification.Data[y*width+x] == 0 {
				continue
			}
			lon, lat := classification.PixelToLonLat(x, y)
			feature := geojson.NewFeature(orb.Point{lon, lat})
			feature.Properties["col"] = x
			feature.Properties["row"] = y
			feature.Properties["probability"] = prob.Data[y*width+x]
			collection.Append(feature)
		}
	}

	data, err := collection.MarshalJSON()
	if err != nil {
		return 0, fmt.Errorf("failed to encode detections GeoJSON: %v", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write detections GeoJSON: %v", err)
	}

	fmt.Println("GeoJSON file created successfully at", outputPath)
	return len(collection.Features), nil
}
