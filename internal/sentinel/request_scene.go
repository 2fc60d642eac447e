package sentinel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/oauth2/clientcredentials"
)

const processAPIURL = "https://sh.dataspace.copernicus.eu/api/v1/process"

func calculatePixels(distance float64, resolution float64) int {
	pixels := distance * (111_000.0 / resolution)
	if pixels < 1 {
		return 1
	}
	return int(pixels)
}

// RequestScene fetches a Level-2A scene over an AOI from the Copernicus
// process API as a FLOAT32 GeoTIFF carrying the canonical 12 bands. A failed
// request propagates immediately; there are no retries.
func RequestScene(ctx context.Context, geometry orb.Geometry, startDate, endDate time.Time) ([]byte, error) {
	startDateStr := startDate.Format(time.RFC3339)
	endDateStr := endDate.Format(time.RFC3339)

	bbox := geometry.Bound()
	widthPixels := calculatePixels(bbox.Max.X()-bbox.Min.X(), 10)
	heightPixels := calculatePixels(bbox.Max.Y()-bbox.Min.Y(), 10)
	// Clamp to allowed range (1-2500)
	if widthPixels > 2500 {
		widthPixels = 2500
	}
	if heightPixels > 2500 {
		heightPixels = 2500
	}

	evalscript := `
    //VERSION=3
    function setup() {
      return {
        input: ["B01", "B02", "B03", "B04", "B05", "B06", "B07", "B08", "B8A", "B09", "B11", "B12"],
        output: {
          id: "default",
          bands: 12,
          sampleType: SampleType.FLOAT32,
        },
      }
    }

    function evaluatePixel(sample) {
      return [sample.B01, sample.B02, sample.B03, sample.B04, sample.B05, sample.B06,
              sample.B07, sample.B08, sample.B8A, sample.B09, sample.B11, sample.B12];
    }
  `

	geometryGeojson, err := geojson.NewGeometry(geometry).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export geometry to GeoJSON: %w", err)
	}
	var geojsonMap map[string]interface{}
	if err := json.Unmarshal(geometryGeojson, &geojsonMap); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	requestPayload := map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"geometry": geojsonMap,
			},
			"data": []map[string]interface{}{
				{
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": startDateStr,
							"to":   endDateStr,
						},
					},
					"type": "sentinel-2-l2a",
				},
			},
		},
		"output": map[string]interface{}{
			"width":  widthPixels,
			"height": heightPixels,
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": evalscript,
		"mosaicking": "mostRecent",
	}

	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %v", err)
	}

	clientID := os.Getenv("COPERNICUS_CLIENT_ID")
	clientSecret := os.Getenv("COPERNICUS_CLIENT_SECRET")
	tokenURL := os.Getenv("COPERNICUS_TOKEN_URL")
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return nil, fmt.Errorf("missing required environment variables: COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET, or COPERNICUS_TOKEN_URL")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := config.Client(ctx)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, processAPIURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build process request: %v", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to request scene: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return nil, fmt.Errorf("failed to request scene, status code %d: %s", response.StatusCode, string(body))
	}

	responseContent, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	return responseContent, nil
}
