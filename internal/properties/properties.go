package properties

import (
	"fmt"
	"os"
	"path/filepath"
)

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

// dataDir resolves a directory role under ROOT_PATH/data, creating it when absent.
func dataDir(role string) string {
	dir := filepath.Join(RootPath(), "data", role)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("failed to create directory %s: %v\n", dir, err)
	}
	return dir
}

// TilesPath holds the downloaded Sentinel-2 scene GeoTIFFs.
func TilesPath() string {
	return dataDir("tiles")
}

// PredictionsPath holds full-scene prediction rasters.
func PredictionsPath() string {
	return dataDir("predictions")
}

// UseCasePredictionsPath holds per-use-case prediction rasters.
func UseCasePredictionsPath() string {
	return dataDir("usecase_predictions")
}

func ModelPath() string {
	return dataDir("model")
}

func GeojsonsPath() string {
	return dataDir("geojsons")
}

func UseCasesPath() string {
	return dataDir("usecases")
}

func TileManifestURL() string {
	return os.Getenv("TILE_MANIFEST_URL")
}

func ModelCheckpointURL() string {
	return os.Getenv("MODEL_CHECKPOINT_URL")
}

type Color struct {
	R, G, B uint8
}

var ColorMap = map[string]Color{
	"debris": {255, 0, 0},
	"water":  {0, 90, 180},
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}
func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
