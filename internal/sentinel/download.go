package sentinel

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"

	"github.com/driftwatch/driftwatch-research-cli/internal/cache"
	"github.com/driftwatch/driftwatch-research-cli/internal/properties"
	"github.com/driftwatch/driftwatch-research-cli/internal/utils"
)

// TileManifest maps demo tile file names to their archive URLs.
type TileManifest map[string]string

// FetchTileManifest downloads the demo archive manifest, serving a cached
// copy when the archive was already listed for this URL.
func FetchTileManifest() (TileManifest, error) {
	url := properties.TileManifestURL()
	if url == "" {
		return nil, fmt.Errorf("missing required environment variable: TILE_MANIFEST_URL")
	}

	manifestCache := cache.NewFileCache[TileManifest]("manifest_cache")

	key := manifestCache.GenerateKey(url)
	if manifest, ok := manifestCache.Get(key); ok {
		return manifest, nil
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tile manifest: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch tile manifest, status code: %d", resp.StatusCode)
	}

	var manifest TileManifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("invalid tile manifest JSON: %v", err)
	}

	if err := manifestCache.Set(key, manifest); err != nil {
		fmt.Printf("failed to cache tile manifest: %v\n", err)
	}

	return manifest, nil
}

// DownloadTiles fetches every manifest tile missing from the tiles directory.
// Downloads run on a small worker pool; the first failure is reported after
// the pool drains.
func DownloadTiles(manifest TileManifest) error {
	tilesDir := properties.TilesPath()

	missing := make(map[string]string)
	for name, url := range manifest {
		if _, err := os.Stat(filepath.Join(tilesDir, name)); os.IsNotExist(err) {
			missing[name] = url
		}
	}
	if len(missing) == 0 {
		return nil
	}

	progressBar := progressbar.Default(int64(len(missing)), "Downloading tiles")
	wp := workerpool.New(4)

	var firstErr error
	for _, name := range utils.SortedKeys(missing) {
		name := name
		url := missing[name]
		wp.Submit(func() {
			err := downloadTile(url, filepath.Join(tilesDir, name))
			utils.ExecuteWithMutex(func() {
				if err != nil && firstErr == nil {
					firstErr = err
				}
				progressBar.Add(1)
			})
		})
	}
	wp.StopWait()

	return firstErr
}

func downloadTile(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s, status code: %d", url, resp.StatusCode)
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", tmpPath, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %v", tmpPath, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %v", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %v", tmpPath, err)
	}
	return nil
}

// ListScenes returns the names of the GeoTIFF scenes present in the tiles
// directory.
func ListScenes() ([]string, error) {
	entries, err := os.ReadDir(properties.TilesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read tiles directory: %v", err)
	}

	var scenes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".tif" || ext == ".tiff" {
			scenes = append(scenes, entry.Name())
		}
	}
	return scenes, nil
}
