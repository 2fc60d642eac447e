package ml

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/driftwatch/driftwatch-research-cli/internal/properties"
)

// EnsureCheckpoint downloads the pinned model checkpoint into the model
// directory when it is not already present, and returns its local path.
func EnsureCheckpoint() (string, error) {
	url := properties.ModelCheckpointURL()
	if url == "" {
		return "", fmt.Errorf("missing required environment variable: MODEL_CHECKPOINT_URL")
	}

	modelPath := filepath.Join(properties.ModelPath(), filepath.Base(url))
	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	}

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to download model checkpoint: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download model checkpoint, status code: %d", resp.StatusCode)
	}

	tmpPath := modelPath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %v", tmpPath, err)
	}

	progressBar := progressbar.DefaultBytes(resp.ContentLength, "Downloading checkpoint")
	if _, err := io.Copy(io.MultiWriter(file, progressBar), resp.Body); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write checkpoint: %v", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close checkpoint file: %v", err)
	}

	if err := os.Rename(tmpPath, modelPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move checkpoint into place: %v", err)
	}

	return modelPath, nil
}
