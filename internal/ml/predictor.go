package ml

import (
	"context"

	"github.com/driftwatch/driftwatch-research-cli/internal/sentinel"
)

// Predictor maps a canonical 12-band reflectance scene to a per-pixel
// floating-object probability raster of the same extent. The production
// implementation wraps the pre-trained segmentation checkpoint; tests
// substitute a deterministic stub.
type Predictor interface {
	Predict(ctx context.Context, scene *sentinel.Raster) (*sentinel.Raster, error)
}
