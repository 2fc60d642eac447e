package delivery

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/airbusgeo/godal"
	"golang.org/x/sync/errgroup"

	"github.com/driftwatch/driftwatch-research-cli/internal/ml"
	"github.com/driftwatch/driftwatch-research-cli/internal/properties"
	"github.com/driftwatch/driftwatch-research-cli/internal/sentinel"
	"github.com/driftwatch/driftwatch-research-cli/internal/usecase"
	"github.com/driftwatch/driftwatch-research-cli/output"
)

// Classification cutoffs kept as-is from the reference workflow, which uses a
// looser cutoff for full scenes than for use-case windows.
const (
	FullSceneThreshold = 0.4
	UseCaseThreshold   = 0.5
)

// Result lists what a prediction run wrote to disk.
type Result struct {
	ProbabilityPath    string
	ClassificationPath string
	NDVIPath           string
	FDIPath            string
	QuicklookPath      string
	DetectionsPath     string
	Detections         int
}

// PredictScene runs the full pipeline for one scene: read, reorder to the
// canonical band set, scale reflectance, infer, threshold, derive NDVI/FDI,
// and write every output raster plus quicklooks and a detections GeoJSON.
func PredictScene(ctx context.Context, predictor ml.Predictor, scenePath, outputDir string, threshold float64) (*Result, error) {
	start := time.Now()

	raster, err := sentinel.ReadRaster(scenePath)
	if err != nil {
		return nil, err
	}

	scene, err := sentinel.SelectCanonicalBands(raster)
	if err != nil {
		return nil, err
	}
	scene.ScaleReflectance()

	return predict(ctx, predictor, scene, sceneBaseName(scenePath), outputDir, threshold, start)
}

// RunUseCases evaluates every row of the use-case table, cropping the named
// window out of its scene and predicting it with the use-case cutoff. Scenes
// are processed sequentially; the first failure halts the run.
func RunUseCases(ctx context.Context, predictor ml.Predictor, useCases []usecase.UseCase) ([]*Result, error) {
	outputDir := properties.UseCasePredictionsPath()

	var results []*Result
	for _, uc := range useCases {
		start := time.Now()

		raster, err := sentinel.ReadRaster(filepath.Join(properties.TilesPath(), uc.Scene))
		if err != nil {
			return nil, fmt.Errorf("use case %s: %v", uc.Name, err)
		}

		scene, err := sentinel.SelectCanonicalBands(raster)
		if err != nil {
			return nil, fmt.Errorf("use case %s: %v", uc.Name, err)
		}

		window, err := scene.Window(uc.Col, uc.Row, uc.Width, uc.Height)
		if err != nil {
			return nil, fmt.Errorf("use case %s: %v", uc.Name, err)
		}
		window.ScaleReflectance()

		result, err := predict(ctx, predictor, window, uc.Name, outputDir, UseCaseThreshold, start)
		if err != nil {
			return nil, fmt.Errorf("use case %s: %v", uc.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func predict(ctx context.Context, predictor ml.Predictor, scene *sentinel.Raster, baseName, outputDir string, threshold float64, start time.Time) (*Result, error) {
	prob, err := predictor.Predict(ctx, scene)
	if err != nil {
		return nil, err
	}

	classification := sentinel.Classify(prob, threshold)

	ndvi, err := sentinel.NDVI(scene)
	if err != nil {
		return nil, err
	}
	fdi, err := sentinel.FDI(scene)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ProbabilityPath:    filepath.Join(outputDir, baseName+"_prob.tif"),
		ClassificationPath: filepath.Join(outputDir, baseName+"_class.tif"),
		NDVIPath:           filepath.Join(outputDir, baseName+"_ndvi.tif"),
		FDIPath:            filepath.Join(outputDir, baseName+"_fdi.tif"),
		QuicklookPath:      filepath.Join(outputDir, baseName+"_quicklook.png"),
		DetectionsPath:     filepath.Join(outputDir, baseName+"_detections.geojson"),
	}

	if err := sentinel.WriteGeoTIFF(result.ProbabilityPath, prob, godal.Float32); err != nil {
		return nil, err
	}
	if err := sentinel.WriteGeoTIFF(result.ClassificationPath, classification, godal.Byte); err != nil {
		return nil, err
	}
	if err := sentinel.WriteGeoTIFF(result.NDVIPath, ndvi, godal.Float32); err != nil {
		return nil, err
	}
	if err := sentinel.WriteGeoTIFF(result.FDIPath, fdi, godal.Float32); err != nil {
		return nil, err
	}

	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		return output.CreateQuicklook(scene, classification, result.QuicklookPath)
	})
	group.Go(func() error {
		return output.CreateProbabilityImage(prob, filepath.Join(outputDir, baseName+"_prob.png"))
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	detections, err := output.CreateDetectionsGeoJSON(classification, prob, result.DetectionsPath)
	if err != nil {
		return nil, err
	}
	result.Detections = detections

	fmt.Printf("Scene %s processed in %v (%d pixels flagged)\n", baseName, time.Since(start), detections)
	return result, nil
}

func sceneBaseName(scenePath string) string {
	base := filepath.Base(scenePath)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".tif"), ".tiff")
}
