package ml

import (
	"context"
	"fmt"
	"math"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/driftwatch/driftwatch-research-cli/internal/sentinel"
)

var ortInit sync.Once

// OnnxPredictor runs the pre-trained U-Net checkpoint in-process through ONNX
// Runtime. Scenes vary in size, so a session is built per call with tensors
// shaped to the scene.
type OnnxPredictor struct {
	modelPath string
}

func NewOnnxPredictor(modelPath string) (*OnnxPredictor, error) {
	var initErr error
	ortInit.Do(func() {
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", initErr)
	}
	return &OnnxPredictor{modelPath: modelPath}, nil
}

func (p *OnnxPredictor) Predict(ctx context.Context, scene *sentinel.Raster) (*sentinel.Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scene.NBands() != len(sentinel.CanonicalBands) {
		return nil, fmt.Errorf("unsupported band count: %d bands, expected %d", scene.NBands(), len(sentinel.CanonicalBands))
	}

	height, width := scene.Height, scene.Width

	inputData := make([]float32, len(scene.Data))
	for i, v := range scene.Data {
		inputData[i] = float32(v)
	}

	inputShape := ort.NewShape(1, int64(scene.NBands()), int64(height), int64(width))
	inputTensor, err := ort.NewTensor(inputShape, inputData)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputShape := ort.NewShape(1, 1, int64(height), int64(width))
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	session, err := ort.NewAdvancedSession(p.modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}
	defer session.Destroy()

	if err := session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	// The checkpoint emits logits; squash them to [0,1].
	logits := outputTensor.GetData()
	prob := &sentinel.Raster{
		Labels:       []string{"PROB"},
		Width:        width,
		Height:       height,
		Data:         make([]float64, height*width),
		GeoTransform: scene.GeoTransform,
		Projection:   scene.Projection,
	}
	for i, logit := range logits {
		prob.Data[i] = 1 / (1 + math.Exp(-float64(logit)))
	}

	return prob, nil
}
